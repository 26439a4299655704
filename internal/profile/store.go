package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// storeFile is the document written to disk.
type storeFile struct {
	Connections []Profile `yaml:"connections"`
}

// Store persists profiles to a single YAML file.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore returns a store backed by the OS filesystem.
func NewStore(path string) *Store {
	return NewStoreWithFs(afero.NewOsFs(), path)
}

// NewStoreWithFs returns a store on an arbitrary filesystem.
func NewStoreWithFs(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the store's file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads all profiles. A missing file is an empty store.
func (s *Store) Load() ([]Profile, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Profile{}, nil
		}
		return nil, errors.WrapWithCode(err, errors.ErrProfile,
			"Couldn't read saved connections from "+s.path,
			"Check the file permissions.")
	}

	var doc storeFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrProfile,
			"Saved connections file is not valid YAML",
			"Fix or remove "+s.path)
	}
	if doc.Connections == nil {
		doc.Connections = []Profile{}
	}
	return doc.Connections, nil
}

// Save replaces the stored profiles. The write goes to a temp file that is
// renamed over the original, so readers never see a partial file.
func (s *Store) Save(profiles []Profile) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0700); err != nil {
		return errors.WrapWithCode(err, errors.ErrProfile,
			"Couldn't create "+dir,
			"Check the directory permissions.")
	}

	data, err := yaml.Marshal(storeFile{Connections: profiles})
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrProfile,
			"Couldn't encode saved connections",
			"This is unexpected - please report this bug!")
	}

	tmp := fmt.Sprintf("%s.%s.tmp", s.path, uuid.NewString())
	if err := afero.WriteFile(s.fs, tmp, data, 0600); err != nil {
		return errors.WrapWithCode(err, errors.ErrProfile,
			"Couldn't write saved connections",
			"Check there's free disk space and "+dir+" is writable.")
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.WrapWithCode(err, errors.ErrProfile,
			"Couldn't replace "+s.path,
			"Check the file permissions.")
	}
	return nil
}

// Upsert inserts p or replaces the profile with the same id. A profile with a
// nil id gets a new one. The stored profile is returned.
func (s *Store) Upsert(p Profile) (Profile, error) {
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}

	profiles, err := s.Load()
	if err != nil {
		return Profile{}, err
	}

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Port == 0 {
		p.Port = DefaultPort
	}

	replaced := false
	for i := range profiles {
		if profiles[i].ID == p.ID {
			profiles[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		for _, existing := range profiles {
			if strings.EqualFold(existing.Name, p.Name) {
				return Profile{}, errors.New(errors.ErrProfile,
					fmt.Sprintf("A connection named '%s' already exists", existing.Name),
					"Pick another name or remove the old one: ferry connection remove "+existing.Name)
			}
		}
		profiles = append(profiles, p)
	}

	if err := s.Save(profiles); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Find looks a profile up by id, then by case-insensitive name.
func (s *Store) Find(nameOrID string) (Profile, error) {
	profiles, err := s.Load()
	if err != nil {
		return Profile{}, err
	}

	idx := indexOf(profiles, nameOrID)
	if idx < 0 {
		return Profile{}, notFound(nameOrID, profiles)
	}
	return profiles[idx], nil
}

// Remove deletes the profile matching nameOrID and returns it.
func (s *Store) Remove(nameOrID string) (Profile, error) {
	profiles, err := s.Load()
	if err != nil {
		return Profile{}, err
	}

	idx := indexOf(profiles, nameOrID)
	if idx < 0 {
		return Profile{}, notFound(nameOrID, profiles)
	}

	removed := profiles[idx]
	profiles = append(profiles[:idx], profiles[idx+1:]...)
	if err := s.Save(profiles); err != nil {
		return Profile{}, err
	}
	return removed, nil
}

func indexOf(profiles []Profile, nameOrID string) int {
	if id, err := uuid.Parse(nameOrID); err == nil {
		for i, p := range profiles {
			if p.ID == id {
				return i
			}
		}
	}
	for i, p := range profiles {
		if strings.EqualFold(p.Name, nameOrID) {
			return i
		}
	}
	return -1
}

func notFound(nameOrID string, profiles []Profile) error {
	if len(profiles) == 0 {
		return errors.New(errors.ErrProfile,
			fmt.Sprintf("Connection '%s' not found", nameOrID),
			"No connections saved yet. Add one with: ferry connection add")
	}
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	sort.Strings(names)
	return errors.New(errors.ErrProfile,
		fmt.Sprintf("Connection '%s' not found", nameOrID),
		"Saved connections: "+strings.Join(names, ", "))
}
