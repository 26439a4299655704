package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"

	"github.com/rileyhilliard/ferry/internal/errors"
)

// JSONEnvelope wraps every --json response.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError is the machine-readable form of an *errors.Error.
type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	ExitCode   int    `json:"exit_code,omitempty"`
}

// ErrCodeUnknown is used for errors that didn't come from ferry itself.
const ErrCodeUnknown = "UNKNOWN"

// WriteJSONSuccess writes a successful envelope around data.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{Success: true, Data: data})
}

// WriteJSONFromError writes a failed envelope describing err.
func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{Error: ErrorToJSON(err)})
}

func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts err, keeping the structured code when there is one.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var fErr *errors.Error
	if stderrors.As(err, &fErr) {
		return &JSONError{
			Code:       fErr.Code,
			Message:    fErr.Message,
			Suggestion: fErr.Suggestion,
			ExitCode:   fErr.ExitCode,
		}
	}
	return &JSONError{Code: ErrCodeUnknown, Message: err.Error()}
}
