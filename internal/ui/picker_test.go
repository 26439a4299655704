package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleChoices() []Choice {
	return []Choice{
		{Key: "prod", Detail: "deploy@prod.example.com:22 (key)"},
		{Key: "lab", Label: "lab box", Detail: "me@10.0.0.2:22 (password)", Tags: []string{"10.0.0.2"}},
	}
}

func TestChoiceItem(t *testing.T) {
	c := sampleChoices()
	assert.Equal(t, "prod", choiceItem{c[0]}.Title())
	assert.Equal(t, "lab box", choiceItem{c[1]}.Title())
	assert.Equal(t, "me@10.0.0.2:22 (password)", choiceItem{c[1]}.Description())
	assert.Contains(t, choiceItem{c[1]}.FilterValue(), "10.0.0.2")
}

func TestPickerModel_Choose(t *testing.T) {
	m := NewPickerModel("Connect to", sampleChoices())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	picked := next.(PickerModel).Chosen()
	require.NotNil(t, picked)
	assert.Equal(t, "lab", picked.Key)
	assert.Empty(t, next.View())
}

func TestPickerModel_Cancel(t *testing.T) {
	m := NewPickerModel("Connect to", sampleChoices())
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Nil(t, next.(PickerModel).Chosen())
}

func TestPickWithIO_ShortCircuits(t *testing.T) {
	_, err := PickWithIO("x", nil, nil, nil)
	assert.True(t, errors.IsCode(err, errors.ErrProfile))

	only := sampleChoices()[:1]
	picked, err := PickWithIO("x", only, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "prod", picked.Key)
}
