package components

import (
	"testing"

	"github.com/Veraticus/healthy-heart/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(f FieldModel, text string) FieldModel {
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return f
}

func TestIntField(t *testing.T) {
	f := NewIntField("Age", 1, 120, themes.Default)

	n, err := f.Int()
	require.NoError(t, err)
	assert.Equal(t, 1, n, "prefilled with the lower bound")

	// Unfocused fields ignore keys.
	f = typeText(f, "9")
	n, err = f.Int()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	f, _ = f.Focus()
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	f = typeText(f, "45")
	n, err = f.Int()
	require.NoError(t, err)
	assert.Equal(t, 45, n)

	f = f.SetValue("121")
	_, err = f.Int()
	require.ErrorIs(t, err, ErrFieldValue)

	f = f.SetValue("abc")
	_, err = f.Int()
	require.ErrorIs(t, err, ErrFieldValue)
}

func TestFloatField(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    float64
		wantErr bool
	}{
		{name: "default", value: "0.0", want: 0},
		{name: "blank", value: "", want: 0},
		{name: "decimal", value: "2.3", want: 2.3},
		{name: "negative", value: "-0.5", want: -0.5},
		{name: "not a number", value: "x", wantErr: true},
		{name: "NaN", value: "NaN", wantErr: true},
		{name: "infinity", value: "Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFloatField("Oldpeak", themes.Default).SetValue(tt.value)
			got, err := f.Float()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrFieldValue)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestOptionField(t *testing.T) {
	f := NewOptionField("Sex", []string{"male", "female"}, themes.Default)
	assert.Equal(t, "male", f.Option())
	assert.Equal(t, FieldOption, f.Kind())

	f, cmd := f.Focus()
	assert.Nil(t, cmd)
	assert.True(t, f.Focused())

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "female", f.Option())

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "male", f.Option(), "wraps around")

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "female", f.Option())

	f = f.SetValue("male")
	assert.Equal(t, "male", f.Option())

	f = f.SetValue("unknown")
	assert.Equal(t, "male", f.Option(), "unknown values keep the selection")

	f = f.Blur()
	assert.False(t, f.Focused())
	assert.Contains(t, f.View(), "male")
}
