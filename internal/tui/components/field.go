// Package components contains the reusable widgets of the terminal form.
package components

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/healthy-heart/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// FieldKind selects how a field is edited.
type FieldKind int

// Field kinds.
const (
	FieldInt FieldKind = iota
	FieldFloat
	FieldOption
)

// ErrFieldValue is returned when a field does not hold an acceptable value.
var ErrFieldValue = errors.New("invalid field value")

// FieldModel is one row of the form: a bounded number or a fixed choice.
type FieldModel struct {
	theme    themes.Theme
	Caption  string
	options  []string
	input    textinput.Model
	min      int
	max      int
	selected int
	kind     FieldKind
	focused  bool
}

func newTextField(caption string, kind FieldKind, initial string, theme themes.Theme) FieldModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 12
	ti.Width = 12
	ti.SetValue(initial)

	return FieldModel{
		Caption: caption,
		kind:    kind,
		input:   ti,
		theme:   theme,
	}
}

// NewIntField returns a whole-number field bounded by minValue and maxValue,
// prefilled with minValue.
func NewIntField(caption string, minValue, maxValue int, theme themes.Theme) FieldModel {
	f := newTextField(caption, FieldInt, strconv.Itoa(minValue), theme)
	f.min = minValue
	f.max = maxValue
	return f
}

// NewFloatField returns a real-number field prefilled with 0.0.
func NewFloatField(caption string, theme themes.Theme) FieldModel {
	return newTextField(caption, FieldFloat, "0.0", theme)
}

// NewOptionField returns a field cycling through options, starting at the first.
func NewOptionField(caption string, options []string, theme themes.Theme) FieldModel {
	return FieldModel{
		Caption: caption,
		kind:    FieldOption,
		options: options,
		theme:   theme,
	}
}

// Kind returns the field kind.
func (f FieldModel) Kind() FieldKind {
	return f.kind
}

// Focused reports whether the field receives key input.
func (f FieldModel) Focused() bool {
	return f.focused
}

// Focus gives the field key input.
func (f FieldModel) Focus() (FieldModel, tea.Cmd) {
	f.focused = true
	if f.kind == FieldOption {
		return f, nil
	}
	return f, f.input.Focus()
}

// Blur removes key input from the field.
func (f FieldModel) Blur() FieldModel {
	f.focused = false
	f.input.Blur()
	return f
}

// SetValue replaces a text field's content or selects the matching option.
func (f FieldModel) SetValue(value string) FieldModel {
	if f.kind != FieldOption {
		f.input.SetValue(value)
		return f
	}
	for i, opt := range f.options {
		if opt == value {
			f.selected = i
		}
	}
	return f
}

// Update handles key input while focused. Option fields cycle with left and
// right; text fields delegate to the text input.
func (f FieldModel) Update(msg tea.Msg) (FieldModel, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	if f.kind == FieldOption {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "left", "h":
				f.selected = (f.selected - 1 + len(f.options)) % len(f.options)
			case "right", "l", " ":
				f.selected = (f.selected + 1) % len(f.options)
			}
		}
		return f, nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// Int parses a whole-number field and checks its bounds.
func (f FieldModel) Int() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(f.input.Value()))
	if err != nil || n < f.min || n > f.max {
		return 0, fmt.Errorf("%w: %s must be a whole number between %d and %d", ErrFieldValue, f.Caption, f.min, f.max)
	}
	return n, nil
}

// Float parses a real-number field. Blank means 0.
func (f FieldModel) Float() (float64, error) {
	raw := strings.TrimSpace(f.input.Value())
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a number", ErrFieldValue, f.Caption)
	}
	return v, nil
}

// Option returns the selected option label.
func (f FieldModel) Option() string {
	if len(f.options) == 0 {
		return ""
	}
	return f.options[f.selected]
}

// View renders the field as one line.
func (f FieldModel) View() string {
	marker := "  "
	caption := f.theme.Label.Render(f.Caption)
	if f.focused {
		marker = f.theme.Focused.Render("› ")
		caption = f.theme.Focused.Width(46).Render(f.Caption)
	}

	var value string
	switch f.kind {
	case FieldOption:
		value = f.theme.Option.Render(f.Option())
		if f.focused {
			value = f.theme.Focused.Render("‹ ") + value + f.theme.Focused.Render(" ›")
		}
	default:
		value = f.input.View()
	}

	return marker + caption + value
}
