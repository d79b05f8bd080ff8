package tui

import (
	"context"
	"errors"

	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/engine"
	"github.com/Veraticus/healthy-heart/internal/model"
	"github.com/Veraticus/healthy-heart/internal/tui/components"
	"github.com/Veraticus/healthy-heart/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current state of the TUI.
type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateResult
)

// Form rows, in display order.
const (
	fieldAge = iota
	fieldSex
	fieldChestPain
	fieldRestingBP
	fieldCholesterol
	fieldMaxHeartRate
	fieldAngina
	fieldOldpeak
	fieldSlope
	fieldVessels
	fieldThal
	fieldCount
)

// Model holds the form state.
type Model struct {
	ctx        context.Context
	lastError  error
	engine     *engine.Engine
	session    *engine.Session
	assessment *engine.Assessment
	theme      themes.Theme
	keymap     KeyMap
	help       help.Model
	spinner    spinner.Model
	fields     []components.FieldModel
	focus      int
	width      int
	height     int
	state      State
	quitting   bool
}

func newFields(theme themes.Theme) []components.FieldModel {
	fields := make([]components.FieldModel, fieldCount)
	fields[fieldAge] = components.NewIntField(model.CaptionAge, model.MinAge, model.MaxAge, theme)
	fields[fieldSex] = components.NewOptionField(model.CaptionSex, model.SexOptions, theme)
	fields[fieldChestPain] = components.NewOptionField(model.CaptionChestPain, model.ChestPainOptions, theme)
	fields[fieldRestingBP] = components.NewIntField(model.CaptionRestingBP, model.MinRestingBP, model.MaxRestingBP, theme)
	fields[fieldCholesterol] = components.NewIntField(model.CaptionCholesterol, model.MinCholesterol, model.MaxCholesterol, theme)
	fields[fieldMaxHeartRate] = components.NewIntField(model.CaptionMaxHeartRate, model.MinMaxHeartRate, model.MaxMaxHeartRate, theme)
	fields[fieldAngina] = components.NewOptionField(model.CaptionAngina, model.AnginaOptions, theme)
	fields[fieldOldpeak] = components.NewFloatField(model.CaptionOldpeak, theme)
	fields[fieldSlope] = components.NewOptionField(model.CaptionSlope, model.SlopeOptions, theme)
	fields[fieldVessels] = components.NewIntField(model.CaptionVessels, model.MinVessels, model.MaxVessels, theme)
	fields[fieldThal] = components.NewOptionField(model.CaptionThal, model.ThalOptions, theme)
	return fields
}

// newModel creates a form bound to a signed-in session.
func newModel(ctx context.Context, eng *engine.Engine, sess *engine.Session, cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = cfg.Theme.Focused

	m := Model{
		ctx:     ctx,
		engine:  eng,
		session: sess,
		theme:   cfg.Theme,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		spinner: s,
		fields:  newFields(cfg.Theme),
		width:   cfg.Width,
		height:  cfg.Height,
		state:   StateEditing,
	}
	m.fields[0], _ = m.fields[0].Focus()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case assessmentMsg:
		if msg.err != nil {
			m.lastError = msg.err
			m.state = StateEditing
			if !common.IsRecoverable(msg.err) && !errors.Is(msg.err, common.ErrClassificationFailed) {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
		m.assessment = msg.assessment
		m.lastError = nil
		m.state = StateResult
		return m, nil

	case spinner.TickMsg:
		if m.state != StateSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keymap.Help) {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		switch m.state {
		case StateEditing:
			return m.updateEditing(msg)
		case StateResult:
			if key.Matches(msg, m.keymap.Again) {
				m.state = StateEditing
				return m, nil
			}
			if msg.String() == "q" {
				m.quitting = true
				return m, tea.Quit
			}
		case StateSubmitting:
		}
	}

	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Next):
		return m.moveFocus(1)
	case key.Matches(msg, m.keymap.Prev):
		return m.moveFocus(-1)
	case msg.String() == "enter" && m.focus < len(m.fields)-1:
		return m.moveFocus(1)
	case key.Matches(msg, m.keymap.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	return m.focusField((m.focus + delta + len(m.fields)) % len(m.fields))
}

func (m Model) focusField(i int) (Model, tea.Cmd) {
	fields := make([]components.FieldModel, len(m.fields))
	copy(fields, m.fields)
	fields[m.focus] = fields[m.focus].Blur()

	var cmd tea.Cmd
	fields[i], cmd = fields[i].Focus()
	m.fields = fields
	m.focus = i
	return m, cmd
}

// submit collects the form and starts the assessment. The first invalid
// field takes focus and the error is shown inline.
func (m Model) submit() (tea.Model, tea.Cmd) {
	raw, bad, err := m.collect()
	if err != nil {
		m.lastError = common.NewUserError(err.Error(), common.ErrInvalidInput)
		next, cmd := m.focusField(bad)
		return next, cmd
	}

	m.lastError = nil
	m.state = StateSubmitting
	return m, tea.Batch(m.spinner.Tick, assess(m.ctx, m.engine, m.session, raw))
}

func (m Model) collect() (model.RawInput, int, error) {
	var (
		raw model.RawInput
		err error
	)

	ints := []struct {
		dst   *int
		index int
	}{
		{&raw.Age, fieldAge},
		{&raw.RestingBP, fieldRestingBP},
		{&raw.Cholesterol, fieldCholesterol},
		{&raw.MaxHeartRate, fieldMaxHeartRate},
		{&raw.Vessels, fieldVessels},
	}
	for _, f := range ints {
		if *f.dst, err = m.fields[f.index].Int(); err != nil {
			return raw, f.index, err
		}
	}
	if raw.Oldpeak, err = m.fields[fieldOldpeak].Float(); err != nil {
		return raw, fieldOldpeak, err
	}

	raw.Sex = m.fields[fieldSex].Option()
	raw.ChestPain = m.fields[fieldChestPain].Option()
	raw.ExerciseAngina = m.fields[fieldAngina].Option()
	raw.Slope = m.fields[fieldSlope].Option()
	raw.Thal = m.fields[fieldThal].Option()

	return raw, 0, nil
}

// State returns the current state.
func (m Model) State() State {
	return m.state
}

// Result returns the latest assessment, or nil when none completed.
func (m Model) Result() *engine.Assessment {
	return m.assessment
}

// Err returns the error currently shown, if any.
func (m Model) Err() error {
	return m.lastError
}
