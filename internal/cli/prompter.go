package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/engine"
	"github.com/Veraticus/healthy-heart/internal/model"
	"golang.org/x/term"
)

// ErrInputClosed is returned when the input stream ends mid-prompt.
var ErrInputClosed = errors.New("input terminated")

// Prompter asks for credentials and vitals on a terminal and renders results.
type Prompter struct {
	writer     io.Writer
	reader     *NonBlockingReader
	readSecret func() (string, error)
}

// NewCLIPrompter creates a prompter over reader and writer. With a nil reader
// it uses stdin and hides typed passwords when stdin is a terminal.
func NewCLIPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if writer == nil {
		writer = os.Stdout
	}

	p := &Prompter{writer: writer}

	if reader == nil {
		reader = os.Stdin
		fd := int(os.Stdin.Fd()) //nolint:gosec // stdin descriptor fits in int
		if term.IsTerminal(fd) {
			p.readSecret = func() (string, error) {
				secret, err := term.ReadPassword(fd)
				p.println("")
				return string(secret), err
			}
		}
	}
	p.reader = NewNonBlockingReader(reader)

	return p
}

// ShowWelcome prints the app banner.
func (p *Prompter) ShowWelcome() {
	p.println(FormatTitle(model.AppTitle))
	p.println(SubtleStyle.Render(model.About))
	p.println("")
}

// PromptMenu offers the actions available in the current session state and
// returns the chosen key.
func (p *Prompter) PromptMenu(ctx context.Context, signedIn bool) (string, error) {
	options := signedOutMenu
	if signedIn {
		options = signedInMenu
	}
	return p.promptOption(ctx, "What would you like to do?", options)
}

// PromptCredentials asks for a username and password.
func (p *Prompter) PromptCredentials(ctx context.Context) (string, string, error) {
	p.println(TitleStyle.Render("Sign In"))

	username, err := p.promptLine(ctx, "Username")
	if err != nil {
		return "", "", err
	}
	password, err := p.promptSecret(ctx, "Password")
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}

// PromptSignUp asks for a new username and the password twice.
func (p *Prompter) PromptSignUp(ctx context.Context) (username, password, confirm string, err error) {
	p.println(TitleStyle.Render("Sign Up"))

	if username, err = p.promptLine(ctx, "New Username"); err != nil {
		return "", "", "", err
	}
	if password, err = p.promptSecret(ctx, "New Password"); err != nil {
		return "", "", "", err
	}
	if confirm, err = p.promptSecret(ctx, "Confirm Password"); err != nil {
		return "", "", "", err
	}
	return username, password, confirm, nil
}

// PromptVitals walks through the eleven form fields. Each answer is checked
// against the form's bounds and re-asked until valid.
func (p *Prompter) PromptVitals(ctx context.Context) (model.RawInput, error) {
	var (
		in  model.RawInput
		err error
	)

	p.println(TitleStyle.Render("Enter your details to check your heart health"))

	if in.Age, err = p.promptInt(ctx, model.CaptionAge, model.MinAge, model.MaxAge); err != nil {
		return in, err
	}
	if in.Sex, err = p.promptOption(ctx, model.CaptionSex, model.SexOptions); err != nil {
		return in, err
	}
	if in.ChestPain, err = p.promptOption(ctx, model.CaptionChestPain, model.ChestPainOptions); err != nil {
		return in, err
	}
	if in.RestingBP, err = p.promptInt(ctx, model.CaptionRestingBP, model.MinRestingBP, model.MaxRestingBP); err != nil {
		return in, err
	}
	if in.Cholesterol, err = p.promptInt(ctx, model.CaptionCholesterol, model.MinCholesterol, model.MaxCholesterol); err != nil {
		return in, err
	}
	if in.MaxHeartRate, err = p.promptInt(ctx, model.CaptionMaxHeartRate, model.MinMaxHeartRate, model.MaxMaxHeartRate); err != nil {
		return in, err
	}
	if in.ExerciseAngina, err = p.promptOption(ctx, model.CaptionAngina, model.AnginaOptions); err != nil {
		return in, err
	}
	if in.Oldpeak, err = p.promptFloat(ctx, model.CaptionOldpeak); err != nil {
		return in, err
	}
	if in.Slope, err = p.promptOption(ctx, model.CaptionSlope, model.SlopeOptions); err != nil {
		return in, err
	}
	if in.Vessels, err = p.promptInt(ctx, model.CaptionVessels, model.MinVessels, model.MaxVessels); err != nil {
		return in, err
	}
	if in.Thal, err = p.promptOption(ctx, model.CaptionThal, model.ThalOptions); err != nil {
		return in, err
	}

	return in, nil
}

// PromptRating asks for an app rating.
func (p *Prompter) PromptRating(ctx context.Context) (int, error) {
	return p.promptInt(ctx, model.RatingPrompt, model.MinRating, model.MaxRating)
}

// ShowAssessment renders a prediction with its disclaimer.
func (p *Prompter) ShowAssessment(a *engine.Assessment) {
	if a == nil {
		return
	}

	p.println(RenderBox("Result", FormatRisk(a.Label)+"\n\n"+SubtleStyle.Render(model.Disclaimer)))
}

// ShowHistory renders past submissions as a table.
func (p *Prompter) ShowHistory(subs []model.Submission) {
	if len(subs) == 0 {
		p.println(FormatInfo("No submissions yet."))
		return
	}

	header := fmt.Sprintf("%-17s %4s %-6s %5s %5s %4s  %s", "When", "Age", "Sex", "BP", "Chol", "HR", "Risk")
	p.println(TableHeaderStyle.Render(header))
	for _, s := range subs {
		risk := lowRiskStyle.Render(s.Label.String())
		if s.Label == model.RiskHigh {
			risk = highRiskStyle.Render(s.Label.String())
		}
		p.println(fmt.Sprintf("%-17s %4d %-6s %5d %5d %4d  %s",
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Input.Age, s.Input.Sex, s.Input.RestingBP, s.Input.Cholesterol, s.Input.MaxHeartRate,
			risk))
	}
}

// ShowError renders err inline.
func (p *Prompter) ShowError(err error) {
	if err == nil {
		return
	}
	p.println(FormatError(common.UserMessage(err)))
}

// ShowSuccess renders a confirmation.
func (p *Prompter) ShowSuccess(msg string) {
	p.println(FormatSuccess(msg))
}

// ShowInfo renders an informational line.
func (p *Prompter) ShowInfo(msg string) {
	p.println(FormatInfo(msg))
}

func (p *Prompter) println(s string) {
	if _, err := fmt.Fprintln(p.writer, s); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

func (p *Prompter) readLine(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.reader.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return "", ErrInputClosed
	}
	return line, err
}

func (p *Prompter) promptLine(ctx context.Context, prompt string) (string, error) {
	for {
		line, err := p.readLine(ctx, prompt)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		p.println(FormatError(prompt + " cannot be empty. Please try again."))
	}
}

func (p *Prompter) promptSecret(ctx context.Context, prompt string) (string, error) {
	if p.readSecret == nil {
		return p.readLine(ctx, prompt)
	}

	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return p.readSecret()
}

func (p *Prompter) promptInt(ctx context.Context, prompt string, minValue, maxValue int) (int, error) {
	label := fmt.Sprintf("%s (%d-%d)", prompt, minValue, maxValue)
	for {
		line, err := p.readLine(ctx, label)
		if err != nil {
			return 0, err
		}

		n, convErr := strconv.Atoi(line)
		if convErr == nil && n >= minValue && n <= maxValue {
			return n, nil
		}
		p.println(FormatError(fmt.Sprintf("Enter a whole number between %d and %d.", minValue, maxValue)))
	}
}

func (p *Prompter) promptFloat(ctx context.Context, prompt string) (float64, error) {
	for {
		line, err := p.readLine(ctx, prompt)
		if err != nil {
			return 0, err
		}
		if line == "" {
			return 0, nil
		}

		f, convErr := strconv.ParseFloat(line, 64)
		if convErr == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f, nil
		}
		p.println(FormatError("Enter a number, for example 1.4."))
	}
}

// promptOption prints a numbered list and accepts either the number or the
// label itself, ignoring case.
func (p *Prompter) promptOption(ctx context.Context, prompt string, options []string) (string, error) {
	p.println(BoldPrompt(prompt))
	for i, opt := range options {
		p.println(fmt.Sprintf("  [%d] %s", i+1, opt))
	}

	for {
		line, err := p.readLine(ctx, "Choice")
		if err != nil {
			return "", err
		}

		if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		for _, opt := range options {
			if strings.EqualFold(line, opt) {
				return opt, nil
			}
		}

		p.println(FormatError("Invalid choice. Please try again."))
	}
}
