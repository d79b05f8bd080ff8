package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/engine"
)

// Menu entries.
const (
	ActionSignIn  = "Sign In"
	ActionSignUp  = "Sign Up"
	ActionCheck   = "Check my heart"
	ActionHistory = "View history"
	ActionRate    = "Rate this app"
	ActionSignOut = "Sign out"
	ActionQuit    = "Quit"
)

var (
	signedOutMenu = []string{ActionSignIn, ActionSignUp, ActionQuit}
	signedInMenu  = []string{ActionCheck, ActionHistory, ActionRate, ActionSignOut, ActionQuit}
)

const historyLimit = 20

// FormRunner collects vitals and assesses them for a signed-in session. A nil
// assessment with a nil error means the user closed the form.
type FormRunner func(ctx context.Context, sess *engine.Session) (*engine.Assessment, error)

// Controller drives the terminal form for one session.
type Controller struct {
	engine   *engine.Engine
	prompter *Prompter
	session  *engine.Session
	form     FormRunner
}

// NewController creates a controller with a fresh signed-out session.
func NewController(eng *engine.Engine, prompter *Prompter) *Controller {
	return &Controller{
		engine:   eng,
		prompter: prompter,
		session:  engine.NewSession(),
	}
}

// UseForm replaces the line-by-line vitals prompts with form.
func (c *Controller) UseForm(form FormRunner) {
	c.form = form
}

// Session returns the controller's session.
func (c *Controller) Session() *engine.Session {
	return c.session
}

// Run loops over the menu until the user quits or input ends. Recoverable
// errors are shown and the loop continues; anything else ends the run.
func (c *Controller) Run(ctx context.Context) error {
	c.prompter.ShowWelcome()

	for {
		action, err := c.prompter.PromptMenu(ctx, c.session.SignedIn)
		if errors.Is(err, ErrInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if action == ActionQuit {
			return nil
		}

		if err := c.dispatch(ctx, action); err != nil {
			if errors.Is(err, ErrInputClosed) {
				return nil
			}
			c.prompter.ShowError(err)
			if !common.IsRecoverable(err) && !errors.Is(err, common.ErrClassificationFailed) {
				return err
			}
		}
	}
}

func (c *Controller) dispatch(ctx context.Context, action string) error {
	switch action {
	case ActionSignIn:
		return c.signIn(ctx)
	case ActionSignUp:
		return c.signUp(ctx)
	case ActionCheck:
		return c.check(ctx)
	case ActionHistory:
		return c.history(ctx)
	case ActionRate:
		return c.rate(ctx)
	case ActionSignOut:
		c.engine.SignOut(c.session)
		c.prompter.ShowInfo("Signed out.")
		return nil
	default:
		slog.Warn("Unknown menu action", "action", action)
		return nil
	}
}

func (c *Controller) signIn(ctx context.Context) error {
	username, password, err := c.prompter.PromptCredentials(ctx)
	if err != nil {
		return err
	}
	if _, err := c.engine.SignIn(ctx, c.session, username, password); err != nil {
		return err
	}
	c.prompter.ShowSuccess("Successfully signed in!")
	return nil
}

func (c *Controller) signUp(ctx context.Context) error {
	username, password, confirm, err := c.prompter.PromptSignUp(ctx)
	if err != nil {
		return err
	}
	if err := c.engine.SignUp(ctx, username, password, confirm); err != nil {
		return err
	}
	c.prompter.ShowSuccess("Successfully signed up! You can sign in now.")
	return nil
}

func (c *Controller) check(ctx context.Context) error {
	if c.form != nil {
		assessment, err := c.form(ctx, c.session)
		if err != nil {
			return err
		}
		if assessment == nil {
			c.prompter.ShowInfo("Form closed. Nothing was submitted.")
			return nil
		}
		c.prompter.ShowAssessment(assessment)
		return nil
	}

	raw, err := c.prompter.PromptVitals(ctx)
	if err != nil {
		return err
	}
	assessment, err := c.engine.Assess(ctx, c.session, raw)
	if err != nil {
		return err
	}
	c.prompter.ShowAssessment(assessment)
	return nil
}

func (c *Controller) history(ctx context.Context) error {
	subs, err := c.engine.History(ctx, c.session, historyLimit)
	if err != nil {
		return err
	}
	c.prompter.ShowHistory(subs)
	return nil
}

func (c *Controller) rate(ctx context.Context) error {
	rating, err := c.prompter.PromptRating(ctx)
	if err != nil {
		return err
	}
	if err := c.engine.RecordFeedback(ctx, c.session, rating); err != nil {
		return err
	}
	c.prompter.ShowSuccess("Thank you for rating the app!")
	return nil
}
