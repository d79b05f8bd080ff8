package main

import (
	"context"
	"os"

	"github.com/Veraticus/healthy-heart/internal/cli"
	"github.com/Veraticus/healthy-heart/internal/engine"
	"github.com/Veraticus/healthy-heart/internal/tui"
	"github.com/Veraticus/healthy-heart/internal/tui/themes"
	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check your heart on the terminal",
		Long: `Sign in or sign up, then enter your vitals and get a prediction.
The menu loops until you quit. With --tui the vitals are entered in a
full-screen form instead of one prompt at a time.`,
		RunE: runCheck,
	}

	cmd.Flags().Bool("tui", false, "use the full-screen vitals form")
	cmd.Flags().String("theme", "default", "form theme (default, catppuccin-mocha)")

	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	useTUI, _ := cmd.Flags().GetBool("tui")
	theme, _ := cmd.Flags().GetString("theme")

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := interrupts.HandleInterrupts(cmd.Context())

	a, err := initApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	controller := cli.NewController(a.engine, cli.NewCLIPrompter(nil, os.Stdout))
	if useTUI {
		controller.UseForm(func(ctx context.Context, sess *engine.Session) (*engine.Assessment, error) {
			return tui.RunForm(ctx, a.engine, sess, tui.WithTheme(themes.GetTheme(theme)))
		})
	}

	if err := controller.Run(ctx); err != nil {
		if interrupts.WasInterrupted() {
			return nil
		}
		return err
	}
	return nil
}
