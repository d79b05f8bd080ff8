package main

import (
	"github.com/Veraticus/healthy-heart/internal/cli"
	"github.com/Veraticus/healthy-heart/internal/engine"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show your past predictions",
		RunE:  runHistory,
	}

	cmd.Flags().IntP("limit", "n", 20, "number of submissions to show")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	a, err := initApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	prompter := cli.NewCLIPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	username, password, err := prompter.PromptCredentials(cmd.Context())
	if err != nil {
		return err
	}

	sess := engine.NewSession()
	if _, err := a.engine.SignIn(cmd.Context(), sess, username, password); err != nil {
		return err
	}

	subs, err := a.engine.History(cmd.Context(), sess, limit)
	if err != nil {
		return err
	}

	prompter.ShowHistory(subs)
	return nil
}
