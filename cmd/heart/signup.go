package main

import (
	"fmt"

	"github.com/Veraticus/healthy-heart/internal/cli"
	"github.com/spf13/cobra"
)

func signupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Long:  `Create an account by choosing a username and password.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			prompter := cli.NewCLIPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			username, password, confirm, err := prompter.PromptSignUp(cmd.Context())
			if err != nil {
				return err
			}

			if err := a.engine.SignUp(cmd.Context(), username, password, confirm); err != nil {
				return err
			}

			prompter.ShowSuccess(fmt.Sprintf("Successfully signed up as %s! You can sign in now.", username))
			return nil
		},
	}
}
