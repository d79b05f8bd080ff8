package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/healthy-heart/internal/cli"
	"github.com/Veraticus/healthy-heart/internal/engine"
	"github.com/Veraticus/healthy-heart/internal/screening"
	"github.com/spf13/cobra"
)

func screenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screen <file.csv>",
		Short: "Screen a CSV file of vitals",
		Long: `Assess every row of a CSV file and record each prediction under
your account. The file needs a header naming the columns:

  age,sex,cp,trestbps,chol,thalach,exang,oldpeak,slope,ca,thal

Categorical columns use the same labels as the form.`,
		Args: cobra.ExactArgs(1),
		RunE: runScreen,
	}

	cmd.Flags().StringP("output", "o", "", "write results as CSV to this file")

	return cmd
}

func runScreen(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer func() { _ = file.Close() }()

	rows, err := screening.ReadCSV(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

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

	slog.Info("Starting screening", "file", args[0], "rows", len(rows))
	results, runErr := screening.Run(cmd.Context(), a.engine, sess, rows, cmd.ErrOrStderr())

	if output != "" {
		if err := writeResults(output, results); err != nil {
			return err
		}
	}

	summary := screening.Summarize(results)
	prompter.ShowInfo(fmt.Sprintf("Screened %d rows: %d high risk, %d lower risk, %d failed.",
		summary.Total, summary.High, summary.Low, summary.Failed))

	return runErr
}

func writeResults(path string, results []screening.Result) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := screening.WriteCSV(out, results); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
