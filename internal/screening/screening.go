package screening

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/engine"
	"github.com/Veraticus/healthy-heart/internal/model"
	"github.com/schollz/progressbar/v3"
)

// Assessor classifies and records one set of vitals.
type Assessor interface {
	Assess(ctx context.Context, sess *engine.Session, raw model.RawInput) (*engine.Assessment, error)
}

// Result is the outcome of one screened row.
type Result struct {
	Err        error
	Assessment *engine.Assessment
	Row        Row
}

// Summary counts the outcomes of a run.
type Summary struct {
	Total  int
	High   int
	Low    int
	Failed int
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, res := range results {
		switch {
		case res.Err != nil:
			s.Failed++
		case res.Assessment.Label == model.RiskHigh:
			s.High++
		default:
			s.Low++
		}
	}
	return s
}

// Run assesses rows one at a time, drawing progress to out. A row the
// classifier cannot handle is recorded and skipped. Storage failures, a
// signed-out session, or cancellation stop the run and return the results
// gathered so far.
func Run(ctx context.Context, assessor Assessor, sess *engine.Session, rows []Row, out io.Writer) ([]Result, error) {
	if out == nil {
		out = io.Discard
	}

	bar := newProgressBar(len(rows), out)
	results := make([]Result, 0, len(rows))

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("screening canceled at line %d: %w", row.Line, err)
		}

		assessment, err := assessor.Assess(ctx, sess, row.Input)
		if err != nil && !errors.Is(err, common.ErrClassificationFailed) {
			return results, fmt.Errorf("line %d: %w", row.Line, err)
		}
		if err != nil {
			slog.Warn("Row could not be classified", "line", row.Line, "error", err)
		}

		results = append(results, Result{Row: row, Assessment: assessment, Err: err})
		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	return results, nil
}

func newProgressBar(total int, out io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[red][bold]Screening vitals...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[red]=[reset]",
			SaucerHead:    "[red]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(out); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
