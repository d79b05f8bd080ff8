// Package screening assesses a batch of vitals read from a CSV file.
package screening

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/model"
)

// Columns is the header a screening file must carry, in any order.
var Columns = []string{"age", "sex", "cp", "trestbps", "chol", "thalach", "exang", "oldpeak", "slope", "ca", "thal"}

// Row is one parsed line of a screening file.
type Row struct {
	Input model.RawInput
	Line  int
}

// ReadCSV parses a screening file. Every row is validated; the first bad row
// fails the whole read with its line number.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty screening file", common.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", common.ErrInvalidInput, col)
		}
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read screening file: %w", err)
		}
		line, _ := reader.FieldPos(0)

		input, err := parseRecord(record, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := input.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, Row{Line: line, Input: input})
	}

	return rows, nil
}

func parseRecord(record []string, index map[string]int) (model.RawInput, error) {
	field := func(name string) string {
		return strings.TrimSpace(record[index[name]])
	}

	var (
		input model.RawInput
		err   error
	)
	ints := []struct {
		dst  *int
		name string
	}{
		{&input.Age, "age"},
		{&input.RestingBP, "trestbps"},
		{&input.Cholesterol, "chol"},
		{&input.MaxHeartRate, "thalach"},
		{&input.Vessels, "ca"},
	}
	for _, f := range ints {
		if *f.dst, err = strconv.Atoi(field(f.name)); err != nil {
			return input, fmt.Errorf("%w: %s is not a whole number: %q", common.ErrInvalidInput, f.name, field(f.name))
		}
	}

	if input.Oldpeak, err = strconv.ParseFloat(field("oldpeak"), 64); err != nil {
		return input, fmt.Errorf("%w: oldpeak is not a number: %q", common.ErrInvalidInput, field("oldpeak"))
	}

	input.Sex = field("sex")
	input.ChestPain = field("cp")
	input.ExerciseAngina = field("exang")
	input.Slope = field("slope")
	input.Thal = field("thal")

	return input, nil
}

// WriteCSV writes each input with its outcome. Failed rows carry the error
// text in place of a risk.
func WriteCSV(w io.Writer, results []Result) error {
	writer := csv.NewWriter(w)

	header := append([]string{"line"}, Columns...)
	header = append(header, "risk", "submission_id", "error")
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, res := range results {
		in := res.Row.Input
		record := []string{
			strconv.Itoa(res.Row.Line),
			strconv.Itoa(in.Age),
			in.Sex,
			in.ChestPain,
			strconv.Itoa(in.RestingBP),
			strconv.Itoa(in.Cholesterol),
			strconv.Itoa(in.MaxHeartRate),
			in.ExerciseAngina,
			strconv.FormatFloat(in.Oldpeak, 'f', -1, 64),
			in.Slope,
			strconv.Itoa(in.Vessels),
			in.Thal,
		}
		if res.Err != nil {
			record = append(record, "", "", common.UserMessage(res.Err))
		} else {
			record = append(record, res.Assessment.Label.String(), res.Assessment.Submission.ID, "")
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write line %d: %w", res.Row.Line, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
