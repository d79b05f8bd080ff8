package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidVitals is returned when a form value falls outside what the form allows.
var ErrInvalidVitals = errors.New("invalid vitals")

// Form widget bounds.
const (
	MinAge          = 1
	MaxAge          = 120
	MinRestingBP    = 1
	MaxRestingBP    = 499
	MinCholesterol  = 1
	MaxCholesterol  = 999
	MinMaxHeartRate = 1
	MaxMaxHeartRate = 299
	MinVessels      = 0
	MaxVessels      = 4
)

// RawInput holds the eleven values a user submits through the form, unencoded.
type RawInput struct {
	Sex            string  `json:"sex" csv:"sex" form:"sex"`
	ChestPain      string  `json:"cp" csv:"cp" form:"cp"`
	ExerciseAngina string  `json:"exang" csv:"exang" form:"exang"`
	Slope          string  `json:"slope" csv:"slope" form:"slope"`
	Thal           string  `json:"thal" csv:"thal" form:"thal"`
	Oldpeak        float64 `json:"oldpeak" csv:"oldpeak" form:"oldpeak"`
	Age            int     `json:"age" csv:"age" form:"age"`
	RestingBP      int     `json:"trestbps" csv:"trestbps" form:"trestbps"`
	Cholesterol    int     `json:"chol" csv:"chol" form:"chol"`
	MaxHeartRate   int     `json:"thalach" csv:"thalach" form:"thalach"`
	Vessels        int     `json:"ca" csv:"ca" form:"ca"`
}

// Validate checks the input against the bounds of the form widgets. The feature
// builder never calls it; it is applied where input enters the system.
func (r RawInput) Validate() error {
	checks := []struct {
		name     string
		value    int
		min, max int
	}{
		{"age", r.Age, MinAge, MaxAge},
		{"trestbps", r.RestingBP, MinRestingBP, MaxRestingBP},
		{"chol", r.Cholesterol, MinCholesterol, MaxCholesterol},
		{"thalach", r.MaxHeartRate, MinMaxHeartRate, MaxMaxHeartRate},
		{"ca", r.Vessels, MinVessels, MaxVessels},
	}
	for _, c := range checks {
		if c.value < c.min || c.value > c.max {
			return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrInvalidVitals, c.name, c.min, c.max, c.value)
		}
	}

	if math.IsNaN(r.Oldpeak) || math.IsInf(r.Oldpeak, 0) {
		return fmt.Errorf("%w: oldpeak must be a finite number", ErrInvalidVitals)
	}

	labels := []struct {
		name    string
		value   string
		options []string
	}{
		{"sex", r.Sex, SexOptions},
		{"cp", r.ChestPain, ChestPainOptions},
		{"exang", r.ExerciseAngina, AnginaOptions},
		{"slope", r.Slope, SlopeOptions},
		{"thal", r.Thal, ThalOptions},
	}
	for _, l := range labels {
		if !IsOption(l.value, l.options) {
			return fmt.Errorf("%w: unknown %s %q", ErrInvalidVitals, l.name, l.value)
		}
	}

	return nil
}
