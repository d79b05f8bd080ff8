package testutil

import "github.com/Veraticus/healthy-heart/internal/model"

// SampleVitals is a valid form submission: a 45 year old man with typical
// angina, a flat slope, no colored vessels, and a normal thal result.
func SampleVitals() model.RawInput {
	return model.RawInput{
		Age:            45,
		Sex:            model.SexMale,
		ChestPain:      model.ChestPainTypical,
		RestingBP:      120,
		Cholesterol:    200,
		MaxHeartRate:   150,
		ExerciseAngina: model.AnginaNo,
		Oldpeak:        1.0,
		Slope:          model.SlopeFlatsloping,
		Vessels:        0,
		Thal:           model.ThalNormal,
	}
}

// Vitals returns SampleVitals with each change applied in order.
//
// Example:
//
//	in := testutil.Vitals(func(r *model.RawInput) { r.Age = 70 })
func Vitals(changes ...func(*model.RawInput)) model.RawInput {
	in := SampleVitals()
	for _, change := range changes {
		change(&in)
	}
	return in
}
