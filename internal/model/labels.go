// Package model defines the core domain models used throughout the application.
package model

// Sex labels as presented by the form.
const (
	SexMale   = "male"
	SexFemale = "female"
)

// Chest-pain type labels.
const (
	ChestPainTypical      = "Typical angina"
	ChestPainAtypical     = "Atypical angina"
	ChestPainNonAnginal   = "Non-anginal pain"
	ChestPainAsymptomatic = "Asymptomatic"
)

// Exercise-induced angina labels.
const (
	AnginaYes = "Yes"
	AnginaNo  = "No"
)

// ST-slope labels. The spelling matches the form verbatim and must not be corrected.
const (
	SlopeUpsloping   = "Upsloping: better heart rate with excercise(uncommon)"
	SlopeFlatsloping = "Flatsloping: minimal change(typical healthy heart)"
	SlopeDownsloping = "Downsloping: signs of unhealthy heart"
)

// Thalassemia stress-test labels.
const (
	ThalFixedDefect      = "fixed defect: used to be defect but ok now"
	ThalReversableDefect = "reversable defect: no proper blood movement when excercising"
	ThalNormal           = "normal"
)

// Option lists in the order the form offers them.
var (
	SexOptions       = []string{SexMale, SexFemale}
	ChestPainOptions = []string{ChestPainTypical, ChestPainAtypical, ChestPainNonAnginal, ChestPainAsymptomatic}
	AnginaOptions    = []string{AnginaYes, AnginaNo}
	SlopeOptions     = []string{SlopeUpsloping, SlopeFlatsloping, SlopeDownsloping}
	ThalOptions      = []string{ThalFixedDefect, ThalReversableDefect, ThalNormal}
)

// IsOption reports whether value is one of options.
func IsOption(value string, options []string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
