// Package features turns raw form values into the fixed-length numeric vector
// the risk classifier was trained on.
package features

import "github.com/Veraticus/healthy-heart/internal/model"

// Family names a one-hot column group of the schema.
type Family string

// One-hot families, named by their schema column prefix.
const (
	FamilyChestPain Family = "cp"
	FamilyAngina    Family = "exang"
	FamilySlope     Family = "slope"
	FamilyVessels   Family = "ca"
	FamilyThal      Family = "thal"
)

var chestPainCodes = map[string]float64{
	model.ChestPainTypical:      0,
	model.ChestPainAtypical:     1,
	model.ChestPainNonAnginal:   2,
	model.ChestPainAsymptomatic: 3,
}

var slopeCodes = map[string]float64{
	model.SlopeUpsloping:   0,
	model.SlopeFlatsloping: 1,
	model.SlopeDownsloping: 2,
}

// The "normal" code is not an integer. The classifier was trained against this
// exact encoding, so it stays as is.
var thalCodes = map[string]float64{
	model.ThalFixedDefect:      6,
	model.ThalReversableDefect: 7,
	model.ThalNormal:           2.31,
}

// EncodeSex returns 1 for "male" and 0 for anything else.
func EncodeSex(label string) float64 {
	if label == model.SexMale {
		return 1
	}
	return 0
}

// EncodeAngina returns 1 for "Yes" and 0 for anything else.
func EncodeAngina(label string) float64 {
	if label == model.AnginaYes {
		return 1
	}
	return 0
}

// EncodeChestPain maps a chest-pain label to its code.
func EncodeChestPain(label string) (float64, bool) {
	code, ok := chestPainCodes[label]
	return code, ok
}

// EncodeSlope maps an ST-slope label to its code.
func EncodeSlope(label string) (float64, bool) {
	code, ok := slopeCodes[label]
	return code, ok
}

// EncodeThal maps a thalassemia label to its code.
func EncodeThal(label string) (float64, bool) {
	code, ok := thalCodes[label]
	return code, ok
}
