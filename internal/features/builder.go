package features

import (
	"log/slog"

	"github.com/Veraticus/healthy-heart/internal/model"
)

// Builder assembles feature vectors from raw form input.
type Builder struct {
	scale Scaler
}

// NewBuilder returns a builder that applies ScaleContinuous.
func NewBuilder() *Builder {
	return &Builder{scale: ScaleContinuous}
}

// NewBuilderWithScaler returns a builder using scale for the continuous slots.
// A nil scale leaves the raw values in place.
func NewBuilderWithScaler(scale Scaler) *Builder {
	return &Builder{scale: scale}
}

type familyCode struct {
	family Family
	code   float64
	ok     bool
}

// Build encodes raw into a fresh vector. Codes without a schema column, and
// labels the codecs do not know, leave their family's slots at 0.
func (b *Builder) Build(raw model.RawInput) Vector {
	var v Vector

	cp, cpOK := EncodeChestPain(raw.ChestPain)
	slope, slopeOK := EncodeSlope(raw.Slope)
	thal, thalOK := EncodeThal(raw.Thal)

	codes := []familyCode{
		{FamilyChestPain, cp, cpOK},
		{FamilyAngina, EncodeAngina(raw.ExerciseAngina), true},
		{FamilySlope, slope, slopeOK},
		{FamilyVessels, float64(raw.Vessels), true},
		{FamilyThal, thal, thalOK},
	}
	for _, fc := range codes {
		if !fc.ok {
			continue
		}
		i, found := SlotIndex(fc.family, fc.code)
		if !found {
			slog.Debug("No schema column for category code", "key", Key(fc.family, fc.code))
			continue
		}
		v[i] = 1
	}

	continuous := [ContinuousWidth]float64{
		float64(raw.Age),
		EncodeSex(raw.Sex),
		float64(raw.RestingBP),
		float64(raw.Cholesterol),
		float64(raw.MaxHeartRate),
		raw.Oldpeak,
	}
	if b.scale != nil {
		continuous = b.scale(continuous)
	}
	copy(v[:ContinuousWidth], continuous[:])

	return v
}
