package features

import (
	"fmt"
	"strconv"
	"strings"
)

// Schema dimensions.
const (
	Width           = 19
	ContinuousWidth = 6
)

// Schema is the column order the classifier expects.
var Schema = [Width]string{
	"age", "sex", "trestbps", "chol", "thalach", "oldpeak",
	"cp_1", "cp_2", "cp_3",
	"exang_1",
	"slope_1", "slope_2",
	"ca_1", "ca_2", "ca_3", "ca_4",
	"thal_1", "thal_2", "thal_3",
}

type slotKey struct {
	family Family
	code   float64
}

var slots = indexSchema()

func indexSchema() map[slotKey]int {
	index := make(map[slotKey]int, Width-ContinuousWidth)
	for i := ContinuousWidth; i < Width; i++ {
		name := Schema[i]
		sep := strings.LastIndex(name, "_")
		if sep < 0 {
			panic(fmt.Sprintf("features: one-hot column %q has no code suffix", name))
		}
		code, err := strconv.ParseFloat(name[sep+1:], 64)
		if err != nil {
			panic(fmt.Sprintf("features: one-hot column %q has a non-numeric code: %v", name, err))
		}
		index[slotKey{family: Family(name[:sep]), code: code}] = i
	}
	return index
}

// SlotIndex returns the schema position of the one-hot column for family and
// code. The second result is false when the schema has no such column.
func SlotIndex(family Family, code float64) (int, bool) {
	i, ok := slots[slotKey{family: family, code: code}]
	return i, ok
}

// Key formats the column name a family and code would have, e.g. "thal_2.31".
func Key(family Family, code float64) string {
	return string(family) + "_" + strconv.FormatFloat(code, 'f', -1, 64)
}

// Vector is one encoded request.
type Vector [Width]float64

// Slice returns the vector as a fresh slice.
func (v Vector) Slice() []float64 {
	out := make([]float64, Width)
	copy(out, v[:])
	return out
}

// Named returns the vector keyed by column name.
func (v Vector) Named() map[string]float64 {
	out := make(map[string]float64, Width)
	for i, name := range Schema {
		out[name] = v[i]
	}
	return out
}

// Active returns the names of the one-hot columns that are set.
func (v Vector) Active() []string {
	var active []string
	for i := ContinuousWidth; i < Width; i++ {
		if v[i] != 0 {
			active = append(active, Schema[i])
		}
	}
	return active
}
