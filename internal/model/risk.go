package model

import "fmt"

// RiskLabel is the binary output of the risk classifier.
type RiskLabel int

// Risk labels.
const (
	RiskLow  RiskLabel = 0
	RiskHigh RiskLabel = 1
)

// Disclaimer accompanies every displayed prediction.
const Disclaimer = "Caution: This is just a prediction and not a substitute for professional medical advice. Kindly see a doctor if you have any concerns."

// Valid reports whether l is one of the two known labels.
func (l RiskLabel) Valid() bool {
	return l == RiskLow || l == RiskHigh
}

// Message returns the text shown to the user for the label.
func (l RiskLabel) Message() string {
	if l == RiskLow {
		return "You have a lower risk of getting a heart disease!"
	}
	return "Warning! You have a high risk of getting a heart attack!"
}

func (l RiskLabel) String() string {
	switch l {
	case RiskLow:
		return "low"
	case RiskHigh:
		return "high"
	default:
		return fmt.Sprintf("RiskLabel(%d)", int(l))
	}
}
