package types

import "fmt"

// Determination represents the investigative outcome of a resolved ticket.
// The literals are part of the stored-data contract.
type Determination string

const (
	DeterminationTruePositive  Determination = "True Positive"
	DeterminationFalsePositive Determination = "False Positive"
)

// AllDeterminations returns all valid determinations
func AllDeterminations() []Determination {
	return []Determination{
		DeterminationTruePositive,
		DeterminationFalsePositive,
	}
}

// IsValid checks if the determination is valid
func (d Determination) IsValid() bool {
	switch d {
	case DeterminationTruePositive, DeterminationFalsePositive:
		return true
	default:
		return false
	}
}

// String returns the string representation of the determination
func (d Determination) String() string {
	return string(d)
}

// ParseDetermination parses a string into a Determination
func ParseDetermination(s string) (Determination, error) {
	d := Determination(s)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid determination: %s", s)
	}
	return d, nil
}
