package types

import "fmt"

// Stage represents a phase of the incident-response framework that a comment
// is filed under. Stages are ordered 1 through 4.
type Stage int

const (
	StagePreparation          Stage = 1
	StageDetectionAnalysis    Stage = 2
	StageContainmentRecovery  Stage = 3
	StagePostIncidentActivity Stage = 4
)

// AllStages returns all valid stages in framework order
func AllStages() []Stage {
	return []Stage{
		StagePreparation,
		StageDetectionAnalysis,
		StageContainmentRecovery,
		StagePostIncidentActivity,
	}
}

// IsValid checks if the stage is valid
func (s Stage) IsValid() bool {
	return s >= StagePreparation && s <= StagePostIncidentActivity
}

// Name returns the human-readable name of the framework stage
func (s Stage) Name() string {
	switch s {
	case StagePreparation:
		return "Preparation"
	case StageDetectionAnalysis:
		return "Detection and Analysis"
	case StageContainmentRecovery:
		return "Containment, Eradication and Recovery"
	case StagePostIncidentActivity:
		return "Post-Incident Activity"
	default:
		return fmt.Sprintf("Unknown Stage (%d)", int(s))
	}
}

// ParseStage parses an integer into a Stage
func ParseStage(n int) (Stage, error) {
	s := Stage(n)
	if !s.IsValid() {
		return 0, fmt.Errorf("invalid framework stage: %d", n)
	}
	return s, nil
}
