package labeling

import "math"

// ModificationDirection describes how a performed set deviated from its
// prescription. Can be one of:
//   - up
//   - down
//   - same
//   - mixed
type ModificationDirection string

const (
	ModificationUp    ModificationDirection = "up"
	ModificationDown  ModificationDirection = "down"
	ModificationSame  ModificationDirection = "same"
	ModificationMixed ModificationDirection = "mixed"
)

func (d ModificationDirection) String() string {
	return string(d)
}

func (d ModificationDirection) IsValid() bool {
	switch d {
	case ModificationUp, ModificationDown, ModificationSame, ModificationMixed:
		return true
	default:
		return false
	}
}

// ReasonCode is the optional, user-supplied explanation of a modification.
// Can be one of:
//   - too_heavy
//   - too_light
//   - fatigue
//   - equipment_unavailable
//   - time_pressure
//   - pain
//   - other
type ReasonCode string

const (
	ReasonTooHeavy             ReasonCode = "too_heavy"
	ReasonTooLight             ReasonCode = "too_light"
	ReasonFatigue              ReasonCode = "fatigue"
	ReasonEquipmentUnavailable ReasonCode = "equipment_unavailable"
	ReasonTimePressure         ReasonCode = "time_pressure"
	ReasonPain                 ReasonCode = "pain"
	ReasonOther                ReasonCode = "other"
)

func (r ReasonCode) IsValid() bool {
	switch r {
	case ReasonTooHeavy, ReasonTooLight, ReasonFatigue,
		ReasonEquipmentUnavailable, ReasonTimePressure, ReasonPain, ReasonOther:
		return true
	default:
		return false
	}
}

// sameWeightTolerance absorbs sub-plate rounding noise when deciding
// whether the load was changed at all.
const sameWeightTolerance = 0.1

// ModificationDetails quantifies how far a performed set deviated from its
// prescription. Always derived, never hand-entered.
type ModificationDetails struct {
	DeltaWeightKg float64               `json:"deltaWeightKg"`
	DeltaReps     int                   `json:"deltaReps"`
	Direction     ModificationDirection `json:"direction"`
	Reason        *ReasonCode           `json:"reason,omitempty"`
}

// ComputeModification derives the deviation of what was done from what was
// prescribed.
func ComputeModification(
	recommendedWeightKg float64, recommendedReps int,
	actualWeightKg float64, actualReps int,
	reason *ReasonCode,
) ModificationDetails {
	deltaWeight := actualWeightKg - recommendedWeightKg
	deltaReps := actualReps - recommendedReps

	var direction ModificationDirection
	switch {
	case math.Abs(deltaWeight) < sameWeightTolerance && deltaReps == 0:
		direction = ModificationSame
	case deltaWeight >= 0 && deltaReps >= 0:
		direction = ModificationUp
	case deltaWeight <= 0 && deltaReps <= 0:
		direction = ModificationDown
	default:
		direction = ModificationMixed
	}

	return ModificationDetails{
		DeltaWeightKg: deltaWeight,
		DeltaReps:     deltaReps,
		Direction:     direction,
		Reason:        reason,
	}
}
