package advisory

import (
	"fmt"
	"strings"
)

// PetState is the pose the pet is currently drawn in.
type PetState string

const (
	PetNeutral         PetState = "neutral"
	PetDistressed      PetState = "distressed"
	PetMaskOn          PetState = "mask_on"
	PetActivityLimited PetState = "activity_limited"
	PetSheltering      PetState = "sheltering"
)

// States lists every pet state in display order.
var States = []PetState{PetNeutral, PetDistressed, PetMaskOn, PetActivityLimited, PetSheltering}

// the mobile app still sends its image names
var stateAliases = map[string]PetState{
	"happy": PetNeutral,
	"sad":   PetDistressed,
	"mask":  PetMaskOn,
	"lpa":   PetActivityLimited,
	"re":    PetSheltering,
}

// ParsePetState resolves a canonical state name or an image alias.
func ParsePetState(raw string) (PetState, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return PetNeutral, nil
	}
	for _, state := range States {
		if string(state) == name {
			return state, nil
		}
	}
	if state, ok := stateAliases[name]; ok {
		return state, nil
	}
	return "", fmt.Errorf("unknown pet state %q", raw)
}

// RequirementOf returns the protection the pet is depicted as having.
func RequirementOf(state PetState) Requirement {
	switch state {
	case PetMaskOn:
		return Requirement{Mask: true}
	case PetActivityLimited:
		return Requirement{ReducedActivity: true}
	case PetSheltering:
		return Requirement{StayIndoors: true}
	default:
		return Requirement{}
	}
}
