package model

import "strings"

// Compound identifies the tyre compound of a stint.
type Compound string

const (
	CompoundSoft         Compound = "SOFT"
	CompoundMedium       Compound = "MEDIUM"
	CompoundHard         Compound = "HARD"
	CompoundIntermediate Compound = "INTERMEDIATE"
	CompoundWet          Compound = "WET"
	CompoundUnknown      Compound = "UNKNOWN"
)

// ParseCompound maps the provider value to a known compound.
// Unrecognized values (including test tyres) map to CompoundUnknown.
func ParseCompound(arg string) Compound {
	switch Compound(strings.ToUpper(strings.TrimSpace(arg))) {
	case CompoundSoft:
		return CompoundSoft
	case CompoundMedium:
		return CompoundMedium
	case CompoundHard:
		return CompoundHard
	case CompoundIntermediate:
		return CompoundIntermediate
	case CompoundWet:
		return CompoundWet
	default:
		return CompoundUnknown
	}
}

func (c Compound) String() string { return string(c) }
