package models

import "fmt"

// SplitType is a training-split architecture.
type SplitType int

const (
	SplitFullBody SplitType = iota + 1
	SplitUpperLowerFull
	SplitUpperLower
	SplitTorsoLimbs
	SplitHybridPHUL
	SplitBodyPart
	SplitPPL
	SplitPPLActiveRest
)

var (
	splitNames = []string{
		SplitFullBody:       "FullBody",
		SplitUpperLowerFull: "UpperLowerFull",
		SplitUpperLower:     "UpperLower",
		SplitTorsoLimbs:     "TorsoLimbs",
		SplitHybridPHUL:     "HybridPHUL",
		SplitBodyPart:       "BodyPart",
		SplitPPL:            "PPL",
		SplitPPLActiveRest:  "PPLActiveRest",
	}
	splitByName = map[string]SplitType{}
)

func init() {
	for i, n := range splitNames {
		if n != "" {
			splitByName[n] = SplitType(i)
		}
	}
}

// AllSplits lists every split variant in declaration order.
func AllSplits() []SplitType {
	out := make([]SplitType, 0, len(splitNames)-1)
	for s := SplitFullBody; s <= SplitPPLActiveRest; s++ {
		out = append(out, s)
	}
	return out
}

// IsValid reports whether s is a known split.
func (s SplitType) IsValid() bool { return s >= SplitFullBody && s <= SplitPPLActiveRest }

func (s SplitType) String() string { return enumName(s, splitNames, "SplitType") }

// MarshalText implements encoding.TextMarshaler.
func (s SplitType) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("models: invalid split: %d", int(s))
	}
	return []byte(splitNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SplitType) UnmarshalText(text []byte) error {
	v, ok := splitByName[string(text)]
	if !ok {
		return fmt.Errorf("models: invalid split: %q", text)
	}
	*s = v
	return nil
}
