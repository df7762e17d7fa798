package planner

import "strings"

// focusTraits is the keyword classification of a session focus name. It is
// the single place where focus labels are matched against keywords.
type focusTraits struct {
	leg, back, strength, fullBody bool
	push, pull, upper, core       bool
	chest, shoulders, arms        bool
	mobility                      bool
}

var (
	legKeywords      = []string{"leg", "lower", "limb", "pierna", "inferior", "squat", "sentadilla"}
	backKeywords     = []string{"back", "espalda", "deadlift", "peso muerto"}
	strengthKeywords = []string{"strength", "fuerza", "heavy", "pesado", "pesada"}
	fullBodyKeywords = []string{"full body", "full-body", "fullbody", "cuerpo completo"}
	pushKeywords     = []string{"push", "empuje"}
	pullKeywords     = []string{"pull", "tirón", "tiron"}
	upperKeywords    = []string{"upper", "torso", "superior"}
	coreKeywords     = []string{"core", "abs", "abdominal"}
	chestKeywords    = []string{"chest", "pecho"}
	shoulderKeywords = []string{"shoulder", "hombro", "delt"}
	armKeywords      = []string{"arm", "brazo", "bicep", "tricep"}
	mobilityKeywords = []string{"active rest", "mobility", "movilidad", "descanso activo", "recovery"}
	rehabKeywords    = []string{"rehab", "prehab"}
)

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func classifyFocus(name string) focusTraits {
	s := strings.ToLower(name)
	return focusTraits{
		leg:       containsAny(s, legKeywords),
		back:      containsAny(s, backKeywords),
		strength:  containsAny(s, strengthKeywords),
		fullBody:  containsAny(s, fullBodyKeywords),
		push:      containsAny(s, pushKeywords),
		pull:      containsAny(s, pullKeywords),
		upper:     containsAny(s, upperKeywords),
		core:      containsAny(s, coreKeywords),
		chest:     containsAny(s, chestKeywords),
		shoulders: containsAny(s, shoulderKeywords),
		arms:      containsAny(s, armKeywords),
		mobility:  containsAny(s, mobilityKeywords),
	}
}

// hard sessions are avoided on days with high external load.
func (f focusTraits) hard() bool {
	return f.leg || f.back || (f.fullBody && f.strength)
}

func (f focusTraits) strengthBiased() bool {
	return f.leg || f.back || f.strength
}

func (f focusTraits) heavyAxial() bool {
	return f.strength && (f.leg || f.fullBody)
}

func (f focusTraits) upperPattern() bool {
	return f.push || f.pull || f.upper || f.chest || f.back || f.shoulders || f.arms
}
