package stage

import "offboard/internal/record"

// Requirement is a hard requirement that termination depends on.
type Requirement struct {
	Stage Stage
	Slot  record.SlotID
}

// slotSatisfied reports whether the requirement named by slot is met.
func slotSatisfied(slot record.SlotID, rec record.Record) bool {
	switch slot {
	case record.SlotResignation:
		return rec.Resignation.Saved
	case record.SlotLastWorkingDay:
		return rec.LastWorkingDay != nil
	case record.SlotExitInterview:
		return rec.ExitInterview.Saved
	case record.SlotFinalPay:
		return rec.FinalPay.Saved
	}
	return false
}

// RequirementSatisfied reports whether the requirement of stage s is met by
// rec.
//
// Property return is always satisfied. The terminal stage is satisfied when
// every hard requirement is (see [Missing]). Invalid stages are never
// satisfied.
func RequirementSatisfied(s Stage, rec record.Record) bool {
	switch s {
	case PropertyReturn:
		return true
	case CompleteTermination:
		return len(Missing(rec)) == 0
	}
	d, ok := Describe(s)
	if !ok {
		return false
	}
	return slotSatisfied(d.Required, rec)
}

// Missing returns the unmet hard requirements in reporting order:
// resignation, last working day, exit interview, final pay. Property return
// never appears.
func Missing(rec record.Record) []Requirement {
	var missing []Requirement
	for _, req := range hardRequirements {
		if !slotSatisfied(req.slot, rec) {
			missing = append(missing, Requirement{Stage: req.stage, Slot: req.slot})
		}
	}
	return missing
}

// CanAdvance reports whether the user may move forward from s.
//
// Only the requirement of s itself is checked; earlier stages were already
// enforced when the user passed them. The terminal stage can never advance.
func CanAdvance(s Stage, rec record.Record) bool {
	if s >= Last || s < First {
		return false
	}
	return RequirementSatisfied(s, rec)
}

// Next returns the stage after s when forward navigation is allowed, and s
// unchanged otherwise. A blocked advance is a no-op, not an error.
func Next(s Stage, rec record.Record) Stage {
	s = s.Clamp()
	if !CanAdvance(s, rec) {
		return s
	}
	return s + 1
}

// Prev returns the stage before s. Backward navigation is always allowed and
// stops at [First].
func Prev(s Stage) Stage {
	s = s.Clamp()
	if s == First {
		return First
	}
	return s - 1
}
