// Package stage provides the offboarding stage catalog, resume resolution and
// the forward-navigation gate.
//
// The catalog is a fixed, ordered list of six stages. Four of them carry a
// hard requirement (an uploaded artifact or the last working day); property
// return has none and the terminal stage requires all four. Everything in
// this package is a pure function of a [record.Record], so callers can
// recompute the landing stage and gate decisions at any time without touching
// session state.
//
// Key functions:
//   - [Catalog] / [Describe] - the stage descriptors
//   - [RequirementSatisfied] - whether a stage's requirement is met
//   - [Resolve] - the stage a (re)opened case lands on
//   - [CanAdvance], [Next], [Prev] - navigation gating
//   - [Missing] - the unmet hard requirements for termination
package stage

import (
	"fmt"

	"offboard/internal/record"
)

// Stage is the zero-based position of a step in the offboarding protocol.
type Stage int

const (
	ResignationNotice Stage = iota
	LastWorkingDay
	ExitInterview
	PropertyReturn
	FinalPay
	CompleteTermination
)

const (
	// First is the initial stage of every case.
	First = ResignationNotice
	// Last is the terminal stage. Reaching it does not finish the case; only
	// a successful finalization does.
	Last = CompleteTermination
)

// Valid reports whether s is within [First, Last].
func (s Stage) Valid() bool {
	return s >= First && s <= Last
}

// Clamp forces s into [First, Last].
func (s Stage) Clamp() Stage {
	if s < First {
		return First
	}
	if s > Last {
		return Last
	}
	return s
}

// String returns the stage label, or a numeric form for invalid stages.
func (s Stage) String() string {
	if d, ok := Describe(s); ok {
		return d.Label
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Descriptor describes one stage of the catalog.
type Descriptor struct {
	// ID is the stage position.
	ID Stage

	// Label is the title shown to users.
	Label string

	// Required names the slot or field the stage requires before the user
	// may move past it. Empty for property return and for the terminal
	// stage, whose gate is the combined [Missing] check.
	Required record.SlotID
}

// catalog is the ordered stage list. It is never handed out directly.
var catalog = [...]Descriptor{
	{ID: ResignationNotice, Label: "Resignation Notice", Required: record.SlotResignation},
	{ID: LastWorkingDay, Label: "Last Working Day", Required: record.SlotLastWorkingDay},
	{ID: ExitInterview, Label: "Exit Interview Summary", Required: record.SlotExitInterview},
	{ID: PropertyReturn, Label: "Property Return"},
	{ID: FinalPay, Label: "Final Pay Details", Required: record.SlotFinalPay},
	{ID: CompleteTermination, Label: "Complete Termination"},
}

// hardRequirements are the requirements checked before termination, in the
// order they are reported. Property return is advisory and not listed.
var hardRequirements = [...]struct {
	stage Stage
	slot  record.SlotID
}{
	{ResignationNotice, record.SlotResignation},
	{LastWorkingDay, record.SlotLastWorkingDay},
	{ExitInterview, record.SlotExitInterview},
	{FinalPay, record.SlotFinalPay},
}

// Catalog returns a copy of the ordered stage descriptors.
func Catalog() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog[:])
	return out
}

// Describe returns the descriptor of s.
func Describe(s Stage) (Descriptor, bool) {
	if !s.Valid() {
		return Descriptor{}, false
	}
	return catalog[s], true
}

// Count is the number of stages in the catalog.
func Count() int {
	return len(catalog)
}
