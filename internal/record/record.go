// Package record defines the persisted shape of an offboarding case.
//
// A [Record] is what the case store keeps per employee: the three artifact
// slots, the last working day and the property checklist. It deliberately has
// no stage cursor; the stage a user lands on is derived from the record every
// time it is loaded (see the stage package).
//
// Records are values. Every mutation helper returns a modified copy and leaves
// the receiver untouched, so a caller can persist the copy first and adopt it
// only once the write succeeded.
//
// Key types:
//   - [Record] - the persisted case
//   - [ArtifactSlot] - an uploaded document requirement
//   - [ChecklistItem] - one row of the property-return checklist
//   - [SlotID] - identifier of a requirement (artifact slot or scalar field)
//   - [Date] - a calendar day with text encoding
package record

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for record mutation.
var (
	// ErrUnknownSlot is returned when a slot identifier does not name an
	// artifact slot.
	ErrUnknownSlot = errors.New("unknown artifact slot")

	// ErrChecklistIndex is returned when a checklist index is out of range.
	ErrChecklistIndex = errors.New("checklist index out of range")
)

// SlotID identifies a requirement of a stage.
//
// Three identifiers name artifact slots (uploaded documents) and one names
// the scalar last-working-day field.
type SlotID string

const (
	SlotResignation    SlotID = "resignation"
	SlotLastWorkingDay SlotID = "lastWorkingDay"
	SlotExitInterview  SlotID = "exitInterview"
	SlotFinalPay       SlotID = "finalPay"
)

// ArtifactSlots returns the artifact slot identifiers in stage order.
func ArtifactSlots() []SlotID {
	return []SlotID{SlotResignation, SlotExitInterview, SlotFinalPay}
}

// IsArtifact reports whether s names an uploaded-document slot.
func (s SlotID) IsArtifact() bool {
	switch s {
	case SlotResignation, SlotExitInterview, SlotFinalPay:
		return true
	}
	return false
}

// Label returns a human readable name for the requirement.
func (s SlotID) Label() string {
	switch s {
	case SlotResignation:
		return "resignation notice"
	case SlotLastWorkingDay:
		return "last working day"
	case SlotExitInterview:
		return "exit interview summary"
	case SlotFinalPay:
		return "final pay details"
	}
	return string(s)
}

// ParseSlot converts user input into an artifact [SlotID].
//
// Matching ignores case and accepts the camelCase identifiers as well as
// kebab-case and snake_case spellings ("exit-interview", "final_pay").
func ParseSlot(s string) (SlotID, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)
	for _, id := range ArtifactSlots() {
		if strings.ToLower(string(id)) == normalized {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSlot, s)
}

// ArtifactSlot is an uploaded-document requirement.
//
// Saved only becomes true once an upload confirmed a URL, so Saved implies a
// non-empty URL. Selecting a file without saving never touches the slot.
type ArtifactSlot struct {
	URL   string `yaml:"url,omitempty" json:"url,omitempty"`
	Saved bool   `yaml:"saved" json:"saved"`
}

// ChecklistItem is one row of the property-return checklist.
type ChecklistItem struct {
	Name     string `yaml:"name" json:"name"`
	Returned bool   `yaml:"returned" json:"returned"`
}

// Record is the persisted state of one employee's offboarding case.
//
// A record missing fields (for example one written by an older build) decodes
// with those fields at their zero value, which reads as "not done yet".
type Record struct {
	Resignation       ArtifactSlot    `yaml:"resignation" json:"resignation"`
	LastWorkingDay    *Date           `yaml:"last_working_day,omitempty" json:"last_working_day,omitempty"`
	ExitInterview     ArtifactSlot    `yaml:"exit_interview" json:"exit_interview"`
	PropertyChecklist []ChecklistItem `yaml:"property_checklist" json:"property_checklist"`
	FinalPay          ArtifactSlot    `yaml:"final_pay" json:"final_pay"`
}

// New returns an empty record whose checklist is seeded from defaults.
//
// The names are copied, so later edits to the record never reach the
// caller's slice.
func New(defaults []string) Record {
	items := make([]ChecklistItem, 0, len(defaults))
	for _, name := range defaults {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		items = append(items, ChecklistItem{Name: name})
	}
	return Record{PropertyChecklist: items}
}

// WithDefaults fills a checklist that was never written (nil) from defaults.
// A record that already carries a checklist is returned unchanged.
func (r Record) WithDefaults(defaults []string) Record {
	if r.PropertyChecklist != nil {
		return r.Clone()
	}
	out := r.Clone()
	out.PropertyChecklist = New(defaults).PropertyChecklist
	return out
}

// Normalize returns a copy in which every artifact slot marked saved without
// a URL is reset to unsaved. Stores call it on decode so hand-edited or
// truncated records never satisfy a requirement without a document.
func (r Record) Normalize() Record {
	out := r.Clone()
	for _, slot := range []*ArtifactSlot{&out.Resignation, &out.ExitInterview, &out.FinalPay} {
		if slot.Saved && strings.TrimSpace(slot.URL) == "" {
			*slot = ArtifactSlot{}
		}
	}
	return out
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	if r.LastWorkingDay != nil {
		day := *r.LastWorkingDay
		out.LastWorkingDay = &day
	}
	if r.PropertyChecklist != nil {
		out.PropertyChecklist = make([]ChecklistItem, len(r.PropertyChecklist))
		copy(out.PropertyChecklist, r.PropertyChecklist)
	}
	return out
}

// Artifact returns the artifact slot named by id.
func (r Record) Artifact(id SlotID) (ArtifactSlot, error) {
	switch id {
	case SlotResignation:
		return r.Resignation, nil
	case SlotExitInterview:
		return r.ExitInterview, nil
	case SlotFinalPay:
		return r.FinalPay, nil
	}
	return ArtifactSlot{}, fmt.Errorf("%w: %q", ErrUnknownSlot, id)
}

// WithArtifact returns a copy with the slot replaced by a saved artifact at
// url. Any previous URL in the slot is discarded.
func (r Record) WithArtifact(id SlotID, url string) (Record, error) {
	if url == "" {
		return Record{}, fmt.Errorf("artifact %s: empty url", id)
	}
	out := r.Clone()
	slot := ArtifactSlot{URL: url, Saved: true}
	switch id {
	case SlotResignation:
		out.Resignation = slot
	case SlotExitInterview:
		out.ExitInterview = slot
	case SlotFinalPay:
		out.FinalPay = slot
	default:
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownSlot, id)
	}
	return out, nil
}

// WithLastWorkingDay returns a copy with the last working day set.
func (r Record) WithLastWorkingDay(day Date) Record {
	out := r.Clone()
	out.LastWorkingDay = &day
	return out
}

// WithChecklistToggled returns a copy with the item at index flipped.
func (r Record) WithChecklistToggled(index int) (Record, error) {
	if index < 0 || index >= len(r.PropertyChecklist) {
		return Record{}, fmt.Errorf("%w: %d (have %d items)", ErrChecklistIndex, index, len(r.PropertyChecklist))
	}
	out := r.Clone()
	out.PropertyChecklist[index].Returned = !out.PropertyChecklist[index].Returned
	return out, nil
}

// WithChecklistItem returns a copy with a new, not yet returned item
// appended. The caller is responsible for rejecting blank names.
func (r Record) WithChecklistItem(name string) Record {
	out := r.Clone()
	out.PropertyChecklist = append(out.PropertyChecklist, ChecklistItem{Name: name})
	return out
}

// ReturnedCount reports how many checklist items are marked returned.
func (r Record) ReturnedCount() int {
	n := 0
	for _, item := range r.PropertyChecklist {
		if item.Returned {
			n++
		}
	}
	return n
}
