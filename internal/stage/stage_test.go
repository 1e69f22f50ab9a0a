package stage

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"offboard/internal/record"
)

var testDay = record.Date{Year: 2025, Month: time.January, Day: 15}

// signals describes which of the four resume signals a record carries.
type signals struct {
	resignation, lastDay, exitInterview, finalPay bool
}

func (s signals) record() record.Record {
	rec := record.New([]string{"Laptop", "Badge"})
	if s.resignation {
		rec.Resignation = record.ArtifactSlot{URL: "https://blob/resignation.pdf", Saved: true}
	}
	if s.lastDay {
		day := testDay
		rec.LastWorkingDay = &day
	}
	if s.exitInterview {
		rec.ExitInterview = record.ArtifactSlot{URL: "https://blob/exit.pdf", Saved: true}
	}
	if s.finalPay {
		rec.FinalPay = record.ArtifactSlot{URL: "https://blob/pay.pdf", Saved: true}
	}
	return rec
}

// allSignals enumerates every combination of the four signals.
func allSignals() []signals {
	out := make([]signals, 0, 16)
	for mask := 0; mask < 16; mask++ {
		out = append(out, signals{
			resignation:   mask&1 != 0,
			lastDay:       mask&2 != 0,
			exitInterview: mask&4 != 0,
			finalPay:      mask&8 != 0,
		})
	}
	return out
}

func TestCatalog(t *testing.T) {
	got := Catalog()

	want := []Descriptor{
		{ID: ResignationNotice, Label: "Resignation Notice", Required: record.SlotResignation},
		{ID: LastWorkingDay, Label: "Last Working Day", Required: record.SlotLastWorkingDay},
		{ID: ExitInterview, Label: "Exit Interview Summary", Required: record.SlotExitInterview},
		{ID: PropertyReturn, Label: "Property Return"},
		{ID: FinalPay, Label: "Final Pay Details", Required: record.SlotFinalPay},
		{ID: CompleteTermination, Label: "Complete Termination"},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 6, Count())

	// Callers get a copy.
	got[0].Label = "changed"
	d, ok := Describe(ResignationNotice)
	assert.True(t, ok)
	assert.Equal(t, "Resignation Notice", d.Label)
}

func TestDescribe_Invalid(t *testing.T) {
	for _, s := range []Stage{-1, 6, 42} {
		_, ok := Describe(s)
		assert.False(t, ok, "stage %d", s)
		assert.Equal(t, fmt.Sprintf("stage(%d)", int(s)), s.String())
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		signals signals
		want    Stage
	}{
		{name: "empty case starts at resignation", want: ResignationNotice},
		{name: "resignation saved", signals: signals{resignation: true}, want: LastWorkingDay},
		{name: "last day set", signals: signals{resignation: true, lastDay: true}, want: ExitInterview},
		{
			name:    "exit interview saved skips property return",
			signals: signals{resignation: true, lastDay: true, exitInterview: true},
			want:    FinalPay,
		},
		{
			name:    "everything saved lands on termination",
			signals: signals{resignation: true, lastDay: true, exitInterview: true, finalPay: true},
			want:    CompleteTermination,
		},
		{name: "only final pay saved", signals: signals{finalPay: true}, want: CompleteTermination},
		{name: "only last day set", signals: signals{lastDay: true}, want: ExitInterview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.signals.record()); got != tt.want {
				t.Errorf("Resolve(%+v) = %v, want %v", tt.signals, got, tt.want)
			}
		})
	}
}

func TestResolve_IsIdempotent(t *testing.T) {
	for _, sig := range allSignals() {
		rec := sig.record()
		first := Resolve(rec)
		second := Resolve(rec)
		if first != second {
			t.Errorf("Resolve(%+v) not idempotent: %v then %v", sig, first, second)
		}
		if !first.Valid() {
			t.Errorf("Resolve(%+v) = %v, outside the catalog", sig, first)
		}
	}
}

func TestResolve_IsMonotonic(t *testing.T) {
	for _, before := range allSignals() {
		upgrades := []signals{
			{true, before.lastDay, before.exitInterview, before.finalPay},
			{before.resignation, true, before.exitInterview, before.finalPay},
			{before.resignation, before.lastDay, true, before.finalPay},
			{before.resignation, before.lastDay, before.exitInterview, true},
		}
		for _, after := range upgrades {
			if Resolve(after.record()) < Resolve(before.record()) {
				t.Errorf("Resolve regressed from %+v to %+v", before, after)
			}
		}
	}
}

func TestResolve_NeverLandsOnPropertyReturn(t *testing.T) {
	for _, sig := range allSignals() {
		if got := Resolve(sig.record()); got == PropertyReturn {
			t.Errorf("Resolve(%+v) landed on property return", sig)
		}
	}
}

func TestResolve_IgnoresChecklist(t *testing.T) {
	rec := signals{resignation: true, lastDay: true, exitInterview: true}.record()
	before := Resolve(rec)

	rec, _ = rec.WithChecklistToggled(0)
	rec, _ = rec.WithChecklistToggled(1)

	assert.Equal(t, before, Resolve(rec))
}

func TestRequirementSatisfied(t *testing.T) {
	full := signals{true, true, true, true}.record()
	empty := signals{}.record()

	for _, s := range []Stage{ResignationNotice, LastWorkingDay, ExitInterview, FinalPay, CompleteTermination} {
		assert.True(t, RequirementSatisfied(s, full), "%v with full record", s)
		assert.False(t, RequirementSatisfied(s, empty), "%v with empty record", s)
	}
	assert.True(t, RequirementSatisfied(PropertyReturn, empty))
	assert.False(t, RequirementSatisfied(Stage(9), full))
}

func TestRequirementSatisfied_TerminalIgnoresPropertyReturn(t *testing.T) {
	rec := signals{true, true, true, true}.record()
	for _, item := range rec.PropertyChecklist {
		assert.False(t, item.Returned)
	}
	assert.True(t, RequirementSatisfied(CompleteTermination, rec))
}

func TestCanAdvance_LastWorkingDayDependsOnlyOnDate(t *testing.T) {
	for _, sig := range allSignals() {
		got := CanAdvance(LastWorkingDay, sig.record())
		if got != sig.lastDay {
			t.Errorf("CanAdvance(LastWorkingDay, %+v) = %v, want %v", sig, got, sig.lastDay)
		}
	}
}

func TestCanAdvance(t *testing.T) {
	tests := []struct {
		stage   Stage
		signals signals
		want    bool
	}{
		{ResignationNotice, signals{}, false},
		{ResignationNotice, signals{resignation: true}, true},
		{ExitInterview, signals{resignation: true, lastDay: true}, false},
		{ExitInterview, signals{exitInterview: true}, true},
		{PropertyReturn, signals{}, true},
		{FinalPay, signals{}, false},
		{FinalPay, signals{finalPay: true}, true},
		{CompleteTermination, signals{true, true, true, true}, false},
		{Stage(-1), signals{true, true, true, true}, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v/%+v", tt.stage, tt.signals), func(t *testing.T) {
			assert.Equal(t, tt.want, CanAdvance(tt.stage, tt.signals.record()))
		})
	}
}

func TestNextAndPrev(t *testing.T) {
	empty := signals{}.record()
	full := signals{true, true, true, true}.record()

	assert.Equal(t, ResignationNotice, Next(ResignationNotice, empty), "blocked advance is a no-op")
	assert.Equal(t, LastWorkingDay, Next(ResignationNotice, full))
	assert.Equal(t, FinalPay, Next(PropertyReturn, empty), "property return never blocks")
	assert.Equal(t, CompleteTermination, Next(CompleteTermination, full), "ceiling at the terminal stage")

	assert.Equal(t, ResignationNotice, Prev(ResignationNotice), "floor at the first stage")
	assert.Equal(t, PropertyReturn, Prev(FinalPay), "property return reachable backwards")
	assert.Equal(t, FinalPay, Prev(CompleteTermination))
}

func TestMissing(t *testing.T) {
	rec := signals{lastDay: true}.record()

	got := Missing(rec)
	want := []Requirement{
		{Stage: ResignationNotice, Slot: record.SlotResignation},
		{Stage: ExitInterview, Slot: record.SlotExitInterview},
		{Stage: FinalPay, Slot: record.SlotFinalPay},
	}
	assert.Equal(t, want, got)
	assert.Empty(t, Missing(signals{true, true, true, true}.record()))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, First, Stage(-3).Clamp())
	assert.Equal(t, Last, Stage(12).Clamp())
	assert.Equal(t, FinalPay, FinalPay.Clamp())
}
