// Package output renders offboarding cases for the terminal.
//
// [Printer] is the interface the CLI writes through; [DefaultPrinter] styles
// its output with lipgloss. Colors are dropped automatically when the
// writer is not a terminal, so the same printer serves tests and pipes.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"offboard/internal/offboarding"
	"offboard/internal/record"
	"offboard/internal/stage"
)

// Printer is the terminal output surface used by the CLI.
type Printer interface {
	Stages(descriptors []stage.Descriptor)
	Cases(employeeIDs []string)
	CaseSummary(employeeID string, progress offboarding.Progress, rec record.Record)
	Checklist(items []record.ChecklistItem)
	Success(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

var _ Printer = (*DefaultPrinter)(nil)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB020"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	cursorStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Width(26)
)

// DefaultPrinter writes styled output to a writer.
type DefaultPrinter struct {
	out io.Writer
}

// NewPrinter creates a printer writing to stdout.
func NewPrinter() *DefaultPrinter {
	return NewPrinterWithWriter(os.Stdout)
}

// NewPrinterWithWriter creates a printer writing to w.
func NewPrinterWithWriter(w io.Writer) *DefaultPrinter {
	return &DefaultPrinter{out: w}
}

func (p *DefaultPrinter) println(s string) {
	fmt.Fprintln(p.out, s)
}

// Stages lists the workflow stages with their requirement.
func (p *DefaultPrinter) Stages(descriptors []stage.Descriptor) {
	p.println(titleStyle.Render("Offboarding stages"))
	for _, d := range descriptors {
		req := "none"
		switch {
		case d.ID == stage.CompleteTermination:
			req = "all of the above except property return"
		case d.Required != "":
			req = d.Required.Label()
		}
		p.println(fmt.Sprintf("  %d  %s %s", int(d.ID), labelStyle.Render(d.Label), dimStyle.Render("requires: "+req)))
	}
}

// Cases lists employees with an open case.
func (p *DefaultPrinter) Cases(employeeIDs []string) {
	if len(employeeIDs) == 0 {
		p.println(dimStyle.Render("No open offboarding cases"))
		return
	}
	p.println(titleStyle.Render(fmt.Sprintf("Open cases (%d)", len(employeeIDs))))
	for _, id := range employeeIDs {
		p.println("  " + id)
	}
}

// CaseSummary shows every stage with its state and the session cursor.
func (p *DefaultPrinter) CaseSummary(employeeID string, progress offboarding.Progress, rec record.Record) {
	p.println(titleStyle.Render(fmt.Sprintf("Case %s", employeeID)) + "  " +
		dimStyle.Render(fmt.Sprintf("stage %d of %d: %s", int(progress.Stage), int(stage.Last), progress.Stage)))

	for _, d := range stage.Catalog() {
		marker, detail := stageLine(d, progress, rec)
		pointer := "  "
		if d.ID == progress.Stage {
			pointer = cursorStyle.Render("> ")
		}
		p.println(fmt.Sprintf("%s%s %s %s", pointer, marker, labelStyle.Render(d.Label), detail))
	}
}

// stageLine returns the status marker and detail text for one stage.
func stageLine(d stage.Descriptor, progress offboarding.Progress, rec record.Record) (string, string) {
	switch d.ID {
	case stage.PropertyReturn:
		detail := fmt.Sprintf("%d/%d returned", progress.Returned, progress.Items)
		if progress.Items > 0 && progress.Returned == progress.Items {
			return doneStyle.Render("✓"), detail
		}
		return pendingStyle.Render("•"), dimStyle.Render(detail)
	case stage.CompleteTermination:
		if progress.Complete() {
			return doneStyle.Render("✓"), "ready to finalize"
		}
		labels := make([]string, 0, len(progress.Missing))
		for _, m := range progress.Missing {
			labels = append(labels, m.Slot.Label())
		}
		return missingStyle.Render("✗"), missingStyle.Render("missing " + strings.Join(labels, ", "))
	case stage.LastWorkingDay:
		if rec.LastWorkingDay != nil {
			return doneStyle.Render("✓"), rec.LastWorkingDay.String()
		}
		return missingStyle.Render("✗"), dimStyle.Render("not set")
	}

	slot, err := rec.Artifact(d.Required)
	if err != nil || !slot.Saved {
		return missingStyle.Render("✗"), dimStyle.Render("not uploaded")
	}
	return doneStyle.Render("✓"), slot.URL
}

// Checklist prints the property checklist numbered from 1.
func (p *DefaultPrinter) Checklist(items []record.ChecklistItem) {
	if len(items) == 0 {
		p.println(dimStyle.Render("Checklist is empty"))
		return
	}
	for i, item := range items {
		box := pendingStyle.Render("[ ]")
		if item.Returned {
			box = doneStyle.Render("[x]")
		}
		p.println(fmt.Sprintf("  %2d. %s %s", i+1, box, item.Name))
	}
}

// Success prints a confirmation line.
func (p *DefaultPrinter) Success(format string, args ...any) {
	p.println(doneStyle.Render("✓ " + fmt.Sprintf(format, args...)))
}

// Info prints a neutral line.
func (p *DefaultPrinter) Info(format string, args ...any) {
	p.println(fmt.Sprintf(format, args...))
}

// Error prints a failure line.
func (p *DefaultPrinter) Error(format string, args ...any) {
	p.println(missingStyle.Render("✗ " + fmt.Sprintf(format, args...)))
}
