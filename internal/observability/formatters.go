// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/member-form/internal/types"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 64

// Printer handles formatted CLI output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRecord outputs every field of a record in canonical order.
func (p *Printer) PrintRecord(record types.FormRecord) {
	var sb strings.Builder
	for _, name := range types.Fields() {
		value := record.Value(name)
		if value == "" {
			value = "(empty)"
		}
		sb.WriteString(fmt.Sprintf("%-12s %s\n", name, value))
	}
	p.printBox("MEMBER RECORD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintErrorMap outputs validation messages in canonical field order.
func (p *Printer) PrintErrorMap(errs types.ErrorMap) {
	if errs.Len() == 0 {
		p.printBox("VALIDATION", "✓ record is valid")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d field(s) failed:\n\n", errs.Len()))
	for _, name := range types.Fields() {
		if errs.Has(name) {
			sb.WriteString(fmt.Sprintf("✗ %-12s %s\n", name, errs.Get(name)))
		}
	}
	p.printBox("VALIDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCard outputs the confirmation card.
func (p *Printer) PrintCard(view types.CardView) {
	var sb strings.Builder

	sb.WriteString(view.FullName + "\n")
	if view.JobPositionLabel != "" {
		sb.WriteString(view.JobPositionLabel + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("E-mail:   %s\n", view.Email))
	sb.WriteString(fmt.Sprintf("Telefone: %s\n", view.Phone))
	if view.LinkedIn != "" {
		sb.WriteString(fmt.Sprintf("LinkedIn: %s\n", view.LinkedIn))
	}
	if view.GitHub != "" {
		sb.WriteString(fmt.Sprintf("GitHub:   %s\n", view.GitHub))
	}

	p.printBox("MEMBER CARD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobPositions outputs a catalog listing.
func (p *Printer) PrintJobPositions(positions []types.JobPosition) {
	if len(positions) == 0 {
		p.printBox("JOB POSITIONS", "no matching positions")
		return
	}

	var sb strings.Builder
	for _, pos := range positions {
		sb.WriteString(fmt.Sprintf("%-4s %s\n", pos.Key, pos.Label))
	}
	p.printBox("JOB POSITIONS", strings.TrimSuffix(sb.String(), "\n"))
}
