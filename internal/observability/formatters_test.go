package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/member-form/internal/types"
)

func TestPrintBox_Layout(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "short\n"+strings.Repeat("é", 100))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 6)
	for _, line := range lines {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, lines[4], "...")
}

func TestPrintErrorMap(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintErrorMap(types.ErrorMap{
		types.FieldPhone:    "Telefone é obrigatório",
		types.FieldFullName: "Nome completo é obrigatório",
		types.FieldGitHub:   "",
	})

	out := buf.String()
	assert.Contains(t, out, "2 field(s) failed")
	assert.Less(t, strings.Index(out, "fullName"), strings.Index(out, "phone"), "canonical order")
	assert.NotContains(t, out, "github")
}

func TestPrintErrorMap_Valid(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintErrorMap(types.ErrorMap{})

	assert.Contains(t, buf.String(), "record is valid")
}

func TestPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRecord(types.FormRecord{FullName: "John Doe", Email: "john@example.com"})

	out := buf.String()
	assert.Contains(t, out, "MEMBER RECORD")
	assert.Contains(t, out, "John Doe")
	assert.Equal(t, 4, strings.Count(out, "(empty)"))
}

func TestPrintCard(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCard(types.CardView{
		FullName:         "John Doe",
		JobPositionLabel: "Analista de QA",
		Email:            "john@example.com",
		Phone:            "1234567890",
		GitHub:           "github.com/johndoe",
	})

	out := buf.String()
	assert.Contains(t, out, "Analista de QA")
	assert.Contains(t, out, "github.com/johndoe")
	assert.NotContains(t, out, "LinkedIn")
}

func TestPrintJobPositions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobPositions([]types.JobPosition{{Key: "4", Label: "Designer UX/UI"}})
	assert.Contains(t, buf.String(), "Designer UX/UI")

	buf.Reset()
	p.PrintJobPositions(nil)
	assert.Contains(t, buf.String(), "no matching positions")
}
