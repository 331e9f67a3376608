// Package card builds the read-only confirmation card of a submitted member record.
package card

import (
	"regexp"

	"github.com/jonathan/member-form/internal/options"
	"github.com/jonathan/member-form/internal/types"
)

var schemePattern = regexp.MustCompile(`^https?://`)

// SanitizeURL strips a leading http:// or https:// for display.
func SanitizeURL(url string) string {
	return schemePattern.ReplaceAllString(url, "")
}

// Build renders a record for display. The job position is shown by label;
// a key missing from the catalog leaves the label empty.
func Build(record types.FormRecord, catalog *options.Catalog) types.CardView {
	if catalog == nil {
		catalog = options.Default()
	}

	view := types.CardView{
		FullName:         record.FullName,
		JobPosition:      record.JobPosition,
		JobPositionLabel: catalog.Label(record.JobPosition),
		Email:            record.Email,
		Phone:            record.Phone,
	}
	if record.LinkedIn != "" {
		view.LinkedIn = SanitizeURL(record.LinkedIn)
	}
	if record.GitHub != "" {
		view.GitHub = SanitizeURL(record.GitHub)
	}
	return view
}
