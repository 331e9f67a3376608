package validation

import (
	"github.com/jonathan/member-form/internal/types"
)

// Messages shown next to the offending input.
const (
	MsgFullNameRequired    = "Nome completo é obrigatório"
	MsgEmailRequired       = "E-mail é obrigatório"
	MsgPhoneRequired       = "Telefone é obrigatório"
	MsgJobPositionRequired = "Cargo pretendido é obrigatório"
	MsgEmailInvalid        = "Formato de e-mail inválido"
	MsgURLInvalid          = "URL inválida"
	MsgLinkedInPrefix      = `A URL deve começar com "https://www.linkedin.com/in/"`
	MsgGitHubPrefix        = `A URL deve começar com "https://github.com/"`
)

// URL prefixes accepted for the optional profile links.
const (
	LinkedInPrefix = "https://www.linkedin.com/in/"
	GitHubPrefix   = "https://github.com/"
)

// Check is one format test, expressed as a validator tag, and the message it reports.
type Check struct {
	Tag     string
	Message string
}

// Rule declares how one field is validated.
// Required fields report RequiredMessage when empty; optional fields skip Checks when empty.
// Checks run in order and the first failing one wins.
type Rule struct {
	Field           types.FieldName
	Required        bool
	RequiredMessage string
	Checks          []Check
}

var rules = []Rule{
	{
		Field:           types.FieldFullName,
		Required:        true,
		RequiredMessage: MsgFullNameRequired,
	},
	{
		Field:           types.FieldEmail,
		Required:        true,
		RequiredMessage: MsgEmailRequired,
		Checks:          []Check{{Tag: "email", Message: MsgEmailInvalid}},
	},
	{
		Field:           types.FieldPhone,
		Required:        true,
		RequiredMessage: MsgPhoneRequired,
	},
	{
		// Membership in the option list is the dropdown's job.
		Field:           types.FieldJobPosition,
		Required:        true,
		RequiredMessage: MsgJobPositionRequired,
	},
	{
		Field: types.FieldLinkedIn,
		Checks: []Check{
			{Tag: TagWebURL, Message: MsgURLInvalid},
			{Tag: "startswith=" + LinkedInPrefix, Message: MsgLinkedInPrefix},
		},
	},
	{
		Field: types.FieldGitHub,
		Checks: []Check{
			{Tag: TagWebURL, Message: MsgURLInvalid},
			{Tag: "startswith=" + GitHubPrefix, Message: MsgGitHubPrefix},
		},
	},
}

var rulesByField = func() map[types.FieldName]Rule {
	m := make(map[types.FieldName]Rule, len(rules))
	for _, r := range rules {
		m[r.Field] = r
	}
	return m
}()

// Rules returns the rule table in canonical field order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// RuleFor returns the rule of a field.
func RuleFor(name types.FieldName) (Rule, bool) {
	r, ok := rulesByField[name]
	return r, ok
}
