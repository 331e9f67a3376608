package validation

import (
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/jonathan/member-form/internal/types"
)

// Result is the outcome of validating one field value: valid, or invalid with a message.
type Result struct {
	Kind    Kind
	Message string
}

// Valid is the zero Result.
var Valid = Result{}

// Invalid builds a failing Result.
func Invalid(kind Kind, message string) Result {
	return Result{Kind: kind, Message: message}
}

// OK reports whether the value passed.
// An empty message counts as valid, so a failure always carries text.
func (r Result) OK() bool {
	return r.Message == ""
}

// Validator applies the rule table to field values and whole records.
// It holds no per-record state and is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	v := validator.New()
	registerWebURL(v)
	return &Validator{validate: v}
}

// ValidateValue checks a single value against the rule of the named field.
// Unknown fields have no rule and are always valid.
func (v *Validator) ValidateValue(name types.FieldName, value string) Result {
	rule, ok := RuleFor(name)
	if !ok {
		return Valid
	}

	if value == "" {
		if rule.Required {
			return Invalid(RequiredFieldMissing, rule.RequiredMessage)
		}
		return Valid
	}

	for _, check := range rule.Checks {
		if err := v.validate.Var(value, check.Tag); err != nil {
			return Invalid(FormatInvalid, check.Message)
		}
	}
	return Valid
}

// ValidateField checks one field of a record, in isolation from the other fields.
func (v *Validator) ValidateField(record types.FormRecord, name types.FieldName) Result {
	return v.ValidateValue(name, record.Value(name))
}

// ValidateAll checks every field without stopping at the first failure.
// It returns nil when the record is valid, or a *ValidationError listing every failed field.
func (v *Validator) ValidateAll(record types.FormRecord) error {
	failed := lo.FilterMap(Rules(), func(rule Rule, _ int) (FieldError, bool) {
		res := v.ValidateField(record, rule.Field)
		if res.OK() {
			return FieldError{}, false
		}
		return FieldError{Field: rule.Field, Kind: res.Kind, Message: res.Message}, true
	})

	if len(failed) == 0 {
		return nil
	}
	return &ValidationError{Errors: failed}
}

// Errors returns the complete ErrorMap of a record; empty when the record is valid.
func (v *Validator) Errors(record types.FormRecord) types.ErrorMap {
	if err := v.ValidateAll(record); err != nil {
		return err.(*ValidationError).ErrorMap()
	}
	return types.ErrorMap{}
}
