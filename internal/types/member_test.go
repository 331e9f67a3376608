//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_CanonicalOrder(t *testing.T) {
	assert.Equal(t, []FieldName{
		FieldFullName, FieldEmail, FieldPhone, FieldJobPosition, FieldLinkedIn, FieldGitHub,
	}, Fields())

	// Callers must not be able to reorder the package-level list.
	fields := Fields()
	fields[0] = "mutated"
	assert.Equal(t, FieldFullName, Fields()[0])
}

func TestFieldName_Valid(t *testing.T) {
	for _, name := range Fields() {
		assert.True(t, name.Valid(), name)
	}
	assert.False(t, FieldName("password").Valid())
	assert.False(t, FieldName("").Valid())
}

func TestFormRecord_GetSet(t *testing.T) {
	r := NewFormRecord()
	assert.True(t, r.IsEmpty())

	for _, name := range Fields() {
		require.NoError(t, r.Set(name, "v-"+string(name)))
	}
	for _, name := range Fields() {
		v, err := r.Get(name)
		require.NoError(t, err)
		assert.Equal(t, "v-"+string(name), v)
	}
	assert.False(t, r.IsEmpty())

	err := r.Set("nickname", "x")
	var unknown *UnknownFieldError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nickname", unknown.Field)

	_, err = r.Get("nickname")
	assert.Error(t, err)
	assert.Equal(t, "", r.Value("nickname"))
}

func TestFormRecord_MapHasAllKeys(t *testing.T) {
	m := NewFormRecord().Map()
	assert.Len(t, m, 6)
	for _, name := range Fields() {
		v, ok := m[string(name)]
		assert.True(t, ok, name)
		assert.Empty(t, v)
	}
}

func TestFormRecord_JSONKeys(t *testing.T) {
	r := FormRecord{
		FullName:    "John Doe",
		Email:       "john@example.com",
		Phone:       "1234567890",
		JobPosition: "1",
		LinkedIn:    "https://www.linkedin.com/in/john-doe",
		GitHub:      "https://github.com/johndoe",
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var flat map[string]string
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, r.Map(), flat)
}

func TestErrorMap(t *testing.T) {
	m := ErrorMap{FieldEmail: "Formato de e-mail inválido", FieldPhone: ""}

	assert.True(t, m.Has(FieldEmail))
	assert.False(t, m.Has(FieldPhone))
	assert.False(t, m.Has(FieldGitHub))
	assert.Equal(t, 1, m.Len())

	clone := m.Clone()
	assert.Len(t, clone, 1)
	clone[FieldFullName] = "x"
	assert.NotContains(t, m, FieldFullName)

	assert.Equal(t, map[string]string{"email": "Formato de e-mail inválido"}, m.Strings())

	var nilMap ErrorMap
	assert.Equal(t, "", nilMap.Get(FieldEmail))
}

func TestFormRecord_SetRejectsInvalidUTF8(t *testing.T) {
	r := FormRecord{FullName: "João"}

	err := r.Set(FieldFullName, "Jo\xffão")
	var invalid *InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "fullName", invalid.Field)
	assert.Equal(t, "João", r.FullName, "rejected value must not be applied")

	var unknown *UnknownFieldError
	assert.ErrorAs(t, r.Set("nickname", "\xff"), &unknown)
}

func TestFormRecord_CheckText(t *testing.T) {
	assert.NoError(t, FormRecord{FullName: "João", Phone: "(11) 99999-9999"}.CheckText())

	err := FormRecord{Email: "a\xc3@example.com", GitHub: "\xff"}.CheckText()
	var invalid *InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "email", invalid.Field)
}

func TestFormRecord_Equal(t *testing.T) {
	a := FormRecord{FullName: "John Doe", Email: "john@example.com"}
	b := a

	assert.True(t, a.Equal(b))
	b.GitHub = "https://github.com/johndoe"
	assert.False(t, a.Equal(b))
	assert.True(t, NewFormRecord().Equal(FormRecord{}))
}
