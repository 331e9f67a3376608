package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/member-form/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		"member_record.schema.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestMemberRecord_Embedded(t *testing.T) {
	assert.Contains(t, MemberRecord, `"fullName"`)
	assert.Contains(t, MemberRecord, `"additionalProperties": false`)
}

func TestMemberRecord_AcceptsCompleteRecord(t *testing.T) {
	doc := `{
		"fullName": "John Doe",
		"email": "john@example.com",
		"phone": "1234567890",
		"jobPosition": "1",
		"linkedin": "",
		"github": ""
	}`

	assert.NoError(t, schemas.ValidateJSONString(MemberRecord, doc))
}

func TestMemberRecord_RejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "missing key", doc: `{"fullName":"a","email":"b","phone":"c","jobPosition":"d","linkedin":""}`},
		{name: "non-string value", doc: `{"fullName":1,"email":"b","phone":"c","jobPosition":"d","linkedin":"","github":""}`},
		{name: "extra key", doc: `{"fullName":"a","email":"b","phone":"c","jobPosition":"d","linkedin":"","github":"","age":"3"}`},
		{name: "not an object", doc: `["fullName"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schemas.ValidateJSONString(MemberRecord, tt.doc)
			var ve *schemas.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Errors)
		})
	}
}
