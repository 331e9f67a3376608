// Package schemas embeds the JSON Schemas of persisted artifacts.
package schemas

import (
	_ "embed"
)

// MemberRecord is the schema of the blob stored under the "memberData" key.
//
//go:embed member_record.schema.json
var MemberRecord string
