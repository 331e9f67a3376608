package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/member-form/internal/schemas"
	"github.com/jonathan/member-form/internal/types"
	rootschemas "github.com/jonathan/member-form/schemas"
)

// DecodeError reports a stored blob that is not a well-formed member record.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid member record blob: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// EncodeRecord serializes a record as a flat JSON object with all six fields.
// Values that are not valid UTF-8 are rejected rather than rewritten.
func EncodeRecord(r types.FormRecord) ([]byte, error) {
	if err := r.CheckText(); err != nil {
		return nil, fmt.Errorf("failed to marshal member record: %w", err)
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal member record: %w", err)
	}
	return data, nil
}

// DecodeRecord checks a blob against the member record schema and deserializes it.
func DecodeRecord(data []byte) (types.FormRecord, error) {
	if err := schemas.ValidateJSONBytes(rootschemas.MemberRecord, data); err != nil {
		return types.FormRecord{}, &DecodeError{Cause: err}
	}

	var r types.FormRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return types.FormRecord{}, &DecodeError{Cause: err}
	}
	return r, nil
}

// WriteRecord encodes and stores a record under MemberDataKey.
func WriteRecord(ctx context.Context, g Gateway, r types.FormRecord) error {
	data, err := EncodeRecord(r)
	if err != nil {
		return err
	}
	if err := g.Write(ctx, MemberDataKey, data); err != nil {
		return fmt.Errorf("failed to persist member record: %w", err)
	}
	return nil
}

// ReadRecord loads the record stored under MemberDataKey.
// It returns ErrNotFound when nothing has been submitted yet.
func ReadRecord(ctx context.Context, g Gateway) (types.FormRecord, error) {
	data, err := g.Read(ctx, MemberDataKey)
	if errors.Is(err, ErrNotFound) {
		return types.FormRecord{}, ErrNotFound
	}
	if err != nil {
		return types.FormRecord{}, fmt.Errorf("failed to read member record: %w", err)
	}
	return DecodeRecord(data)
}
