package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/member-form/internal/observability"
	"github.com/jonathan/member-form/internal/types"
	"github.com/jonathan/member-form/internal/validation"
)

var (
	validateInput string
	validateJSON  bool
)

var errRecordInvalid = errors.New("record is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a member record file",
	Long: `Validate a member record JSON file against every field rule.

Exits with a non-zero status when any field fails.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to member record JSON file (required)")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Print the error map as JSON")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func readRecordFile(path string) (types.FormRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.FormRecord{}, fmt.Errorf("failed to read record file: %w", err)
	}

	var record types.FormRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&record); err != nil {
		return types.FormRecord{}, fmt.Errorf("failed to parse record file: %w", err)
	}
	return record, nil
}

func runValidate(cmd *cobra.Command, _ []string) error {
	record, err := readRecordFile(validateInput)
	if err != nil {
		return err
	}

	errs := validation.New().Errors(record)
	out := cmd.OutOrStdout()

	if validateJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{
			"valid":  errs.Len() == 0,
			"errors": errs.Strings(),
		}); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		p := observability.NewPrinter(out)
		p.PrintRecord(record)
		p.PrintErrorMap(errs)
	}

	if errs.Len() > 0 {
		return errRecordInvalid
	}
	return nil
}
