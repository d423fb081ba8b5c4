// Package validation turns raw form input into a normalized Record or a
// list of field-level errors.
package validation

import (
	"fmt"
	"strings"

	"constituency_site/locations"
	"constituency_site/models"
)

// FieldError describes one rejected field so the shell can render the
// message next to the offending input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects every failed check for one submission.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// ValidateRecord checks raw input against the location registry and returns
// the normalized record ready for persistence. ID and CreatedAt are left
// zero; the store assigns both. The chosen panchayat is checked against the
// flattened list only; it is allowed to come from a different block than
// the one selected.
func ValidateRecord(in models.RecordInput) (models.Record, Errors) {
	var errs Errors

	block := strings.TrimSpace(in.Block)
	if block == "" || block == locations.BlockPlaceholder {
		errs = append(errs, FieldError{Field: "block", Message: "Please select a Block"})
	} else if !locations.IsBlock(block) {
		errs = append(errs, FieldError{Field: "block", Message: fmt.Sprintf("Unknown block %q", block)})
	}

	panchayat := strings.TrimSpace(in.Panchayat)
	if panchayat == "" || panchayat == locations.PanchayatPlaceholder {
		errs = append(errs, FieldError{Field: "panchayat", Message: "Please select a Panchayat"})
	} else if !locations.IsPanchayat(panchayat) {
		errs = append(errs, FieldError{Field: "panchayat", Message: fmt.Sprintf("Unknown panchayat %q", panchayat)})
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Please enter a Name"})
	}

	mobile := strings.TrimSpace(in.MobileNumber)
	if mobile != "" && !isTenDigits(mobile) {
		errs = append(errs, FieldError{Field: "mobile_number", Message: "Please enter a valid 10-digit mobile number"})
	}

	if len(errs) > 0 {
		return models.Record{}, errs
	}

	vidhanSabha := strings.TrimSpace(in.VidhanSabha)
	if vidhanSabha == "" {
		vidhanSabha = locations.DefaultVidhanSabha
	}

	return models.Record{
		VidhanSabha:  vidhanSabha,
		Block:        block,
		Panchayat:    panchayat,
		Name:         name,
		Designation:  strings.TrimSpace(in.Designation),
		MobileNumber: mobile,
		Address:      strings.TrimSpace(in.Address),
	}, nil
}

func isTenDigits(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
