package domain

import (
	"errors"
	"fmt"
)

// ErrSystolicNotAboveDiastolic is the business-rule violation for readings
// where systolic is not strictly greater than diastolic. It is distinct from
// the schema-level range failures so the transport layer can surface its own
// message.
var ErrSystolicNotAboveDiastolic = errors.New("systolic must be higher than diastolic")

// Hard schema bounds. Values outside these reject the write.
const (
	SystolicMin  = 50
	SystolicMax  = 300
	DiastolicMin = 30
	DiastolicMax = 200
	PulseMin     = 30
	PulseMax     = 220
	NotesMaxLen  = 500
)

// Plausible measurement ranges. Values outside these are accepted but flagged
// with an advisory warning.
const (
	plausibleSystolicMin  = 70
	plausibleSystolicMax  = 250
	plausibleDiastolicMin = 40
	plausibleDiastolicMax = 150
)

// FieldError describes a single schema-bound violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of validating a reading before persistence.
// FieldErrors and RuleError reject the write; Warnings are advisory only.
type ValidationResult struct {
	FieldErrors []FieldError
	RuleError   error
	Warnings    []string
}

// OK reports whether the reading may be persisted.
func (r ValidationResult) OK() bool {
	return len(r.FieldErrors) == 0 && r.RuleError == nil
}

// ValidateReading checks a reading's fields against the hard schema bounds,
// the systolic > diastolic business rule, and the plausibility ranges.
// All violated bounds are collected; the business rule is only checked once
// the bounds pass, and plausibility never rejects.
func ValidateReading(systolic, diastolic int, pulse *int, notes string) ValidationResult {
	var res ValidationResult

	if systolic < SystolicMin || systolic > SystolicMax {
		res.FieldErrors = append(res.FieldErrors, FieldError{
			Field:   "systolic",
			Message: fmt.Sprintf("Systolic value must be between %d-%d mmHg", SystolicMin, SystolicMax),
		})
	}
	if diastolic < DiastolicMin || diastolic > DiastolicMax {
		res.FieldErrors = append(res.FieldErrors, FieldError{
			Field:   "diastolic",
			Message: fmt.Sprintf("Diastolic value must be between %d-%d mmHg", DiastolicMin, DiastolicMax),
		})
	}
	if pulse != nil && (*pulse < PulseMin || *pulse > PulseMax) {
		res.FieldErrors = append(res.FieldErrors, FieldError{
			Field:   "pulse",
			Message: fmt.Sprintf("Pulse must be between %d-%d bpm", PulseMin, PulseMax),
		})
	}
	if len(notes) > NotesMaxLen {
		res.FieldErrors = append(res.FieldErrors, FieldError{
			Field:   "notes",
			Message: fmt.Sprintf("Notes must be %d characters or fewer", NotesMaxLen),
		})
	}
	if len(res.FieldErrors) > 0 {
		return res
	}

	if systolic <= diastolic {
		res.RuleError = ErrSystolicNotAboveDiastolic
		return res
	}

	if systolic < plausibleSystolicMin || systolic > plausibleSystolicMax {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("Systolic reading seems unusual (%d-%d range expected)", plausibleSystolicMin, plausibleSystolicMax))
	}
	if diastolic < plausibleDiastolicMin || diastolic > plausibleDiastolicMax {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("Diastolic reading seems unusual (%d-%d range expected)", plausibleDiastolicMin, plausibleDiastolicMax))
	}
	return res
}
