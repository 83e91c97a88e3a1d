package variants

import (
	"errors"
	"fmt"
)

var (
	ErrDelimiterRequired = errors.New("variants: delimiter is required")
	ErrOrdinalOutOfRange = errors.New("variants: ordinal out of range")
	ErrPolicyInvalid     = errors.New("variants: selection policy is invalid")
)

// OrdinalOutOfRangeError captures index selections outside the valid ordinal
// range for a variant sequence.
type OrdinalOutOfRangeError struct {
	Ordinal int
	Count   int
}

func (e *OrdinalOutOfRangeError) Error() string {
	if e == nil {
		return ErrOrdinalOutOfRange.Error()
	}
	return fmt.Sprintf("%s: index=%d count=%d", ErrOrdinalOutOfRange.Error(), e.Ordinal, e.Count)
}

func (e *OrdinalOutOfRangeError) Unwrap() error {
	return ErrOrdinalOutOfRange
}

// PolicyInvalidError captures selection policy values that could not be
// parsed or validated.
type PolicyInvalidError struct {
	Value string
}

func (e *PolicyInvalidError) Error() string {
	if e == nil || e.Value == "" {
		return ErrPolicyInvalid.Error()
	}
	return fmt.Sprintf("%s: %q", ErrPolicyInvalid.Error(), e.Value)
}

func (e *PolicyInvalidError) Unwrap() error {
	return ErrPolicyInvalid
}
