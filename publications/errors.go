package publications

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPublicationNotFound = errors.New("publications: publication not found")
	ErrPathRequired        = errors.New("publications: bundle path is required")
	ErrSlugInvalid         = errors.New("publications: slug contains invalid characters")
	ErrChecksumRequired    = errors.New("publications: checksum is required")
	ErrOrdinalInvalid      = errors.New("publications: selected ordinal is outside the variant count")
)

// NotFoundError captures missing publication lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrPublicationNotFound.Error()
	}
	key := strings.TrimSpace(e.Key)
	if key != "" {
		return fmt.Sprintf("%s: %s=%s", ErrPublicationNotFound.Error(), e.Resource, key)
	}
	return ErrPublicationNotFound.Error()
}

func (e *NotFoundError) Unwrap() error {
	return ErrPublicationNotFound
}
