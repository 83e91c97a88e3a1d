package variants

import (
	"fmt"
	"strconv"
	"strings"
)

// PolicyKind enumerates the supported variant selection strategies.
type PolicyKind string

const (
	// PolicyFirst selects the variant at ordinal 0, treating the
	// first-authored rendering as canonical.
	PolicyFirst PolicyKind = "first"
	// PolicyLast selects the variant at the final ordinal. Bundles are
	// typically grown by appending a revised rendering after the original,
	// so last-wins is the default.
	PolicyLast PolicyKind = "last"
	// PolicyIndex selects the variant at an explicit ordinal.
	PolicyIndex PolicyKind = "index"
)

// Policy describes which variant of a bundle is canonical. The zero value is
// not valid; use DefaultPolicy or one of the constructors.
type Policy struct {
	Kind PolicyKind
	// Ordinal is only consulted when Kind is PolicyIndex.
	Ordinal int
}

// DefaultPolicy returns the last-wins policy.
func DefaultPolicy() Policy {
	return Policy{Kind: PolicyLast}
}

// First returns the policy selecting ordinal 0.
func First() Policy {
	return Policy{Kind: PolicyFirst}
}

// Last returns the policy selecting the final ordinal.
func Last() Policy {
	return Policy{Kind: PolicyLast}
}

// Index returns the policy selecting an explicit ordinal.
func Index(ordinal int) Policy {
	return Policy{Kind: PolicyIndex, Ordinal: ordinal}
}

// ParsePolicy converts a configuration string into a Policy. Accepted forms
// are "first", "last", "index:N", and a bare non-negative integer as
// shorthand for index selection. Parsing is case-insensitive and tolerant of
// surrounding whitespace.
func ParsePolicy(value string) (Policy, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	switch trimmed {
	case "", string(PolicyLast):
		return Last(), nil
	case string(PolicyFirst):
		return First(), nil
	}

	raw := trimmed
	if rest, ok := strings.CutPrefix(trimmed, string(PolicyIndex)+":"); ok {
		raw = strings.TrimSpace(rest)
	}
	ordinal, err := strconv.Atoi(raw)
	if err != nil || ordinal < 0 {
		return Policy{}, &PolicyInvalidError{Value: value}
	}
	return Index(ordinal), nil
}

// String renders the policy in the same form ParsePolicy accepts.
func (p Policy) String() string {
	if p.Kind == PolicyIndex {
		return fmt.Sprintf("%s:%d", PolicyIndex, p.Ordinal)
	}
	return string(p.Kind)
}

// Validate reports whether the policy is one of the supported kinds.
func (p Policy) Validate() error {
	switch p.Kind {
	case PolicyFirst, PolicyLast:
		return nil
	case PolicyIndex:
		if p.Ordinal < 0 {
			return &OrdinalOutOfRangeError{Ordinal: p.Ordinal}
		}
		return nil
	default:
		return &PolicyInvalidError{Value: string(p.Kind)}
	}
}

// Select returns exactly one variant from the ordered sequence according to
// policy. The returned string is the element itself, unmodified. Selection
// never falls back silently: an index outside [0, len-1] fails with
// ErrOrdinalOutOfRange so configuration bugs surface instead of publishing
// the wrong rendering.
func Select(variants []string, policy Policy) (string, error) {
	if err := policy.Validate(); err != nil {
		return "", err
	}
	if len(variants) == 0 {
		return "", &OrdinalOutOfRangeError{Ordinal: 0, Count: 0}
	}

	switch policy.Kind {
	case PolicyFirst:
		return variants[0], nil
	case PolicyLast:
		return variants[len(variants)-1], nil
	default:
		if policy.Ordinal >= len(variants) {
			return "", &OrdinalOutOfRangeError{Ordinal: policy.Ordinal, Count: len(variants)}
		}
		return variants[policy.Ordinal], nil
	}
}

// SelectOrdinal resolves the ordinal the policy would pick for a sequence of
// the given length, without needing the variants themselves. Loaders use it
// to record which rendering was published.
func SelectOrdinal(count int, policy Policy) (int, error) {
	if err := policy.Validate(); err != nil {
		return 0, err
	}
	if count <= 0 {
		return 0, &OrdinalOutOfRangeError{Ordinal: 0, Count: count}
	}

	switch policy.Kind {
	case PolicyFirst:
		return 0, nil
	case PolicyLast:
		return count - 1, nil
	default:
		if policy.Ordinal >= count {
			return 0, &OrdinalOutOfRangeError{Ordinal: policy.Ordinal, Count: count}
		}
		return policy.Ordinal, nil
	}
}
