package variants

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// DefaultDelimiter is the magic token recognised between variants when the
// caller supplies no override. The suffix is random-looking by construction
// so the token never legitimately occurs inside document prose.
const DefaultDelimiter = "<|RELATED_DOC_SEP-f3a9c27e51b8|>"

const (
	delimiterPrefix    = "<|RELATED_DOC_SEP-"
	delimiterSuffix    = "|>"
	delimiterTokenSize = 6
)

// GenerateDelimiter mints a fresh delimiter token with a random suffix.
// Writers packing new bundles use it once and record the literal value;
// splitter and writer must agree on the exact same string.
func GenerateDelimiter() (string, error) {
	buf := make([]byte, delimiterTokenSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("bundle: generate delimiter: %w", err)
	}
	return delimiterPrefix + hex.EncodeToString(buf) + delimiterSuffix, nil
}

// IsDelimiterToken reports whether value has the canonical delimiter shape.
// Split accepts any non-empty delimiter; this helper only supports callers
// that want to sanity-check operator configuration.
func IsDelimiterToken(value string) bool {
	if !strings.HasPrefix(value, delimiterPrefix) || !strings.HasSuffix(value, delimiterSuffix) {
		return false
	}
	core := strings.TrimSuffix(strings.TrimPrefix(value, delimiterPrefix), delimiterSuffix)
	if core == "" {
		return false
	}
	_, err := hex.DecodeString(core)
	return err == nil
}
