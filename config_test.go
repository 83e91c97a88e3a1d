package bundle_test

import (
	"errors"
	"testing"

	bundle "github.com/goliatone/go-bundle"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := bundle.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
	if cfg.Delimiter != bundle.DefaultDelimiter {
		t.Fatalf("expected default delimiter, got %q", cfg.Delimiter)
	}
	if cfg.Policy != bundle.Last() {
		t.Fatalf("expected last-wins default policy, got %v", cfg.Policy)
	}
}

func TestConfigValidateDelimiterRequired(t *testing.T) {
	cfg := bundle.DefaultConfig()
	cfg.Delimiter = "  "
	if err := cfg.Validate(); !errors.Is(err, bundle.ErrConfigDelimiterRequired) {
		t.Fatalf("expected ErrConfigDelimiterRequired, got %v", err)
	}
}

func TestConfigValidatePolicyInvalid(t *testing.T) {
	cfg := bundle.DefaultConfig()
	cfg.Policy = bundle.Policy{Kind: "newest"}
	if err := cfg.Validate(); !errors.Is(err, bundle.ErrConfigPolicyInvalid) {
		t.Fatalf("expected ErrConfigPolicyInvalid, got %v", err)
	}
}

func TestConfigValidateLoaderRequiresContentDir(t *testing.T) {
	cfg := bundle.DefaultConfig()
	cfg.Loader.ContentDir = ""
	if err := cfg.Validate(); !errors.Is(err, bundle.ErrConfigContentDirRequired) {
		t.Fatalf("expected ErrConfigContentDirRequired, got %v", err)
	}
}

func TestConfigValidateStorageDriverUnknown(t *testing.T) {
	cfg := bundle.DefaultConfig()
	cfg.Features.Publications = true
	cfg.Storage.Driver = "oracle"
	if err := cfg.Validate(); !errors.Is(err, bundle.ErrConfigStorageDriverUnknown) {
		t.Fatalf("expected ErrConfigStorageDriverUnknown, got %v", err)
	}
}

func TestConfigValidateLogging(t *testing.T) {
	cfg := bundle.DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, bundle.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg = bundle.DefaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, bundle.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}
