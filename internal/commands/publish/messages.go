package publishcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-bundle/variants"
)

const (
	publishBundleMessageType    = "bundle.publish.file"
	publishDirectoryMessageType = "bundle.publish.directory"
	unpublishBundleMessageType  = "bundle.publish.remove"
)

// PublishBundleCommand selects the canonical variant of a single bundle file
// and records the resulting publication.
type PublishBundleCommand struct {
	// Path selects the bundle file, relative to the configured content root.
	Path string `json:"path"`
	// Policy overrides the configured selection policy ("first", "last",
	// "index:N") when non-empty.
	Policy string `json:"policy,omitempty"`
	// Slug overrides the slug derived from frontmatter or the file name.
	Slug string `json:"slug,omitempty"`
	// Delimiter overrides the configured variant delimiter when non-empty.
	Delimiter string `json:"delimiter,omitempty"`
	// DryRun loads and selects without recording a publication row.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (PublishBundleCommand) Type() string { return publishBundleMessageType }

// Validate ensures path and policy inputs are well-formed before handlers execute.
func (cmd PublishBundleCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(requireNonBlank("bundle.publish.file.path_required", "path is required"))),
		validation.Field(&cmd.Policy, validation.By(validatePolicyString("bundle.publish.file.policy_invalid"))),
	)
}

// PublishDirectoryCommand walks a directory of bundle files and records a
// publication for every matching bundle.
type PublishDirectoryCommand struct {
	// Directory selects the filesystem path to load bundle files from.
	Directory string `json:"directory"`
	// Pattern filters file names, defaulting to the service configuration.
	Pattern string `json:"pattern,omitempty"`
	// Policy overrides the configured selection policy when non-empty.
	Policy string `json:"policy,omitempty"`
	// Recursive toggles subdirectory traversal; nil defers to configuration.
	Recursive *bool `json:"recursive,omitempty"`
	// DryRun loads and selects without recording publication rows.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (PublishDirectoryCommand) Type() string { return publishDirectoryMessageType }

// Validate ensures directory and policy inputs are well-formed before handlers execute.
func (cmd PublishDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requireNonBlank("bundle.publish.directory.directory_required", "directory is required"))),
		validation.Field(&cmd.Policy, validation.By(validatePolicyString("bundle.publish.directory.policy_invalid"))),
	)
}

// UnpublishBundleCommand removes the publication row for a bundle path.
type UnpublishBundleCommand struct {
	// Path selects the previously published bundle file.
	Path string `json:"path"`
}

// Type implements command.Message.
func (UnpublishBundleCommand) Type() string { return unpublishBundleMessageType }

// Validate ensures a path is present before handlers execute.
func (cmd UnpublishBundleCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(requireNonBlank("bundle.publish.remove.path_required", "path is required"))),
	)
}

func requireNonBlank(code, message string) func(any) error {
	return func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}

func validatePolicyString(code string) func(any) error {
	return func(value any) error {
		raw := strings.TrimSpace(value.(string))
		if raw == "" {
			return nil
		}
		if _, err := variants.ParsePolicy(raw); err != nil {
			return validation.NewError(code, err.Error())
		}
		return nil
	}
}
