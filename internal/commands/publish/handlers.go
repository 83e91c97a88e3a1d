package publishcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-bundle/internal/commands"
	"github.com/goliatone/go-bundle/internal/logging"
	"github.com/goliatone/go-bundle/pkg/interfaces"
	"github.com/goliatone/go-bundle/publications"
	command "github.com/goliatone/go-command"
)

const (
	publishBundleOperation    = "publish.bundle"
	publishDirectoryOperation = "publish.directory"
	unpublishBundleOperation  = "publish.remove"
)

// ErrPublicationsFeatureDisabled is returned when the publications feature
// flag is disabled at runtime.
var ErrPublicationsFeatureDisabled = errors.New("publish command: feature disabled")

var (
	_ command.Commander[PublishBundleCommand]    = (*PublishBundleHandler)(nil)
	_ command.Commander[PublishDirectoryCommand] = (*PublishDirectoryHandler)(nil)
	_ command.Commander[UnpublishBundleCommand]  = (*UnpublishBundleHandler)(nil)
)

// PublishBundleHandler loads one bundle, selects its canonical variant, and
// records the publication through the shared command handler foundation.
type PublishBundleHandler struct {
	inner *commands.Handler[PublishBundleCommand]
}

// NewPublishBundleHandler creates a handler bound to the supplied bundle and
// publications services.
func NewPublishBundleHandler(bundles interfaces.BundleService, pubs publications.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[PublishBundleCommand]) *PublishBundleHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg PublishBundleCommand) error {
		if !gates.publicationsEnabled() {
			return ErrPublicationsFeatureDisabled
		}

		doc, err := bundles.Load(ctx, msg.Path, interfaces.LoadOptions{
			Policy:    msg.Policy,
			Delimiter: msg.Delimiter,
		})
		if err != nil {
			return err
		}

		if msg.DryRun {
			logging.WithBundleContext(baseLogger, doc.FilePath, doc.SelectedOrdinal, doc.VariantCount).
				Info("publish.command.dry_run")
			return nil
		}

		return recordPublication(ctx, pubs, doc, msg.Slug)
	}

	handlerOpts := []commands.HandlerOption[PublishBundleCommand]{
		commands.WithLogger[PublishBundleCommand](baseLogger),
		commands.WithOperation[PublishBundleCommand](publishBundleOperation),
		commands.WithMessageFields(func(msg PublishBundleCommand) map[string]any {
			fields := map[string]any{
				"path": msg.Path,
			}
			if msg.Policy != "" {
				fields["policy"] = msg.Policy
			}
			if msg.Slug != "" {
				fields["slug"] = msg.Slug
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishBundleHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PublishBundleCommand].
func (h *PublishBundleHandler) Execute(ctx context.Context, msg PublishBundleCommand) error {
	return h.inner.Execute(ctx, msg)
}

// PublishDirectoryHandler publishes every bundle under a directory via the
// shared command handler foundation.
type PublishDirectoryHandler struct {
	inner *commands.Handler[PublishDirectoryCommand]
}

// NewPublishDirectoryHandler creates a handler bound to the supplied bundle
// and publications services.
func NewPublishDirectoryHandler(bundles interfaces.BundleService, pubs publications.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[PublishDirectoryCommand]) *PublishDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg PublishDirectoryCommand) error {
		if !gates.publicationsEnabled() {
			return ErrPublicationsFeatureDisabled
		}

		docs, err := bundles.LoadDirectory(ctx, msg.Directory, interfaces.LoadOptions{
			Pattern:   msg.Pattern,
			Policy:    msg.Policy,
			Recursive: msg.Recursive,
		})
		if err != nil {
			return err
		}

		recorded := 0
		for _, doc := range docs {
			if msg.DryRun {
				continue
			}
			if err := recordPublication(ctx, pubs, doc, ""); err != nil {
				return err
			}
			recorded++
		}

		logging.WithFields(baseLogger, map[string]any{
			"directory":      msg.Directory,
			"loaded_count":   len(docs),
			"recorded_count": recorded,
			"dry_run":        msg.DryRun,
		}).Info("publish.command.directory.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[PublishDirectoryCommand]{
		commands.WithLogger[PublishDirectoryCommand](baseLogger),
		commands.WithOperation[PublishDirectoryCommand](publishDirectoryOperation),
		commands.WithMessageFields(func(msg PublishDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Policy != "" {
				fields["policy"] = msg.Policy
			}
			if msg.Recursive != nil {
				fields["recursive"] = *msg.Recursive
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PublishDirectoryCommand].
func (h *PublishDirectoryHandler) Execute(ctx context.Context, msg PublishDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UnpublishBundleHandler removes a publication row via the shared command
// handler foundation.
type UnpublishBundleHandler struct {
	inner *commands.Handler[UnpublishBundleCommand]
}

// NewUnpublishBundleHandler creates a handler bound to the supplied
// publications service.
func NewUnpublishBundleHandler(pubs publications.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[UnpublishBundleCommand]) *UnpublishBundleHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg UnpublishBundleCommand) error {
		if !gates.publicationsEnabled() {
			return ErrPublicationsFeatureDisabled
		}
		return pubs.Unpublish(ctx, msg.Path)
	}

	handlerOpts := []commands.HandlerOption[UnpublishBundleCommand]{
		commands.WithLogger[UnpublishBundleCommand](baseLogger),
		commands.WithOperation[UnpublishBundleCommand](unpublishBundleOperation),
		commands.WithMessageFields(func(msg UnpublishBundleCommand) map[string]any {
			return map[string]any{"path": msg.Path}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UnpublishBundleHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UnpublishBundleCommand].
func (h *UnpublishBundleHandler) Execute(ctx context.Context, msg UnpublishBundleCommand) error {
	return h.inner.Execute(ctx, msg)
}

func recordPublication(ctx context.Context, pubs publications.Service, doc *interfaces.Document, slugOverride string) error {
	slug := slugOverride
	if slug == "" {
		slug = doc.FrontMatter.Slug
	}
	_, err := pubs.Record(ctx, publications.RecordRequest{
		Path:            doc.FilePath,
		Slug:            slug,
		Title:           doc.FrontMatter.Title,
		SelectedOrdinal: doc.SelectedOrdinal,
		VariantCount:    doc.VariantCount,
		Checksum:        doc.Checksum,
	})
	return err
}
