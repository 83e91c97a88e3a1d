package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-bundle/cmd/bundle/internal/bootstrap"
	publishcmd "github.com/goliatone/go-bundle/internal/commands/publish"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runPublish(os.Args[1:]); err != nil {
		log.Fatalf("bundle publish: %v", err)
	}
}

func runPublish(args []string) error {
	fs := flag.NewFlagSet("bundle-publish", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the bundle content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering bundle files")
	recursive := fs.Bool("recursive", true, "Descend into subdirectories when publishing a directory")
	delimiter := fs.String("delimiter", "", "Variant delimiter token (defaults to the built-in token)")
	policy := fs.String("policy", "", "Selection policy: first, last, or index:N (defaults to last)")
	filePath := fs.String("file", "", "Single bundle file to publish, relative to the content root")
	directory := fs.String("directory", "", "Directory to publish, relative to the content root")
	slug := fs.String("slug", "", "Slug override applied when publishing a single file")
	storageDriver := fs.String("storage-driver", "sqlite3", "Database driver for publication records")
	storageDSN := fs.String("storage-dsn", "", "Database DSN for publication records")
	dryRun := fs.Bool("dry-run", false, "Select variants without recording publications")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *filePath == "" && *directory == "" {
		return fmt.Errorf("one of --file or --directory is required")
	}
	if *filePath != "" && *directory != "" {
		return fmt.Errorf("--file and --directory are mutually exclusive")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:    *contentDir,
		Pattern:       *pattern,
		Recursive:     *recursive,
		Delimiter:     *delimiter,
		Policy:        *policy,
		StorageDriver: *storageDriver,
		StorageDSN:    *storageDSN,
		Publications:  true,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Publications == nil {
		return fmt.Errorf("publications service not configured; ensure Features.Publications is enabled")
	}

	ctx := context.Background()
	gates := publishcmd.FeatureGates{
		PublicationsEnabled: func() bool { return true },
	}

	if *filePath != "" {
		handler := publishcmd.NewPublishBundleHandler(module.Service, module.Publications, module.Logger, gates)
		cmd := publishcmd.PublishBundleCommand{
			Path:   *filePath,
			Policy: *policy,
			Slug:   *slug,
			DryRun: *dryRun,
		}
		if err := handler.Execute(ctx, cmd); err != nil {
			return fmt.Errorf("execute publish command: %w", err)
		}
	} else {
		handler := publishcmd.NewPublishDirectoryHandler(module.Service, module.Publications, module.Logger, gates)
		cmd := publishcmd.PublishDirectoryCommand{
			Directory: *directory,
			Pattern:   *pattern,
			Policy:    *policy,
			DryRun:    *dryRun,
		}
		if err := handler.Execute(ctx, cmd); err != nil {
			return fmt.Errorf("execute publish command: %w", err)
		}
	}

	fmt.Fprintln(os.Stdout, "bundle publish command executed successfully")
	return nil
}
