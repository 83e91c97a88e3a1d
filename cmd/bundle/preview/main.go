package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-bundle/cmd/bundle/internal/bootstrap"
	"github.com/goliatone/go-bundle/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	var (
		contentDir = flag.String("content-dir", "content", "Path to the bundle content root")
		pattern    = flag.String("pattern", "*.md", "Glob pattern applied when discovering bundle files")
		delimiter  = flag.String("delimiter", "", "Variant delimiter token (defaults to the built-in token)")
		policy     = flag.String("policy", "", "Selection policy: first, last, or index:N (defaults to last)")
		filePath   = flag.String("file", "", "Bundle file to preview (relative to the content root)")
		renderHTML = flag.Bool("render-html", true, "Render the selected variant into HTML as part of the preview")
	)

	flag.Parse()

	if *filePath == "" {
		log.Fatalf("--file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  true,
		Delimiter:  *delimiter,
		Policy:     *policy,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}
	if module == nil || module.Service == nil {
		log.Fatalf("bundle service not configured; ensure the loader feature is enabled")
	}

	ctx := context.Background()

	doc, err := module.Service.Load(ctx, *filePath, interfaces.LoadOptions{})
	if err != nil {
		log.Fatalf("load bundle document: %v", err)
	}

	fmt.Fprintf(os.Stdout, "Path: %s\nVariant: %d of %d\nChecksum: %x\n\n",
		doc.FilePath, doc.SelectedOrdinal+1, doc.VariantCount, doc.Checksum)

	if doc.FrontMatter.Raw != nil {
		frontmatter, err := json.MarshalIndent(doc.FrontMatter.Raw, "", "  ")
		if err == nil {
			fmt.Fprintf(os.Stdout, "Frontmatter:\n%s\n\n", frontmatter)
		}
	}

	if *renderHTML {
		if _, err := module.Service.RenderDocument(ctx, doc, interfaces.ParseOptions{}); err != nil {
			log.Fatalf("render bundle document: %v", err)
		}
		fmt.Fprintf(os.Stdout, "Rendered HTML:\n%s\n", string(doc.BodyHTML))
	} else {
		fmt.Fprintf(os.Stdout, "Selected Variant:\n%s\n", string(doc.Body))
	}
}
