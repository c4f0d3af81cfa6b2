package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emsquid/pdf2latex/internal/overlay"
	"github.com/emsquid/pdf2latex/internal/raster"
	"github.com/emsquid/pdf2latex/internal/segment"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type output struct {
	Pages []*segment.PageResult `json:"pages"`
}

func main() {
	// Handle --version and -v flags before flag parsing
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("pdf2latex %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	var (
		threshold     = flag.Int("threshold", segment.DefaultThreshold, "foreground cutoff on the 0-255 intensity scale")
		autoThreshold = flag.Bool("auto-threshold", false, "estimate the foreground cutoff per page with Otsu's method")
		spacing       = flag.Int("spacing", segment.DefaultSpacing, "minimum blank-column run that splits two words")
		workers       = flag.Int("workers", 0, "worker-pool size (0 = available parallelism)")
		sequential    = flag.Bool("sequential", false, "segment sequentially instead of on a worker pool")
		out           = flag.String("out", "-", "JSON output path (- = stdout)")
		annotate      = flag.String("annotate", "", "write an annotated PNG per page to this path")
		mode          = flag.String("mode", overlay.ModeLetters, "annotation level: lines, words or letters")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "pdf2latex - segment rasterized page images into line/word/letter zones")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage: pdf2latex [options] page.png [page.png ...]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Environment variables:")
		fmt.Fprintln(os.Stderr, "  PDF2LATEX_LOG_LEVEL=debug    Enable debug logging")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Logging goes to stderr; stdout carries the JSON tree.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	debug := os.Getenv("PDF2LATEX_LOG_LEVEL") == "debug"

	if debug {
		log.Printf("pdf2latex v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	cache := raster.NewPageCache()
	result := output{Pages: make([]*segment.PageResult, 0, flag.NArg())}

	for i, path := range flag.Args() {
		grid, err := cache.LoadGrid(path)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", path, err)
		}

		cfg := segment.Config{Threshold: *threshold, Spacing: *spacing, Workers: *workers}
		if *autoThreshold {
			cfg.Threshold = raster.OtsuThreshold(grid)
			if debug {
				log.Printf("%s: estimated threshold %d", path, cfg.Threshold)
			}
		}

		page, err := segment.NewPage(grid, cfg)
		if err != nil {
			log.Fatalf("Failed to prepare %s: %v", path, err)
		}

		start := time.Now()
		if *sequential {
			page.SegmentLetters()
		} else if err := page.SegmentLettersParallel(); err != nil {
			log.Fatalf("Failed to segment %s: %v", path, err)
		}
		if debug {
			log.Printf("%s: segmented in %v", path, time.Since(start))
		}

		result.Pages = append(result.Pages, page.Result())

		if *annotate != "" {
			if err := writeAnnotated(page, *mode, annotatePath(*annotate, i, flag.NArg())); err != nil {
				log.Fatalf("Failed to annotate %s: %v", path, err)
			}
		}
	}

	if err := writeJSON(result, *out); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
}

// writeAnnotated renders the page overlay and writes it as a PNG file.
func writeAnnotated(page *segment.Page, mode, path string) error {
	img, err := overlay.RenderImage(page, mode)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create annotation file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode annotation: %w", err)
	}
	return nil
}

// annotatePath returns the annotation path for page i. With a single
// page the configured path is used as-is; with several, the page index
// is inserted before the extension.
func annotatePath(path string, i, total int) string {
	if total == 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i+1, ext)
}

// writeJSON marshals the page trees to the output path, or stdout for "-".
func writeJSON(result output, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
