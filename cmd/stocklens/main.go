// Command stocklens extracts structured inventory records from a
// photographed or scanned product listing.
//
// Usage:
//
//	stocklens scan listing.jpg
//	stocklens scan --pool 4 --sections 4 --json listing.png
//
// Configuration defaults can be supplied through the environment (or a
// .env file in the working directory):
//
//	STOCKLENS_LANG       OCR language pack (default "eng")
//	STOCKLENS_POOL       worker pool size (default 4)
//	STOCKLENS_LOG_LEVEL  log level (default "info")
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/disintegration/imaging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tsawler/stocklens"
	"github.com/tsawler/stocklens/bitmap"
	"github.com/tsawler/stocklens/extract"
	"github.com/tsawler/stocklens/internal/logger"
	"github.com/tsawler/stocklens/ocrpool"
)

var rootCmd = &cobra.Command{
	Use:   "stocklens",
	Short: "Turn photographed product listings into inventory records",
	Long: `stocklens ingests a photographed or scanned product listing and produces
structured, validated inventory records (SKU, description, quantity,
storage location, category).

The pipeline enhances the image for OCR, recognizes its sections on a
pool of Tesseract engines, and parses the recognized text with several
independent strategies before deduplicating and validating the results.

Tesseract must be installed and the binary built with the "ocr" tag.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = envOr("STOCKLENS_LOG_LEVEL", "info")
		}
		cfg := logger.DefaultConfig()
		cfg.Level = level
		return logger.Setup(cfg)
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan [image-file]",
	Short: "Extract inventory records from a listing image",
	Example: `  # Scan a photographed listing
  stocklens scan shelf.jpg

  # Larger pool, four recognition sections, JSON output
  stocklens scan --pool 8 --sections 4 --json shelf.png

  # Save the preprocessed bitmap sections for inspection
  stocklens scan --debug-bitmap ./debug shelf.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	// Load .env before flag defaults are read from the environment.
	// A missing .env file is not an error.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")

	scanCmd.Flags().Int("pool", envInt("STOCKLENS_POOL", 4), "number of OCR engine instances")
	scanCmd.Flags().Int("sections", 1, "number of bitmap sections recognized in parallel")
	scanCmd.Flags().Int("target-dim", 1600, "resolution the longer image dimension is scaled toward")
	scanCmd.Flags().String("lang", envOr("STOCKLENS_LANG", "eng"), "OCR language pack, \"+\"-separated")
	scanCmd.Flags().Bool("json", false, "emit records as JSON instead of a table")
	scanCmd.Flags().String("debug-bitmap", "", "directory to save preprocessed bitmap sections to")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("scan")
	filename := args[0]

	pool, _ := cmd.Flags().GetInt("pool")
	sections, _ := cmd.Flags().GetInt("sections")
	targetDim, _ := cmd.Flags().GetInt("target-dim")
	lang, _ := cmd.Flags().GetString("lang")
	asJSON, _ := cmd.Flags().GetBool("json")
	debugDir, _ := cmd.Flags().GetString("debug-bitmap")

	if debugDir != "" {
		if err := saveDebugBitmaps(filename, debugDir, targetDim, sections); err != nil {
			return err
		}
		log.Info().Str("dir", debugDir).Msg("saved preprocessed sections")
	}

	log.Debug().
		Str("file", filename).
		Int("pool", pool).
		Int("sections", sections).
		Msg("starting extraction")

	records, err := stocklens.FromFile(filename).
		PoolSize(pool).
		Sections(sections).
		TargetDim(targetDim).
		Language(lang).
		Progress(func(ev ocrpool.ProgressEvent) {
			log.Debug().
				Int("worker", ev.Worker).
				Int("section", ev.Section).
				Float64("overall", ev.Overall).
				Msg("recognition progress")
		}).
		Records(cmd.Context())
	if err != nil {
		if errors.Is(err, extract.ErrNoRecords) {
			return fmt.Errorf("no usable records found in %s", filename)
		}
		return err
	}

	log.Info().Int("records", len(records)).Msg("extraction complete")

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SKU\tDESCRIPTION\tQTY\tLOCATION\tCATEGORY\tSTATUS")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			r.SKU, r.Name, r.Quantity, r.Location, r.Category, r.Status)
	}
	return w.Flush()
}

// saveDebugBitmaps runs preprocessing standalone and writes each section
// as a PNG for inspection.
func saveDebugBitmaps(filename, dir string, targetDim, sectionCount int) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read image file: %w", err)
	}

	cfg := bitmap.DefaultConfig()
	cfg.TargetDim = targetDim
	cfg.Sections = sectionCount
	if err := cfg.Validate(); err != nil {
		return err
	}

	sections, err := bitmap.PreprocessBytes(data, cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, sec := range sections {
		out := filepath.Join(dir, fmt.Sprintf("section-%02d.png", sec.Index))
		if err := imaging.Save(sec.Bitmap.Image(), out); err != nil {
			return fmt.Errorf("failed to save %s: %w", out, err)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
