package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kartavantaj/kampanya/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Extract multiple campaigns from a JSON-lines file in parallel",
	Long: `Batch reads campaigns from a JSON-lines file (one object per line
with "title", "text" and optional "id" fields) and extracts them
concurrently, writing one JSON record per campaign.

Example:
  kampanya batch campaigns.jsonl
  kampanya batch campaigns.jsonl --concurrency 8 --output-dir ./records
  kampanya batch campaigns.jsonl --ai --brands brands.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./kampanya-records", "output directory for records")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().StringVar(&brandsFile, "brands", "", "brand dictionary YAML file")
	batchCmd.Flags().StringVar(&sectorsFile, "sectors", "", "sector taxonomy YAML file")
	batchCmd.Flags().BoolVar(&aiEnabled, "ai", false, "enable the AI referee for suspicious math")
	batchCmd.Flags().StringVar(&aiModel, "ai-model", "", "referee model name (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	logger := newLogger()
	p, err := buildPipeline(logger)
	if err != nil {
		return err
	}

	campaigns, err := worker.ReadCampaignsFile(file)
	if err != nil {
		return fmt.Errorf("read campaigns: %w", err)
	}
	if len(campaigns) == 0 {
		return fmt.Errorf("no campaigns in %s", file)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Processing %d campaigns with %d workers...\n", len(campaigns), concurrency)

	pool := worker.NewPool(p, concurrency)
	results := pool.Process(ctx, campaigns)

	successCount := 0
	failureCount := 0
	reviewCount := 0
	for _, result := range results {
		if result.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Campaign.ID, result.Err)
			continue
		}

		path := filepath.Join(outputDir, sanitizeFilename(result.Campaign.ID)+".json")
		data, err := json.MarshalIndent(result.Record, "", "  ")
		if err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: encode record: %v\n", result.Campaign.ID, err)
			continue
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: write record: %v\n", result.Campaign.ID, err)
			continue
		}

		successCount++
		if result.Record.NeedsManualMath || result.Record.NeedsManualSector || result.Record.NeedsManualReward {
			reviewCount++
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s (%s, %s)\n", result.Campaign.ID, result.Record.SectorSlug, result.Record.SectorConfidence)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:        %d campaigns\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:      %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:     %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Needs review: %d\n", reviewCount)
	fmt.Fprintf(os.Stderr, "  Output:       %s\n", outputDir)

	return nil
}

// sanitizeFilename sanitizes a campaign ID for use as a filename
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	s = replacer.Replace(s)
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
