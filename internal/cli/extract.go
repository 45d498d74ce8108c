package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/kartavantaj/kampanya/internal/model"
	"github.com/kartavantaj/kampanya/internal/pipeline"
	"github.com/kartavantaj/kampanya/internal/referee"
	"github.com/kartavantaj/kampanya/internal/sectorcache"
)

var (
	title       string
	text        string
	textFile    string
	brandsFile  string
	sectorsFile string
	todayStr    string
	aiEnabled   bool
	aiModel     string
	compactJSON bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured fields from a single campaign",
	Long: `Extract runs the full pipeline over one campaign and prints the
structured record as JSON.

Example:
  kampanya extract --title "Axess'e özel" --text "1500 TL ve üzeri..."
  kampanya extract --title "..." --file campaign.txt --brands brands.yaml
  kampanya extract --title "..." --text "..." --ai`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&title, "title", "", "campaign title")
	extractCmd.Flags().StringVar(&text, "text", "", "campaign body text")
	extractCmd.Flags().StringVar(&textFile, "file", "", "read campaign body from file (overrides --text)")
	extractCmd.Flags().StringVar(&brandsFile, "brands", "", "brand dictionary YAML file")
	extractCmd.Flags().StringVar(&sectorsFile, "sectors", "", "sector taxonomy YAML file")
	extractCmd.Flags().StringVar(&todayStr, "today", "", "reference date for year inference (YYYY-MM-DD, default: now)")
	extractCmd.Flags().BoolVar(&aiEnabled, "ai", false, "enable the AI referee for suspicious math")
	extractCmd.Flags().StringVar(&aiModel, "ai-model", "", "referee model name (default from config)")
	extractCmd.Flags().BoolVar(&compactJSON, "compact", false, "compact JSON output")
}

func runExtract(cmd *cobra.Command, args []string) error {
	if textFile != "" {
		data, err := os.ReadFile(textFile)
		if err != nil {
			return fmt.Errorf("read campaign file: %w", err)
		}
		text = string(data)
	}
	if title == "" && text == "" {
		return fmt.Errorf("nothing to extract: provide --title, --text or --file")
	}

	var today time.Time
	if todayStr != "" {
		var err error
		today, err = time.Parse("2006-01-02", todayStr)
		if err != nil {
			return fmt.Errorf("invalid --today value %q: %w", todayStr, err)
		}
	}

	logger := newLogger()
	p, err := buildPipeline(logger)
	if err != nil {
		return err
	}

	rec := p.Extract(context.Background(), pipeline.Document{
		Title: title,
		Text:  text,
		Today: today,
	})

	return printRecord(rec)
}

// loadConfig merges the config file over the built-in defaults.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// buildPipeline assembles the pipeline from config, dictionary flags and
// the optional referee.
func buildPipeline(logger *slog.Logger) (*pipeline.Pipeline, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	var brands []model.BrandEntry
	if brandsFile != "" {
		data, err := os.ReadFile(brandsFile)
		if err != nil {
			return nil, fmt.Errorf("read brands file: %w", err)
		}
		if err := yaml.Unmarshal(data, &brands); err != nil {
			return nil, fmt.Errorf("parse brands file: %w", err)
		}
	}

	var sectors *sectorcache.Service
	if sectorsFile != "" {
		store := sectorcache.NewFileStore(sectorsFile)
		sectors = sectorcache.New(store, cfg.Cache.SectorTTL, cfg.Cache.CleanupInterval, logger)
	}

	var ref referee.Provider
	if aiEnabled {
		cfg.Referee.Enabled = true
		if aiModel != "" {
			cfg.Referee.Model = aiModel
		}
		if cfg.Referee.APIKey == "" {
			cfg.Referee.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.Referee.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		ref, err = referee.NewFromConfig(cfg.Referee)
		if err != nil {
			return nil, fmt.Errorf("initialize referee: %w", err)
		}
	}

	return pipeline.New(pipeline.Options{
		Brands:  brands,
		Cards:   cfg.Cards,
		Sectors: sectors,
		Referee: ref,
		Logger:  logger,
	}), nil
}

func printRecord(rec *model.ExtractedRecord) error {
	enc := json.NewEncoder(os.Stdout)
	if !compactJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(rec)
}
