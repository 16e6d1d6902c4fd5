package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/veridoc/veridoc/internal/model"
	"github.com/veridoc/veridoc/internal/pipeline"
)

var (
	outJSON        string
	outMD          string
	outCSV         string
	timeout        time.Duration
	workers        int
	maxClaims      int
	maxResults     int
	llmProvider    string
	llmModel       string
	searchProvider string
	noCache        bool
	cacheDir       string
	validateLinks  bool
	noFooter       bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file.pdf>",
	Short: "Fact-check one PDF document against live web evidence",
	Long: `Check runs the full verification pipeline on a single PDF:
- Extract the document's text layer
- Ask the language model for atomic, verifiable claims
- Search the web for evidence on each claim
- Judge each claim against its evidence

Every extracted claim appears exactly once in the output. A failed search
or model call degrades that single claim to the Error verdict; the rest of
the run continues. An unreadable PDF or a failed claim extraction aborts
the whole run.

Example:
  veridoc check report.pdf
  veridoc check report.pdf --json results.json --md results.md --csv results.csv
  veridoc check report.pdf --workers 1 --search-provider brave --llm-model gpt-4o`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().StringVar(&outCSV, "csv", "", "output CSV path (optional)")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Pipeline flags
	checkCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "overall run timeout")
	checkCmd.Flags().IntVar(&workers, "workers", 4, "claims verified in parallel (1 = sequential)")
	checkCmd.Flags().IntVar(&maxClaims, "max-claims", 25, "maximum claims extracted per document")
	checkCmd.Flags().IntVar(&maxResults, "max-results", 5, "search results retrieved per claim")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable search response cache")
	checkCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "enable disk cache layer at this directory")
	checkCmd.Flags().BoolVar(&validateLinks, "validate-links", false, "probe evidence URLs and flag dead sources")

	// Provider flags
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
	checkCmd.Flags().StringVar(&searchProvider, "search-provider", "tavily", "search provider (tavily, brave, serper)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := resolveCredentials(cfg); err != nil {
		return err
	}

	p, err := pipeline.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	p.WithProgress(progressPrinter())

	run, err := p.Run(ctx, filepath.Base(path), data)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	renderer := pipeline.NewRenderer(!noFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(run, outJSON); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(run, outMD); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}
	if outCSV != "" {
		if err := renderer.RenderCSV(run, outCSV); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote CSV: %s\n", outCSV)
		}
	}

	renderer.RenderSummary(run)
	return nil
}

// buildConfig resolves the effective configuration:
// flags > environment (VERIDOC_*) > config file > defaults.
// Only flags the user actually set override the lower layers.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, &model.ConfigurationError{Reason: fmt.Sprintf("invalid configuration: %v", err)}
	}

	flags := cmd.Flags()
	if flags.Changed("llm-provider") {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}
	if flags.Changed("search-provider") {
		cfg.Search.Provider = searchProvider
	}
	if flags.Changed("max-results") {
		cfg.Search.MaxResults = maxResults
	}
	if flags.Changed("max-claims") {
		cfg.Extract.MaxClaims = maxClaims
	}
	if flags.Changed("workers") {
		cfg.Concurrency.VerifyWorkers = workers
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("cache-dir") {
		cfg.Cache.Dir = cacheDir
	}
	if flags.Changed("validate-links") {
		cfg.Validation.Enabled = validateLinks
	}
	cfg.Output.Verbose = verbose

	return cfg, nil
}

// progressPrinter reports pipeline progress to stderr
func progressPrinter() pipeline.ProgressFunc {
	return func(p pipeline.Progress) {
		if !verbose {
			return
		}
		switch p.Phase {
		case pipeline.PhaseExtracting:
			fmt.Fprintln(os.Stderr, "⚙️  Extracting text...")
		case pipeline.PhaseClaimsExtracted:
			fmt.Fprintf(os.Stderr, "✓ Extracted %d claims\n", p.Total)
		case pipeline.PhaseVerifying:
			if p.Verified > 0 {
				fmt.Fprintf(os.Stderr, "✓ Verified %d/%d claims\n", p.Verified, p.Total)
			}
		case pipeline.PhaseFailed:
			fmt.Fprintln(os.Stderr, "✗ Run failed")
		}
	}
}
