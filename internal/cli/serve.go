package cli

import (
	"github.com/spf13/cobra"

	"github.com/veridoc/veridoc/internal/pipeline"
	"github.com/veridoc/veridoc/internal/server"
)

var (
	serveAddr      string
	maxUploadBytes int64
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the verification pipeline over HTTP",
	Long: `Serve exposes the pipeline to a UI or another service:

  POST /api/verify  multipart PDF upload → full run result as JSON
  GET  /healthz     liveness probe
  GET  /metrics     Prometheus metrics

The server is stateless: results are returned to the caller and never
stored. Credentials are read from the environment at startup.

Example:
  veridoc serve --addr :8080 --workers 8`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().Int64Var(&maxUploadBytes, "max-upload-bytes", 32<<20, "maximum PDF upload size")

	// Pipeline flags shared with check
	serveCmd.Flags().IntVar(&workers, "workers", 4, "claims verified in parallel per request")
	serveCmd.Flags().IntVar(&maxClaims, "max-claims", 25, "maximum claims extracted per document")
	serveCmd.Flags().IntVar(&maxResults, "max-results", 5, "search results retrieved per claim")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable search response cache")
	serveCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "enable disk cache layer at this directory")
	serveCmd.Flags().BoolVar(&validateLinks, "validate-links", false, "probe evidence URLs and flag dead sources")
	serveCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
	serveCmd.Flags().StringVar(&searchProvider, "search-provider", "tavily", "search provider (tavily, brave, serper)")
}

func runServe(cmd *cobra.Command, args []string) error {
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

	return server.New(p, maxUploadBytes).Start(serveAddr)
}
