package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/veridoc/veridoc/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "veridoc",
	Short: "Veridoc - document fact-checking against live web evidence",
	Long: `Veridoc extracts verifiable factual claims from a PDF document,
searches the web for evidence on each claim, and asks a language model
to judge every claim against what it found.

Each claim receives one of six verdicts: Verified, Inaccurate, False,
Outdated, Unverifiable, or Error. Verdicts are model judgments against
live search results, not ground truth.

Claim extraction is non-deterministic: two runs over the same document
may surface different claim sets. That is a property of the model.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Veridoc.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("veridoc v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.veridoc/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.veridoc")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match VERIDOC_*
	// (nested keys use underscores: VERIDOC_SEARCH_MAX_RESULTS)
	viper.SetEnvPrefix("VERIDOC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// AutomaticEnv only surfaces keys viper already knows about
	setConfigDefaults()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func setConfigDefaults() {
	defaults := model.DefaultConfig()

	viper.SetDefault("llm.provider", defaults.LLM.Provider)
	viper.SetDefault("llm.model", defaults.LLM.Model)
	viper.SetDefault("llm.timeout", defaults.LLM.Timeout)
	viper.SetDefault("llm.max_tokens", defaults.LLM.MaxTokens)
	viper.SetDefault("llm.temperature", defaults.LLM.Temperature)
	viper.SetDefault("search.provider", defaults.Search.Provider)
	viper.SetDefault("search.max_results", defaults.Search.MaxResults)
	viper.SetDefault("search.timeout", defaults.Search.Timeout)
	viper.SetDefault("search.rate_limit", defaults.Search.RateLimit)
	viper.SetDefault("search.rate_burst", defaults.Search.RateBurst)
	viper.SetDefault("extract.max_claims", defaults.Extract.MaxClaims)
	viper.SetDefault("extract.max_text_bytes", defaults.Extract.MaxTextBytes)
	viper.SetDefault("extract.timeout", defaults.Extract.Timeout)
	viper.SetDefault("concurrency.verify_workers", defaults.Concurrency.VerifyWorkers)
	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("cache.dir", defaults.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", defaults.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", defaults.Cache.DiskTTL)
	viper.SetDefault("validation.enabled", defaults.Validation.Enabled)
	viper.SetDefault("validation.workers", defaults.Validation.Workers)
	viper.SetDefault("validation.timeout", defaults.Validation.Timeout)
	viper.SetDefault("http.user_agent", defaults.HTTP.UserAgent)
}
