// Package cmd defines the command-line interface for graveyard.
package cmd

import (
	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(scanMultiCmd)
	rootCmd.AddCommand(discoverOrgCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(costCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("spec", "", "Path to the OpenAPI spec file (YAML or JSON)")
	rootCmd.PersistentFlags().String("logs", "", "Path to the access log file (NDJSON, optionally gzip-compressed)")
	rootCmd.PersistentFlags().StringP("service", "s", "", "Service name used for reports and history")
	rootCmd.PersistentFlags().Int("window", 0, "Only count log entries from the last N days (0 = all)")
	rootCmd.PersistentFlags().Int("threshold", contract.DefaultThreshold, "Confidence score at which an endpoint counts as removable")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "History backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of scanCmd to Viper
	scanCmd.Flags().String("report", contract.DefaultReportFile, "Markdown report destination (empty = skip)")
	scanCmd.Flags().Bool("no-history", false, "Skip recording this scan in history")
	if err := viper.BindPFlags(scanCmd.Flags()); err != nil {
		contract.LogFatal("Error binding scan flags", err)
	}

	// Bind all flags of pruneCmd to Viper
	pruneCmd.Flags().String("branch", contract.DefaultBranchName, "Git branch name for the cleanup commit")
	pruneCmd.Flags().String("title", contract.DefaultPRTitle, "Pull request title")
	pruneCmd.Flags().String("base", contract.DefaultBaseBranch, "Base branch for the pull request")
	pruneCmd.Flags().Bool("dry-run", false, "Show what would be removed without making changes")
	if err := viper.BindPFlags(pruneCmd.Flags()); err != nil {
		contract.LogFatal("Error binding prune flags", err)
	}

	// scan-multi reuses the --config flag name for its services file, so it
	// binds under a separate viper key instead of the shared "config" key.
	scanMultiCmd.Flags().String("config", "", "Path to the services YAML produced by discover-org")
	scanMultiCmd.Flags().String("multi-report", contract.DefaultMultiReport, "Path for the aggregated JSON report")
	if err := viper.BindPFlag("services-config", scanMultiCmd.Flags().Lookup("config")); err != nil {
		contract.LogFatal("Error binding scan-multi flags", err)
	}
	if err := viper.BindPFlag("multi-report", scanMultiCmd.Flags().Lookup("multi-report")); err != nil {
		contract.LogFatal("Error binding scan-multi flags", err)
	}

	// Bind all flags of discoverOrgCmd to Viper
	discoverOrgCmd.Flags().String("token", "", "GitHub token (or use GITHUB_TOKEN env)")
	discoverOrgCmd.Flags().String("org-output", contract.DefaultOrgConfig, "Path to write the discovered services config")
	discoverOrgCmd.Flags().Int("max-repos", 0, "Maximum repos to scan (0 = all)")
	discoverOrgCmd.Flags().String("exclude", "", "Comma-separated list of repo names to skip")
	if err := viper.BindPFlags(discoverOrgCmd.Flags()); err != nil {
		contract.LogFatal("Error binding discover-org flags", err)
	}

	// Bind all flags of trendsCmd to Viper
	trendsCmd.Flags().Int("days", contract.DefaultTrendDays, "Number of days to analyze")
	if err := viper.BindPFlags(trendsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding trends flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("host", contract.DefaultServeHost, "Host to bind to")
	serveCmd.Flags().Int("port", contract.DefaultServePort, "Port to bind to")
	serveCmd.Flags().String("cache-url", "", "Redis URL for API response caching (empty = no cache)")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}
}
