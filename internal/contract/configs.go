package contract

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/graveyard/schema"
)

// Default values for configuration.
const (
	DefaultThreshold   = 80
	DefaultResultLimit = 25
	DefaultTrendDays   = 30
	MaxResultLimit     = 1000
	MaxWindowDays      = 3650

	DefaultServiceName = "API Service"
	DefaultReportFile  = "api-graveyard-report.md"
	DefaultMultiReport = "multi-service-report.json"
	DefaultOrgConfig   = "org-services.yaml"

	DefaultBranchName = "remove-unused-endpoints"
	DefaultPRTitle    = "Remove unused API endpoints"
	DefaultBaseBranch = "main"
	DefaultRemote     = "origin"

	DefaultServeHost = "127.0.0.1"
	DefaultServePort = 5000
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a scan.
// This struct remains the "final, validated" config.
type Config struct {
	SpecPath    string
	LogsPath    string
	ServiceName string
	RepoPath    string

	// ServiceFilter narrows history queries to one service. Unlike
	// ServiceName it stays empty when --service is not given, which
	// means "all services".
	ServiceFilter string

	WindowDays  int // Only count log entries this many days back (0 = all)
	Threshold   int // Confidence score at which an endpoint is prune-eligible
	TrendDays   int // Lookback period for trend analysis
	ResultLimit int
	Workers     int

	Output     schema.OutputMode
	OutputFile string
	ReportFile string // Markdown report destination ("" = skip)

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	// Prune workflow
	DryRun     bool
	BranchName string
	PRTitle    string
	BaseBranch string

	// Multi-service scan
	ServicesConfigPath string
	MultiReportFile    string

	// Organization discovery
	GitHubToken   string
	OrgConfigFile string
	MaxRepos      int
	ExcludeRepos  []string

	// Dashboard server
	ServeHost string
	ServePort int
	CacheURL  string // Optional redis URL for dashboard response caching

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
	Width     int  // Terminal width override (0 = auto-detect)
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Spec             string `mapstructure:"spec"`
	Logs             string `mapstructure:"logs"`
	Service          string `mapstructure:"service"`
	Window           int    `mapstructure:"window"`
	Threshold        int    `mapstructure:"threshold"`
	Limit            int    `mapstructure:"limit"`
	Workers          int    `mapstructure:"workers"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`
	Width            int    `mapstructure:"width"`

	// --- Fields from scanCmd.Flags() ---
	Report string `mapstructure:"report"`

	// --- Fields from trendsCmd.Flags() ---
	Days int `mapstructure:"days"`

	// --- Fields from pruneCmd.Flags() ---
	Branch string `mapstructure:"branch"`
	Title  string `mapstructure:"title"`
	Base   string `mapstructure:"base"`
	DryRun bool   `mapstructure:"dry-run"`

	// --- Fields from scanMultiCmd.Flags() ---
	// The --config flag binds under "services-config" so it cannot clobber
	// the root config-file path, which viper also keys as "config".
	ServicesConfig string `mapstructure:"services-config"`
	MultiReport    string `mapstructure:"multi-report"`

	// --- Fields from discoverOrgCmd.Flags() ---
	Token     string `mapstructure:"token"`
	OrgOutput string `mapstructure:"org-output"`
	MaxRepos  int    `mapstructure:"max-repos"`
	Exclude   string `mapstructure:"exclude"`

	// --- Fields from serveCmd.Flags() ---
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	CacheURL string `mapstructure:"cache-url"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.ExcludeRepos != nil {
		clone.ExcludeRepos = make([]string, len(c.ExcludeRepos))
		copy(clone.ExcludeRepos, c.ExcludeRepos)
	}
	return &clone
}

// CloneForService creates a copy of the Config pointed at a single
// service's inputs, used by the multi-service scan workers.
func (c *Config) CloneForService(svc *schema.ServiceConfig) *Config {
	clone := c.Clone()
	clone.ServiceName = svc.Name
	clone.SpecPath = svc.Spec
	clone.LogsPath = svc.Logs
	clone.RepoPath = svc.Repo
	clone.ReportFile = ""
	return clone
}

// LogWindowCutoff returns the oldest timestamp still inside the scan
// window, or the zero time when no window is configured.
func (c *Config) LogWindowCutoff(now time.Time) time.Time {
	if c.WindowDays <= 0 {
		return time.Time{}
	}
	return now.Add(-time.Duration(c.WindowDays) * 24 * time.Hour)
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateScanInputs(cfg, input); err != nil {
		return err
	}
	if err := processPruneOptions(cfg, input); err != nil {
		return err
	}
	if err := processFleetOptions(cfg, input); err != nil {
		return err
	}
	if err := processServeOptions(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.ServiceFilter = strings.TrimSpace(input.Service)
	cfg.ServiceName = cfg.ServiceFilter
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Threshold Validation ---
	if input.Threshold < 0 || input.Threshold > 100 {
		return fmt.Errorf("threshold must be between 0 and 100 (received %d)", input.Threshold)
	}
	cfg.Threshold = input.Threshold

	// --- 4. Window Validation ---
	if input.Window < 0 || input.Window > MaxWindowDays {
		return fmt.Errorf("window must be between 0 and %d days (received %d)", MaxWindowDays, input.Window)
	}
	cfg.WindowDays = input.Window

	// --- 4b. Trend Days Validation ---
	if input.Days < 0 || input.Days > MaxWindowDays {
		return fmt.Errorf("days must be between 0 and %d (received %d)", MaxWindowDays, input.Days)
	}
	cfg.TrendDays = input.Days
	if cfg.TrendDays == 0 {
		cfg.TrendDays = DefaultTrendDays
	}

	// --- 5. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- 6. Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	return nil
}

// validateScanInputs checks the spec and logs paths when they are given.
// Empty paths are allowed here; file discovery fills them at scan time.
func validateScanInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.SpecPath = strings.TrimSpace(input.Spec)
	cfg.LogsPath = strings.TrimSpace(input.Logs)
	cfg.ReportFile = input.Report

	if cfg.SpecPath != "" {
		if _, err := os.Stat(cfg.SpecPath); err != nil {
			return fmt.Errorf("spec file not found: %s", cfg.SpecPath)
		}
	}
	if cfg.LogsPath != "" {
		if _, err := os.Stat(cfg.LogsPath); err != nil {
			return fmt.Errorf("logs path not found: %s", cfg.LogsPath)
		}
	}

	// Scans operate on the working directory's repository
	if cfg.RepoPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("cannot resolve working directory: %w", err)
		}
		cfg.RepoPath = wd
	}
	return nil
}

// processPruneOptions applies the prune workflow defaults.
func processPruneOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.DryRun = input.DryRun

	cfg.BranchName = strings.TrimSpace(input.Branch)
	if cfg.BranchName == "" {
		cfg.BranchName = DefaultBranchName
	}
	if strings.ContainsAny(cfg.BranchName, " ~^:?*[\\") {
		return fmt.Errorf("invalid branch name %q", cfg.BranchName)
	}

	cfg.PRTitle = strings.TrimSpace(input.Title)
	if cfg.PRTitle == "" {
		cfg.PRTitle = DefaultPRTitle
	}

	cfg.BaseBranch = strings.TrimSpace(input.Base)
	if cfg.BaseBranch == "" {
		cfg.BaseBranch = DefaultBaseBranch
	}

	return nil
}

// processFleetOptions applies multi-service scan and org discovery options.
func processFleetOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.ServicesConfigPath = strings.TrimSpace(input.ServicesConfig)
	if cfg.ServicesConfigPath != "" {
		if _, err := os.Stat(cfg.ServicesConfigPath); err != nil {
			return fmt.Errorf("services config not found: %s", cfg.ServicesConfigPath)
		}
	}

	cfg.MultiReportFile = input.MultiReport
	if cfg.MultiReportFile == "" {
		cfg.MultiReportFile = DefaultMultiReport
	}

	cfg.GitHubToken = ResolveGitHubToken(input.Token)
	cfg.OrgConfigFile = input.OrgOutput
	if cfg.OrgConfigFile == "" {
		cfg.OrgConfigFile = DefaultOrgConfig
	}

	if input.MaxRepos < 0 {
		return fmt.Errorf("max-repos cannot be negative (received %d)", input.MaxRepos)
	}
	cfg.MaxRepos = input.MaxRepos

	if input.Exclude != "" {
		for part := range strings.SplitSeq(input.Exclude, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				cfg.ExcludeRepos = append(cfg.ExcludeRepos, trimmed)
			}
		}
	}

	return nil
}

// processServeOptions validates the dashboard server options.
func processServeOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.ServeHost = strings.TrimSpace(input.Host)
	if cfg.ServeHost == "" {
		cfg.ServeHost = DefaultServeHost
	}

	cfg.ServePort = input.Port
	if cfg.ServePort == 0 {
		cfg.ServePort = DefaultServePort
	}
	if cfg.ServePort < 1 || cfg.ServePort > 65535 {
		return fmt.Errorf("port must be between 1 and 65535 (received %d)", input.Port)
	}

	cfg.CacheURL = strings.TrimSpace(input.CacheURL)
	return nil
}
