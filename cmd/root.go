package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jobsieve/jobsieve/internal/scoring"
)

const (
	app = "jobsieve"
)

// Config is the file-backed configuration. The profile section stays
// loosely typed here and is decoded through jobs.DecodeProfile, which
// knows how to turn seniority strings into levels.
type Config struct {
	PostingsFile  string           `mapstructure:"postings-file"`
	DecisionsFile string           `mapstructure:"decisions-file"`
	Profile       map[string]any   `mapstructure:"profile"`
	Weights       *scoring.Weights `mapstructure:"weights"`
	AI            *AIConfig        `mapstructure:"ai"`
}

type AIConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Provider        string        `mapstructure:"provider"`
	MinimumFitScore float64       `mapstructure:"minimum-fit-score"`
	Gemini          *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobsieve filters and scores scraped job postings and gates apply/learn work on recorded decisions",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A local .env is optional; the environment wins when both are set.
	_ = godotenv.Load()

	if err := viper.BindEnv("decisions-file", "JOBSIEVE_DECISIONS_FILE"); err != nil {
		log.Fatalf("binding JOBSIEVE_DECISIONS_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("gemini-api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobsieve.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Only the decide command needs the full config (profile, weights).
	// The gate commands work from the decisions file alone.
	if decideCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

// decisionsPath resolves the decisions file location: flag/env first,
// then the config file, then the per-user default.
func decisionsPath(config *Config) string {
	if path := viper.GetString("decisions-file"); path != "" {
		return path
	}
	if config != nil && config.DecisionsFile != "" {
		return config.DecisionsFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "decisions.json"
	}
	return filepath.Join(home, "."+app, "decisions.json")
}
