package cmd

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rezonia/saft-validator/internal/validate"
)

var (
	version = "1.0.0"

	// Global flags
	cfgFile       string
	verbose       bool
	outputFormat  string
	publicKeyPath string
)

var rootCmd = &cobra.Command{
	Use:   "saft-validator",
	Short: "Validate SAF-T (PT) audit files",
	Long: `SAF-T Validator checks Portuguese SAF-T audit files against the legal
billing rules: document structure, totals, tax table consistency and the
RSA signature chain linking consecutive documents of a series.

Examples:
  # Validate an audit file
  saft-validator validate saft.xml

  # Verify only the signature chain
  saft-validator verify saft.xml --public-key key.pem

  # Show file information
  saft-validator info saft.xml

  # Start the HTTP API
  saft-validator serve --address :8080`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: .saft-validator.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table)")
	rootCmd.PersistentFlags().StringVar(&publicKeyPath, "public-key", "", "PEM public key for signature verification (env: SAFT_PUBLIC_KEY)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".saft-validator")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}
	viper.SetEnvPrefix("SAFT")
	viper.AutomaticEnv()

	viper.SetDefault("tolerance.line", "0.01")
	viper.SetDefault("tolerance.currency", "0.01")
	viper.SetDefault("tolerance.table", "0.01")
	viper.SetDefault("tolerance.document", "0.01")
	viper.SetDefault("rules.continuous_lines", true)
	viper.SetDefault("rules.allow_debit_and_credit", false)
	viper.SetDefault("rules.sign_validation", true)

	if err := viper.ReadInConfig(); err == nil {
		printVerbose("Using config file: %s\n", viper.ConfigFileUsed())
	}

	if publicKeyPath == "" {
		publicKeyPath = viper.GetString("public_key")
	}

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// validationConfig builds the engine configuration from the config file,
// environment and defaults.
func validationConfig() (validate.Config, error) {
	cfg := validate.DefaultConfig()

	tolerances := []struct {
		key    string
		target *decimal.Decimal
	}{
		{"tolerance.line", &cfg.DeltaLine},
		{"tolerance.currency", &cfg.DeltaCurrency},
		{"tolerance.table", &cfg.DeltaTable},
		{"tolerance.document", &cfg.DeltaTotalDoc},
	}
	for _, t := range tolerances {
		d, err := decimal.NewFromString(viper.GetString(t.key))
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", t.key, err)
		}
		*t.target = d
	}

	cfg.ContinuesLines = viper.GetBool("rules.continuous_lines")
	cfg.AllowDebitAndCredit = viper.GetBool("rules.allow_debit_and_credit")
	cfg.SignValidation = viper.GetBool("rules.sign_validation")
	return cfg, nil
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
