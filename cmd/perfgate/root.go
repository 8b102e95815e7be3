package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "perfgate",
	Short: "Benchmark timing comparison gate for CI",
	Long: `perfgate compares two benchmark timing runs (a baseline and a latest,
each sampled twice for stability) and reports relative performance deltas.
It can post the report as a pull request comment and exits non-zero when
a regression threshold is exceeded, making it usable as a CI gate.`,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// explicit .env loading, a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("PERFGATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// The CI event payload path comes from the runner environment.
	viper.BindEnv("event_path", "GITHUB_EVENT_PATH")

	viper.SetDefault("notifications.slack.webhook", os.Getenv("SLACK_WEBHOOK_URL"))

	// config file is optional
	_ = viper.ReadInConfig()
}
