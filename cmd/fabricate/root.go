package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.3.0"
)

var rootCmd = &cobra.Command{
	Use:   "fabricate",
	Short: "Generate realistic test data from declarative schemas",
	Long: `
Fabricate analyzes typed schemas and produces plausible synthetic records:
field names drive semantic generation (emails look like emails, prices like
prices), declared constraints are honored, and related records are created
and linked automatically.

Sink Support:
- In-memory (default, for piping to stdout)
- MongoDB (batched InsertMany)
- PostgreSQL, MySQL, SQLite (batched multi-row INSERT)`,
	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("fabricate version %s\n", Version)
			return
		}
		cmd.Help()
	},
}

// Execute runs the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		color.Red("❌ %v", err)
		return err
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default fabricate.yaml)")
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

func initConfig() {
	// .env first so url_env indirection works out of the box.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fabricate")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			color.Yellow("⚠️  Could not read config: %v", err)
		}
	}
}
