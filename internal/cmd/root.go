// Package cmd holds the craftwatch CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/config"
)

var (
	cfgFile   string
	outputFmt string
	verbose   bool
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "craftwatch",
	Short: "craftwatch — Minecraft server log analytics",
	Long: `craftwatch turns a Minecraft server's console logs and stats files into
player analytics: live event streams, session reconstruction, activity
histograms, leaderboards, and an online-roster status endpoint backed by RCON.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.craftwatch.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.PersistentFlags().String("stats-path", "", "path to the world/stats directory")
	rootCmd.PersistentFlags().String("server-name", "", "display name for the server")
	_ = viper.BindPFlag("stats_path", rootCmd.PersistentFlags().Lookup("stats-path"))
	_ = viper.BindPFlag("server_name", rootCmd.PersistentFlags().Lookup("server-name"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".craftwatch")
		viper.SetConfigType("yaml")
	}

	config.SetDefaults()
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
