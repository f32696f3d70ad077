// Copyright © 2026 The elmguard authors

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	colorFlag   string
	verboseFlag bool

	// logger carries operational logging (file discovery, timings). Rule
	// findings never go through it; they have their own formatting.
	logger zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "elmguard",
	Short: "Keep designated Elm functions inside designated modules",
	Long: `elmguard is a static-analysis tool for Elm projects. Its core rule flags
uses of specific functions outside a whitelist of modules, so teams can
funnel things like raw Html.input or ungoverned Http.request through one
blessed wrapper module.

Getting started:
  elmguard check src/...        Check every .elm file under src/
  elmguard check Main.elm       Check a single file
  elmguard rules                Describe the available checks

Configuration lives in .elmguard.yaml (or .json/.toml) in the working
directory or your home directory:

  forbidden:
    - functions: Html.input
      allowed-modules: View.Input
    - functions: [NativeModule.unsafeFunction, NativeModule.otherUnsafe]
      allowed-modules: [SomeModule, SomeOtherModule]

A reference counts as a use of a forbidden function whether it is written
bare through an exposing clause, qualified through the module name or an
import alias, or fully qualified without any import. Modules on a binding's
allow-list are exempt from that binding only.

More information:
  Source code: https://github.com/henriquecbuss/elmguard`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if verboseFlag {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.elmguard.yaml, then $HOME/.elmguard.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Enable debug logging on stderr.")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".elmguard")
	}

	viper.SetEnvPrefix("elmguard")
	viper.AutomaticEnv()

	// A missing config file is fine here; commands that need bindings
	// report it with context.
	_ = viper.ReadInConfig()
}
