// Copyright © 2026 The elmguard authors

package cmd

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/henriquecbuss/elmguard/lint"
)

var (
	checkJSON     bool
	checkExcludes []string
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [files...]",
	Short: "Check Elm source files against the configured bindings",
	Long: `Check Elm source files against the configured forbidden-function
bindings and report every violation with its exact source span.

With no files, reads from stdin. Arguments ending in /... are expanded to
all .elm files found recursively under the directory.

Exit codes:
  0  No problems found
  1  One or more problems were reported
  2  Bad invocation (invalid flags, unreadable files, bad configuration)

To suppress a specific diagnostic, add a comment on the same line:
  Html.input [] [] -- nolint:forbidden-functions

To suppress all checks on a line:
  Html.input [] [] -- nolint

Examples:
  elmguard check src/...                       # Check a whole source tree
  elmguard check Main.elm View/Input.elm       # Check specific files
  elmguard check --json src/...                # Output diagnostics as JSON
  elmguard check --exclude='**/Generated/**' src/...
  cat Main.elm | elmguard check                # Check from stdin`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadRuleConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, "elmguard:", err)
			os.Exit(2)
		}

		l := &lint.Linter{Analyzers: lint.Analyzers(cfg)}

		if len(args) == 0 {
			if err := checkStdin(l); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			return
		}

		expanded, err := expandArgs(args, checkExcludes)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		var allDiags []lint.Diagnostic
		for _, path := range expanded {
			logger.Debug().Str("file", path).Msg("checking")
			diags, err := checkFile(l, path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			allDiags = append(allDiags, diags...)
		}
		logger.Debug().Int("files", len(expanded)).Int("diagnostics", len(allDiags)).Msg("done")

		if len(allDiags) == 0 {
			return
		}

		if checkJSON {
			if err := lint.FormatJSON(os.Stdout, allDiags); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
		} else {
			renderLintDiagnostics(allDiags)
		}
		os.Exit(1)
	},
}

func checkStdin(l *lint.Linter) error {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	diags, err := l.LintFile(src, "<stdin>")
	if err != nil {
		return err
	}
	if len(diags) == 0 {
		return nil
	}
	if checkJSON {
		if err := lint.FormatJSON(os.Stdout, diags); err != nil {
			return err
		}
	} else {
		renderLintDiagnostics(diags)
	}
	os.Exit(1)
	return nil
}

func checkFile(l *lint.Linter, path string) ([]lint.Diagnostic, error) {
	src, err := os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l.LintFile(src, path)
}

// bindingEntry is the config-file shape of one binding. Both keys accept a
// single string or a list; real configurations use both forms.
type bindingEntry struct {
	Functions      []string `mapstructure:"functions"`
	AllowedModules []string `mapstructure:"allowed-modules"`
}

// loadRuleConfig reads the `forbidden` bindings from the resolved config
// file and validates them.
func loadRuleConfig() (lint.Config, error) {
	var entries []bindingEntry
	if err := viper.UnmarshalKey("forbidden", &entries, viper.DecodeHook(stringToSliceHook)); err != nil {
		return lint.Config{}, fmt.Errorf("config: %w", err)
	}
	cfg := lint.Config{}
	for _, e := range entries {
		cfg.Bindings = append(cfg.Bindings, lint.Binding{
			Functions: e.Functions,
			Modules:   e.AllowedModules,
		})
	}
	if len(cfg.Bindings) == 0 {
		logger.Warn().Msg("no forbidden bindings configured; only structural checks will run")
	}
	if err := cfg.Validate(); err != nil {
		return lint.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// stringToSliceHook lets a scalar config value stand in for a one-element
// list, so `functions: Html.input` and `functions: [Html.input]` both work.
var stringToSliceHook mapstructure.DecodeHookFuncType = func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() == reflect.String && to.Kind() == reflect.Slice && to.Elem().Kind() == reflect.String {
		return []string{data.(string)}, nil
	}
	return data, nil
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output diagnostics as JSON.")
	checkCmd.Flags().StringArrayVar(&checkExcludes, "exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
}
