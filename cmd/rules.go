// Copyright © 2026 The elmguard authors

package cmd

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/henriquecbuss/elmguard/lint"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Describe the available checks",
	Long:  `Print the name, severity, and full documentation of every built-in check.`,
	Run: func(cmd *cobra.Command, args []string) {
		for i, a := range lint.Analyzers(lint.Config{}) {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("%s (%s)\n", a.Name, a.Severity)
			wrapped := wordwrap.String(a.Doc, 76)
			for _, line := range strings.Split(wrapped, "\n") {
				fmt.Println("  " + line)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
