package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/procmock"
)

var rootCmd = &cobra.Command{
	Use:           "procmock",
	Short:         "Inspect and validate procmock fixture files",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var checkCmd = &cobra.Command{
	Use:   "check <fixture.yaml>...",
	Short: "Validate fixture files without registering anything",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var failed bool
		for _, path := range args {
			fixtures, err := parseFile(path)
			if err != nil {
				failed = true
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d mocks)\n", path, len(fixtures))
		}
		if failed {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list <fixture.yaml>",
	Short: "Print the patterns and behaviors a fixture file registers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fixtures, err := parseFile(args[0])
		if err != nil {
			return err
		}
		for _, fx := range fixtures {
			fmt.Fprintln(cmd.OutOrStdout(), describe(fx))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func parseFile(path string) ([]procmock.Fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: operator-supplied path
	if err != nil {
		return nil, err
	}
	return procmock.ParseFixtures(data)
}

func describe(fx procmock.Fixture) string {
	pattern := fx.Pattern
	if fx.Regex != nil {
		pattern = "~" + fx.Regex.String()
	}

	scope := "all methods"
	if len(fx.Methods) > 0 {
		scope = ""
		for i, m := range fx.Methods {
			if i > 0 {
				scope += ","
			}
			scope += string(m)
		}
	}

	cfg := fx.Config
	switch {
	case cfg.Err != nil:
		return fmt.Sprintf("%-30s [%s] error: %v", pattern, scope, cfg.Err)
	case cfg.Signal != "":
		return fmt.Sprintf("%-30s [%s] signal %s", pattern, scope, cfg.Signal)
	case cfg.ExitCode != 0:
		return fmt.Sprintf("%-30s [%s] exit %d stderr=%q", pattern, scope, cfg.ExitCode, cfg.Stderr)
	default:
		return fmt.Sprintf("%-30s [%s] exit 0 stdout=%q", pattern, scope, cfg.Stdout)
	}
}
