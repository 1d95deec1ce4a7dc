package cmd

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/hitassert/packages/cases"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|directory>",
	Short: "Validate case files without running them",
	Long: `Validate case files against the case file schema and parse every case
without evaluating any assertion.

Examples:
  hitassert validate arrays.hitassert.yaml
  hitassert validate ./cases/`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	if len(files) == 0 {
		return withExitCode(ExitUsageError, fmt.Errorf("no case files found (expected %s)", strings.Join(cases.Extensions, ", ")))
	}

	invalid := 0
	for _, file := range files {
		violations, err := cases.ValidateFile(file)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s: %v\n", file, err)
			invalid++
			continue
		}
		if len(violations) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s:\n", file)
			for _, v := range violations {
				fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", v)
			}
			invalid++
			continue
		}

		if _, err := cases.ParseFile(file); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s: %v\n", file, err)
			invalid++
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", file)
	}

	if invalid > 0 {
		return withExitCode(ExitParseError, fmt.Errorf("validation failed for %d file(s)", invalid))
	}

	return nil
}
