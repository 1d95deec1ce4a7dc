package cmd

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/hitassert/packages/cases"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <file|directory>",
	Short: "List all cases in case files",
	Long: `List all cases defined in case files with their check and tags.

Examples:
  hitassert list arrays.hitassert.yaml
  hitassert list ./cases/`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	if len(files) == 0 {
		return withExitCode(ExitUsageError, fmt.Errorf("no case files found (expected %s)", strings.Join(cases.Extensions, ", ")))
	}

	unparsed := 0
	for _, file := range files {
		f, err := cases.ParseFile(file)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error parsing %s: %v\n", file, err)
			unparsed++
			continue
		}

		title := file
		if f.Name != "" {
			title = fmt.Sprintf("%s (%s)", f.Name, file)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", title)
		for _, c := range f.Cases {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s [%s]", c.Name, c.Check)
			if c.Skip != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " (skip: %s)", c.Skip)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			if len(c.Tags) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "    tags: %v\n", c.Tags)
			}
		}
	}

	if unparsed > 0 {
		return withExitCode(ExitParseError, fmt.Errorf("%d case file(s) could not be parsed", unparsed))
	}
	return nil
}
