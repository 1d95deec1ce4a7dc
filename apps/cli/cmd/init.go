package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/hitassert/packages/core/config"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new hitassert project",
	Long: `Initialize a new hitassert project in the current directory.

This creates:
  - .hitassert.yaml          - Configuration file
  - example.hitassert.yaml   - Example case file

Examples:
  hitassert init
  hitassert init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

const exampleCases = `name: getting started
cases:
  - name: bytes end with their tail
    check: endsWith
    actual: [6, 8, 10, 12]
    expected: [8, 10, 12]
    tags: [smoke]

  - name: a sequence ends with itself
    check: endsWith
    actual: [6, 8, 10, 12]
    expected: [6, 8, 10, 12]

  - name: matching head is not a suffix
    check: endsWith
    actual: [6, 8, 10, 12]
    expected: [6, 20, 22]
    expect: fail

  - name: empty sequence is rejected
    check: endsWith
    actual: [6, 8]
    expected: []
    expect: invalidArgument

  - name: raw path suffix
    description: compares path elements without normalizing
    check: pathEndsWithRaw
    actual: /usr/local/bin
    expected: local/bin
    tags: [smoke, paths]

  - name: missing path is reported before actual
    check: pathEndsWithRaw
    actual: /usr/local/bin
    expected: null
    expect: nullArgument
`

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, config.ConfigFilenames[0])
	exampleFile := filepath.Join(cwd, "example.hitassert.yaml")

	if !forceInit {
		for _, f := range []string{configFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return withExitCode(ExitUsageError, fmt.Errorf("file already exists: %s (use --force to overwrite)", f))
			}
		}
	}

	if err := config.DefaultConfig().SaveConfig(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	if err := os.WriteFile(exampleFile, []byte(exampleCases), 0644); err != nil {
		return fmt.Errorf("failed to create example file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nhitassert project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'hitassert run example.hitassert.yaml' to evaluate the example cases.\n")

	return nil
}
