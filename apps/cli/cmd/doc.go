// Package cmd implements the hitassert CLI commands using Cobra.
//
// Available commands:
//   - run: Evaluate assertion cases from case files
//   - validate: Check case files against the schema without running them
//   - list: Display all cases defined in files
//   - init: Create an example case file and configuration
//   - version: Show hitassert version information
//   - completion: Generate shell completion scripts
package cmd
