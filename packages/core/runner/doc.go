// Package runner executes hitassert case files.
//
// It provides functionality for:
//   - Running individual case files
//   - Filtering cases by name pattern, tags and the only flag
//   - Parallel case execution with configurable concurrency
//   - Resolving fixture operands relative to the case file
//   - Comparing case messages with stored snapshots
//
// Each case is mapped onto the comparators in the assertions package and
// its outcome (pass, fail, nullArgument, invalidArgument) is compared with
// the outcome the case expects.
package runner
