// Package assertions provides type-specific comparators for use inside test
// suites. Each comparator validates its operands, compares them and either
// returns nil or an error describing the failure.
//
// Supported assertions:
//   - Sequence suffix/prefix checks (Arrays.AssertEndsWith, Arrays.AssertStartsWith)
//   - Path suffix/prefix checks (Paths.AssertEndsWithRaw, Paths.AssertEndsWith, Paths.AssertStartsWithRaw)
//
// Errors come in two flavours: *ArgumentError for caller misuse (a nil or
// empty operand, matched with ErrNullArgument or ErrInvalidArgument) and
// *AssertionError when the comparison legitimately failed. Failure messages
// are built by an injected Failures collaborator so tests can observe which
// message was raised.
package assertions
