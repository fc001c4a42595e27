// Package testutil provides shared test utilities for lightcycle.
//
// # Fixtures
//
//   - Words(...) - big-endian byte stream for a list of step words
//   - AllRedWord, SampleCycleWords - well-known step words
//   - SampleCycleYAML - a cycle description in YAML form
//
// # Environment Helpers
//
//   - WriteTestFile(t, base, path, content) - writes a file in a test dir
//   - ContextWithTestDeadline(t, fallback) - context bounded by the test deadline
//
// It imports no lightcycle packages, so internal tests of any package can
// use it.
package testutil
