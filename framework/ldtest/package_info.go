// Package ldtest contains a test runner framework that is similar to Go's testing package,
// but is run as regular Go application code rather than Go tests. It also adds richer
// capabilities for filtering, logging, and result reporting. The bdd package builds
// describe/it suites on top of it.
package ldtest
