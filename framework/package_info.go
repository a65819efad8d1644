// Package framework contains the low-level test infrastructure that the lazy variable layer is
// hosted on. The base package contains shared types such as Logger; other components are in the
// subpackages:
//
// 1. ldtest is a test runner similar to Go's testing package, with nested test scopes, filters
// and pluggable result reporting.
//
// 2. bdd builds a describe/it suite tree on top of ldtest. Suites are declared in a definition
// phase and executed afterward, with before/after hooks at suite and test level.
//
// 3. matchers, opt and helpers are small utility packages used by tests and by the other
// components.
package framework
