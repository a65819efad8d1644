// Package bdd is a small describe/it test host built on ldtest.
//
// Tests are declared in a definition phase: Describe bodies run immediately, registering nested
// suites, tests and hooks on the suite tree. Runner.Run then walks the tree in declaration order,
// giving each suite and each test its own ldtest scope.
//
// Hook order follows the usual BDD conventions. A suite's BeforeAll hooks run once before its
// first test and its AfterAll hooks run once after its last test, both in registration order.
// BeforeEach hooks run from the outermost suite inward; AfterEach hooks run from the innermost
// suite outward, and they still run when the test or one of its BeforeEach hooks failed.
package bdd
