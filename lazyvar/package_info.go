// Package lazyvar provides lazily evaluated, per-test memoized variables for describe/it style
// test suites.
//
// A variable is defined on a suite with Interface.Def (or Subject) while the suite is being
// defined, and read with Interface.Get while a test runs. The definition is evaluated on the
// first read in each test and cached until the test ends. A suite sees the definitions of its
// ancestors, and a definition may read its own name to get the value of the definition it
// overrides:
//
//	ui.Def("name", "John")
//	describe("nested", func() {
//		ui.Def("name", func() any { return ui.Get("name").(string) + " Smith" })
//	})
//
// The package knows nothing about any particular test framework. A Host implementation tells the
// SuiteTracker how to find a suite's parent and how to register the run-time hooks; see the
// bddui and ginkgoui packages.
package lazyvar
