// Package internal holds code that the ldtest stack trace tests need to live outside ldtest.
package internal

// RunAction calls action. A stack trace taken inside action has this function as its first
// frame that does not belong to ldtest.
func RunAction(action func()) { action() }
