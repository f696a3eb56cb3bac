// Package errors provides structured, actionable error messages for navheader.
//
// Each error carries a code from a fixed registry, a category, a short
// message, and optionally a longer detail, a fix suggestion and a wrapped
// cause. Errors unwrap, so errors.Is and errors.As from the standard library
// keep working on the cause.
//
// # Usage
//
//	return errors.New("E101").
//	    WithDetail("line 4: expected a mapping").
//	    WithSuggestion("Check that navheader.yaml is valid YAML").
//	    Wrap(err)
package errors
