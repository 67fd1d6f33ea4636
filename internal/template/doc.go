// Package template resolves named placeholder tokens in a text template.
//
// A token is an identifier wrapped in a pair of delimiters, "@NAME@" by
// default. Resolution is by name, so the order of bindings never matters.
// A token without a binding fails the whole render; a binding without a
// token is only reported back as an UnusedBindingWarning.
package template
