// Package query turns a prompt into a provider call and the call's outcome
// into a uniform result envelope.
//
// A [Client] resolves the provider's credential, builds the adapter through
// the provider's [Factory], sends the prompt and converts every failure into
// an unavailable [Result]. No error ever leaves [Client.Query].
package query
