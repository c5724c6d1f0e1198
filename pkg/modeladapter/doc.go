// Package modeladapter holds the HTTP plumbing shared by the provider adapters.
//
// It contains:
//   - the embeddable [ModelAdapter] base struct with auth placement (header or
//     query parameter), custom headers, a JSON POST helper and usage reporting
//   - the failure classes adapters surface: [StatusError] for non-2xx answers,
//     [TransportError] for failed round trips and [FormatError] for bodies that
//     do not match the documented shape
//
// This package contains no provider-specific code. Concrete adapters live in
// the providers packages and embed ModelAdapter.
package modeladapter
