// Package testutil contains helper builders used across tests to reduce
// boilerplate when constructing applications and workflow states at a given
// point in the admission pipeline. These helpers are intentionally minimal
// and avoid adding third-party dependencies. They are not intended for
// production usage.
package testutil
