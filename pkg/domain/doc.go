// Package domain defines the core types of the commission board.
//
// This package contains pure domain logic with ZERO external dependencies outside the
// Go standard library. It describes what a commission is, how its detail path is
// derived, and how a single load of the board can end:
//
// - Commission records are read-only values decoded from the API payload
// - LoadState names the observable outcome of one load
// - FetchError carries the diagnostics of a failed fetch
//
// Infrastructure packages (loader, render, server) depend on these types. The
// dependency direction is always:
//
//	Infrastructure → Domain (CORRECT)
//	Domain → Infrastructure (FORBIDDEN)
package domain
