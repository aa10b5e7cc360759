// Package server implements the commission board development server.
//
// The server hands the browser everything it needs to run the board: the page
// shells, the stylesheet and the compiled wasm bundle under /static/. Requests
// under /api/ are reverse-proxied to the configured commissions API, so the
// page can fetch /api/commissions from its own origin. The server never
// renders cards itself.
package server
