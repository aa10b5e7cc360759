// Package dom models the page region the commission board draws into.
//
// Content is built as golang.org/x/net/html node trees. A Display receives
// those trees and click handlers; Container is the in-memory implementation
// used by the CLI and tests, and JSDisplay (js/wasm builds only) mirrors the
// trees into the browser DOM. Clicks bubble from the target node up to the
// display root the way browser events do, so handlers can inspect both the
// original target and the node they were registered on.
package dom
