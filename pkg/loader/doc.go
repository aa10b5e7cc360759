// Package loader fetches the commission list and hands it to the renderer.
//
// A load is a two-step pipeline: Fetch performs the single HTTP request and
// returns a Result, Apply renders that Result. Failures never escape Apply;
// they are logged and replaced by the fixed failure message. There are no
// retries: one best-effort attempt per load.
package loader
