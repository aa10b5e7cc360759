//go:build js && wasm

// Command commissions-web is the browser build of the commission board.
//
// Build it into the static directory served next to the page shell:
//
//	GOOS=js GOARCH=wasm go build -o dist/commissions.wasm ./cmd/commissions-web
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" dist/
//	commissions serve --static-dir dist
//
// On page ready it performs a single load from /api/commissions on the page
// origin into #commissions-container.
package main

import (
	"context"
	"syscall/js"

	"github.com/polisai/commission-board/pkg/dom"
	"github.com/polisai/commission-board/pkg/loader"
	"github.com/polisai/commission-board/pkg/logging"
	"github.com/polisai/commission-board/pkg/render"
)

const containerID = "commissions-container"

func main() {
	logger := logging.NewLogger(logging.Config{Level: "info", Pretty: true})

	load := func() {
		display, ok := dom.NewJSDisplay(containerID)
		if !ok {
			logger.Error("Display area not found", "id", containerID)
			return
		}

		nav := dom.Location{}
		client := loader.NewClient(dom.Origin())
		l := loader.New(client.List, render.New(display, nav, logger), logger)
		l.Run(context.Background())
	}

	doc := js.Global().Get("document")
	if doc.Get("readyState").String() == "loading" {
		var onReady js.Func
		onReady = js.FuncOf(func(js.Value, []js.Value) any {
			onReady.Release()
			// Fetch blocks on the event loop, so it cannot run inside the callback.
			go load()
			return nil
		})
		doc.Call("addEventListener", "DOMContentLoaded", onReady)
	} else {
		go load()
	}

	select {}
}
