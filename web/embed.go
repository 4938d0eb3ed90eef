// Package web holds the browser page and widget script served by the chat server.
package web

import "embed"

//go:embed static
var Static embed.FS

const (
	IndexPath  = "static/index.html"
	WidgetPath = "static/widget.js"
)
