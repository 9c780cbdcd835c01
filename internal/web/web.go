// Package web holds the chat page served at the root path.
package web

import _ "embed"

// IndexHTML is the single-page chat client.
//
//go:embed index.html
var IndexHTML string
