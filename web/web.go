// Package web embeds the HTML templates served by the review interface.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
