// Package data embeds the default content fixtures served by the portal.
package data

import "embed"

//go:embed *.json
var FS embed.FS
