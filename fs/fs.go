package appfs

import "embed"

// FS holds the static data and templates shipped with the binary.
//
//go:embed data all:templates
var FS embed.FS
