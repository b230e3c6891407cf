package inkwell

import (
	_ "embed"
)

// Version holds the current library version, embedded from version.txt.
//
//go:embed version.txt
var Version string
