package parts

import "embed"

// FS contains the embedded part catalog: the manifest plus every kit document.
//
//go:embed manifest.yaml files/*.scad files/*.txt
var FS embed.FS
