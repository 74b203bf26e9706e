// Package schemas embeds the JSON Schema files and registers them with the
// catalog package on import. CLI entry points should import this package with
// a blank identifier: import _ "github.com/marshab/marskit/schemas"
package schemas

import (
	"embed"

	"github.com/marshab/marskit/internal/catalog"
)

//go:embed parts-v1.schema.json
var fs embed.FS

func init() {
	data, err := fs.ReadFile("parts-v1.schema.json")
	if err != nil {
		panic("schemas: failed to read embedded parts-v1.schema.json: " + err.Error())
	}
	catalog.SetSchema(data)
}
