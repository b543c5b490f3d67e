package content

import (
	"embed"
	"io/fs"
)

//go:embed data
var embedded embed.FS

// BuiltinFS returns the embedded contentset (paths.json + lessons/).
func BuiltinFS() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}

// LoadBuiltin loads the catalog shipped with the binary.
func LoadBuiltin() (*Catalog, error) {
	return LoadCatalog(BuiltinFS())
}
