package geography

import (
	"bytes"
	_ "embed"
	"sync"
)

//go:embed stations.json
var embeddedStations []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog embedded in the binary.
// It is parsed once on first use and shared for the process lifetime.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(bytes.NewReader(embeddedStations))
	})
	return defaultCatalog, defaultErr
}

// Load returns the catalog at path, or the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}
