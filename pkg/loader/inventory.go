package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/qyire/primekit/pkg/core"
)

// Inventory reads raw catalog items from a file, preserving input order.
// Files ending in .db, .sqlite or .sqlite3 are read as SQLite catalog
// databases, everything else as a JSON array of items.
func Inventory(ctx context.Context, path string) ([]core.Item, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return InventorySQLite(ctx, path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open inventory file: %w", err)
		}
		defer f.Close()
		return InventoryJSON(f)
	}
}

// InventoryJSON decodes a JSON inventory document: an array of
//
//	{"id": "SKU00001", "name": "...", "attributes": {"color": ["Red"], ...}}
//
// Structural validation beyond JSON shape is left to the load itself, which
// skips malformed items instead of failing the whole pass.
func InventoryJSON(r io.Reader) ([]core.Item, error) {
	var items []core.Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode inventory JSON: %w", err)
	}
	return items, nil
}
