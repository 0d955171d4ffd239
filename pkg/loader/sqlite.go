package loader

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/qyire/primekit/pkg/core"

	_ "modernc.org/sqlite" // SQLite driver
)

// InventorySQLite reads raw catalog items from a SQLite database with the
// schema
//
//	CREATE TABLE skus (id TEXT NOT NULL, name TEXT);
//	CREATE TABLE sku_attributes (sku_id TEXT NOT NULL, attribute TEXT NOT NULL, value TEXT NOT NULL);
//
// Item order follows skus rowid order, so the store's iteration order
// matches the catalog's insertion order. Attribute rows referencing an
// unknown sku_id are ignored.
func InventorySQLite(ctx context.Context, path string) ([]core.Item, error) {
	// _busy_timeout: the catalog may be written by another process.
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, COALESCE(name, '') FROM skus ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query skus: %w", err)
	}
	defer rows.Close()

	var items []core.Item
	index := make(map[string]int) // sku id -> first position
	for rows.Next() {
		var item core.Item
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("scan sku: %w", err)
		}
		item.Attributes = make(map[string][]string)
		if _, ok := index[item.ID]; !ok {
			index[item.ID] = len(items)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skus: %w", err)
	}

	attrRows, err := db.QueryContext(ctx,
		`SELECT sku_id, attribute, value FROM sku_attributes ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query sku_attributes: %w", err)
	}
	defer attrRows.Close()

	for attrRows.Next() {
		var skuID, attr, value string
		if err := attrRows.Scan(&skuID, &attr, &value); err != nil {
			return nil, fmt.Errorf("scan sku attribute: %w", err)
		}
		i, ok := index[skuID]
		if !ok {
			continue
		}
		items[i].Attributes[attr] = append(items[i].Attributes[attr], value)
	}
	if err := attrRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sku_attributes: %w", err)
	}

	return items, nil
}
