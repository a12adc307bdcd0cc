package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"shopfeed/catalog"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var ErrProductNotFound = errors.New("product not found")

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	// The UNIQUE constraint spans the content columns rather than handle_id
	// alone: re-importing the same file is a no-op, while conflicting rows
	// that share a handle are kept for the prune pass to resolve.
	// thumbnail_url stays outside the constraint because it is derived from
	// image_url.
	const schema = `
CREATE TABLE IF NOT EXISTS products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	handle_id TEXT NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	image_url TEXT NOT NULL,
	thumbnail_url TEXT NOT NULL DEFAULT '',
	price TEXT NOT NULL,
	sku TEXT NOT NULL,
	collection TEXT NOT NULL,
	size TEXT NOT NULL,
	date_uploaded INTEGER NOT NULL,
	source_format TEXT NOT NULL,
	source_file TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(handle_id, name, description, image_url, price, sku, collection, size, source_file)
);

CREATE TABLE IF NOT EXISTS imports (
	id TEXT PRIMARY KEY,
	source_file TEXT NOT NULL,
	source_format TEXT NOT NULL,
	rows_read INTEGER NOT NULL,
	products_kept INTEGER NOT NULL,
	rows_dropped INTEGER NOT NULL,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := s.ensureThumbnailColumn(); err != nil {
		return err
	}

	return nil
}

// ensureThumbnailColumn migrates databases created before thumbnails were
// stored alongside the full image URL.
func (s *SQLiteStore) ensureThumbnailColumn() error {
	rows, err := s.db.Query(`PRAGMA table_info(products);`)
	if err != nil {
		return fmt.Errorf("query table info: %w", err)
	}
	defer rows.Close()

	hasThumbnail := false
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("scan table info: %w", err)
		}
		if strings.EqualFold(name, "thumbnail_url") {
			hasThumbnail = true
			break
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate table info: %w", err)
	}

	if hasThumbnail {
		return nil
	}

	if _, err := s.db.Exec(`ALTER TABLE products ADD COLUMN thumbnail_url TEXT NOT NULL DEFAULT '';`); err != nil {
		return fmt.Errorf("add thumbnail_url column: %w", err)
	}

	return nil
}

func (s *SQLiteStore) InsertProducts(products []catalog.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	const insertStmt = `
INSERT OR IGNORE INTO products (
	handle_id,
	name,
	description,
	image_url,
	thumbnail_url,
	price,
	sku,
	collection,
	size,
	date_uploaded,
	source_format,
	source_file
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, product := range products {
		res, err := stmt.Exec(
			product.HandleID,
			product.Name,
			product.Description,
			product.ImageURL,
			product.ThumbnailURL,
			product.Price,
			product.SKU,
			product.Collection,
			product.Size,
			product.DateUploaded,
			product.SourceFormat,
			product.SourceFile,
		)
		if err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("insert product: %w", err)
		}

		rows, err := res.RowsAffected()
		if err == nil && rows > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("commit transaction: %w", err)
	}

	return inserted, nil
}

const productColumns = `
	id,
	handle_id,
	name,
	description,
	image_url,
	thumbnail_url,
	price,
	sku,
	collection,
	size,
	date_uploaded,
	source_format,
	source_file`

func scanProduct(row interface{ Scan(...any) error }) (catalog.Product, error) {
	var product catalog.Product
	err := row.Scan(
		&product.ID,
		&product.HandleID,
		&product.Name,
		&product.Description,
		&product.ImageURL,
		&product.ThumbnailURL,
		&product.Price,
		&product.SKU,
		&product.Collection,
		&product.Size,
		&product.DateUploaded,
		&product.SourceFormat,
		&product.SourceFile,
	)
	return product, err
}

// ListProducts returns all stored products, newest upload first. Rows that
// share a timestamp keep insertion order.
func (s *SQLiteStore) ListProducts() ([]catalog.Product, error) {
	query := `SELECT` + productColumns + `
FROM products
ORDER BY date_uploaded DESC, id;`

	return s.queryProducts(query)
}

func (s *SQLiteStore) ListProductsByCollection(collection string) ([]catalog.Product, error) {
	query := `SELECT` + productColumns + `
FROM products
WHERE collection = ?
ORDER BY date_uploaded DESC, id;`

	return s.queryProducts(query, collection)
}

func (s *SQLiteStore) queryProducts(query string, args ...any) ([]catalog.Product, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]catalog.Product, 0, 256)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

// GetProductByID returns one product by ID, or ErrProductNotFound.
func (s *SQLiteStore) GetProductByID(id int64) (catalog.Product, error) {
	if id <= 0 {
		return catalog.Product{}, fmt.Errorf("product id must be > 0")
	}

	query := `SELECT` + productColumns + `
FROM products
WHERE id = ?;`

	product, err := scanProduct(s.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Product{}, ErrProductNotFound
		}
		return catalog.Product{}, fmt.Errorf("query product %d: %w", id, err)
	}

	return product, nil
}

// UpdateProduct replaces the editable fields for the row with the given ID.
// Handle and provenance columns stay fixed.
func (s *SQLiteStore) UpdateProduct(product catalog.Product) error {
	if product.ID <= 0 {
		return fmt.Errorf("product id must be > 0")
	}

	const updateStmt = `
UPDATE products
SET name = ?,
	description = ?,
	image_url = ?,
	thumbnail_url = ?,
	price = ?,
	sku = ?,
	collection = ?,
	size = ?
WHERE id = ?;`

	res, err := s.db.Exec(
		updateStmt,
		product.Name,
		product.Description,
		product.ImageURL,
		product.ThumbnailURL,
		product.Price,
		product.SKU,
		product.Collection,
		product.Size,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product %d: %w", product.ID, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read updated row count: %w", err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// DeleteProduct removes the row with the given ID.
func (s *SQLiteStore) DeleteProduct(id int64) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("product id must be > 0")
	}

	res, err := s.db.Exec(`DELETE FROM products WHERE id = ?;`, id)
	if err != nil {
		return false, fmt.Errorf("delete product %d: %w", id, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read deleted row count: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *SQLiteStore) DeleteProductsByID(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`DELETE FROM products WHERE id = ?;`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare delete statement: %w", err)
	}
	defer stmt.Close()

	var deleted int64
	for _, id := range ids {
		res, err := stmt.Exec(id)
		if err != nil {
			_ = tx.Rollback()
			return deleted, fmt.Errorf("delete product %d: %w", id, err)
		}

		rowsAffected, err := res.RowsAffected()
		if err == nil {
			deleted += rowsAffected
		}
	}

	if err := tx.Commit(); err != nil {
		return deleted, fmt.Errorf("commit delete transaction: %w", err)
	}

	return deleted, nil
}

func (s *SQLiteStore) DeleteAllProducts() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM products;`)
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	return rows, nil
}

func (s *SQLiteStore) CountProducts() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM products;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// RecordImport stores the audit row for one processed source file.
func (s *SQLiteStore) RecordImport(run catalog.ImportRun) error {
	const insertStmt = `
INSERT INTO imports (
	id,
	source_file,
	source_format,
	rows_read,
	products_kept,
	rows_dropped,
	started_at,
	finished_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	_, err := s.db.Exec(
		insertStmt,
		run.ID,
		run.SourceFile,
		run.SourceFormat,
		run.RowsRead,
		run.ProductsKept,
		run.RowsDropped,
		run.StartedAt.Format(time.RFC3339),
		run.FinishedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record import %s: %w", run.ID, err)
	}

	return nil
}

func (s *SQLiteStore) ListImports() ([]catalog.ImportRun, error) {
	const query = `
SELECT
	id,
	source_file,
	source_format,
	rows_read,
	products_kept,
	rows_dropped,
	started_at,
	finished_at
FROM imports
ORDER BY started_at DESC, id;
`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}
	defer rows.Close()

	runs := make([]catalog.ImportRun, 0, 32)
	for rows.Next() {
		var (
			run         catalog.ImportRun
			startedRaw  string
			finishedRaw string
		)

		if err := rows.Scan(
			&run.ID,
			&run.SourceFile,
			&run.SourceFormat,
			&run.RowsRead,
			&run.ProductsKept,
			&run.RowsDropped,
			&startedRaw,
			&finishedRaw,
		); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}

		run.StartedAt, err = time.Parse(time.RFC3339, startedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse import start time %q: %w", startedRaw, err)
		}
		run.FinishedAt, err = time.Parse(time.RFC3339, finishedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse import finish time %q: %w", finishedRaw, err)
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate imports: %w", err)
	}

	return runs, nil
}
