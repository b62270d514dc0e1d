package registry

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Catalog is the local installed-package index, SQLite-backed.
type Catalog struct {
	db *sql.DB
}

// OpenCatalog opens (creating if needed) the catalog database at path.
func OpenCatalog(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, errors.Wrap(err, "open catalog database")
	}
	if _, err := db.Exec(catalogSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create catalog schema")
	}
	return &Catalog{db: db}, nil
}

const catalogSchema = `
CREATE TABLE IF NOT EXISTS model_packages (
	name TEXT PRIMARY KEY,
	version TEXT NOT NULL,
	remote_uri TEXT NOT NULL,
	local_path TEXT NOT NULL,
	checksum TEXT NOT NULL,
	signature TEXT NOT NULL,
	installed_at DATETIME NOT NULL
)`

// Close closes the underlying database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Upsert records p in the catalog, replacing any prior entry for the
// same package name.
func (c *Catalog) Upsert(p *ModelPackage) error {
	_, err := c.db.Exec(`
		INSERT INTO model_packages (name, version, remote_uri, local_path, checksum, signature, installed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			version=excluded.version, remote_uri=excluded.remote_uri,
			local_path=excluded.local_path, checksum=excluded.checksum,
			signature=excluded.signature, installed_at=excluded.installed_at`,
		p.Name, p.Version, p.RemoteURI, p.LocalPath, p.Checksum, string(p.Signature), p.InstalledAt)
	if err != nil {
		return errors.Wrapf(err, "record package %s in catalog", p.Name)
	}
	return nil
}

// List returns every installed package, ordered by name.
func (c *Catalog) List() ([]*ModelPackage, error) {
	rows, err := c.db.Query(`SELECT name, version, remote_uri, local_path, checksum, signature, installed_at FROM model_packages ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "list catalog")
	}
	defer rows.Close()
	return scanPackages(rows)
}

// Search returns installed packages whose name contains keyword.
func (c *Catalog) Search(keyword string) ([]*ModelPackage, error) {
	rows, err := c.db.Query(`SELECT name, version, remote_uri, local_path, checksum, signature, installed_at FROM model_packages WHERE name LIKE ? ORDER BY name`, "%"+keyword+"%")
	if err != nil {
		return nil, errors.Wrap(err, "search catalog")
	}
	defer rows.Close()
	return scanPackages(rows)
}

// Get returns the installed package named name, or nil if it isn't
// installed.
func (c *Catalog) Get(name string) (*ModelPackage, error) {
	row := c.db.QueryRow(`SELECT name, version, remote_uri, local_path, checksum, signature, installed_at FROM model_packages WHERE name = ?`, name)
	p := &ModelPackage{}
	var sig string
	err := row.Scan(&p.Name, &p.Version, &p.RemoteURI, &p.LocalPath, &p.Checksum, &sig, &p.InstalledAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "look up package %s", name)
	}
	p.Signature = SignatureStatus(sig)
	return p, nil
}

func scanPackages(rows *sql.Rows) ([]*ModelPackage, error) {
	var out []*ModelPackage
	for rows.Next() {
		p := &ModelPackage{}
		var sig string
		if err := rows.Scan(&p.Name, &p.Version, &p.RemoteURI, &p.LocalPath, &p.Checksum, &sig, &p.InstalledAt); err != nil {
			return nil, errors.Wrap(err, "scan catalog row")
		}
		p.Signature = SignatureStatus(sig)
		out = append(out, p)
	}
	return out, rows.Err()
}
