// Package registry manages model packages fetched from a remote object
// store: downloading, checksum/signature verification, and a local
// installed-package catalog that the CLI lists and searches.
package registry

import (
	"time"

	"github.com/mr-c/macsyfinder/msferr"
)

// SignatureStatus records whether a package's manifest signature was
// checked, and with what result.
type SignatureStatus string

const (
	// SignatureNotChecked means the registry has no trusted key
	// configured, so no signature verification was attempted.
	SignatureNotChecked SignatureStatus = "not_checked"
	// SignatureValid means the manifest's JOSE signature verified
	// against the configured trusted key.
	SignatureValid SignatureStatus = "valid"
	// SignatureInvalid means a trusted key was configured but the
	// signature did not verify.
	SignatureInvalid SignatureStatus = "invalid"
)

// ModelPackage describes one installed or installable package of model
// definitions, independent of any detection run: a run only needs the
// model.Model values a package resolves to on disk.
type ModelPackage struct {
	Name        string
	Version     string
	RemoteURI   string
	LocalPath   string
	Checksum    string
	Signature   SignatureStatus
	InstalledAt time.Time
}

// Manifest is the package manifest fetched alongside a package's archive.
type Manifest struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Archive  string `json:"archive"`
	Checksum string `json:"checksum"`
	// Signature is a JOSE compact-serialization signature whose embedded
	// payload carries the manifest's other fields, present only for signed
	// packages.
	Signature string `json:"signature,omitempty"`
}

// Remote fetches a package manifest and archive by name.
type Remote interface {
	FetchManifest(name string) (*Manifest, []byte, error)
	FetchArchive(m *Manifest) ([]byte, error)
}

func notFound(name string) error {
	return msferr.E(msferr.NotFound, msferr.Op("registry.Install"), "package "+name+" not found in remote registry")
}
