package registry

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	grailerrors "github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Install fetches name's manifest and archive from remote, verifies its
// checksum (and signature when trustedKeyPEM is configured), extracts it
// under installDir, and records it in catalog.
func Install(remote Remote, catalog *Catalog, name, installDir string, trustedKeyPEM []byte) (*ModelPackage, error) {
	manifest, body, err := remote.FetchManifest(name)
	if err != nil {
		return nil, err
	}

	sigStatus, err := verifySignature(manifest, body, trustedKeyPEM)
	if err != nil {
		return nil, errors.Wrapf(err, "verify signature for %s", name)
	}

	archive, err := remote.FetchArchive(manifest)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch archive for %s", name)
	}
	if err := verifyChecksum(manifest, archive); err != nil {
		return nil, err
	}

	localPath, err := extractArchive(archive, installDir, manifest)
	if err != nil {
		return nil, errors.Wrapf(err, "extract archive for %s", name)
	}

	pkg := &ModelPackage{
		Name:        manifest.Name,
		Version:     manifest.Version,
		RemoteURI:   manifest.Archive,
		LocalPath:   localPath,
		Checksum:    manifest.Checksum,
		Signature:   sigStatus,
		InstalledAt: time.Now(),
	}
	if err := catalog.Upsert(pkg); err != nil {
		return nil, err
	}
	log.Printf("installed %s %s -> %s", pkg.Name, pkg.Version, pkg.LocalPath)
	return pkg, nil
}

// extractArchive gunzips archive and writes it to
// installDir/<name>-<version>.xml, the layout a model.Model loader reads
// a package's definitions from.
func extractArchive(archive []byte, installDir string, m *Manifest) (string, error) {
	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return "", err
	}
	gr, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return "", errors.Wrap(err, "open gzip archive")
	}
	defer gr.Close()

	dest := filepath.Join(installDir, m.Name+"-"+m.Version+".xml")
	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()
	if _, err := io.Copy(out, gr); err != nil {
		return "", errors.Wrap(err, "decompress archive")
	}
	return dest, nil
}

// InstallAll installs every named package concurrently over a bounded
// worker pool, the way the teacher fans independent per-file work out
// over runtime.NumCPU() goroutines and aggregates the first error with
// errors.Once. Installs share no mutable state beyond the catalog, which
// serializes its own writes, so this concurrency never touches the
// detection core's purely sequential Replicon/Model/Cluster data.
func InstallAll(remote Remote, catalog *Catalog, names []string, installDir string, trustedKeyPEM []byte) ([]*ModelPackage, error) {
	type result struct {
		pkg *ModelPackage
		err error
	}

	nameCh := make(chan string, len(names))
	for _, n := range names {
		nameCh <- n
	}
	close(nameCh)

	resultCh := make(chan result, len(names))
	parallelism := runtime.NumCPU()
	if parallelism > len(names) {
		parallelism = len(names)
	}
	if parallelism < 1 {
		parallelism = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < parallelism; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range nameCh {
				pkg, err := Install(remote, catalog, n, installDir, trustedKeyPEM)
				resultCh <- result{pkg, err}
			}
		}()
	}
	wg.Wait()
	close(resultCh)

	once := grailerrors.Once{}
	var installed []*ModelPackage
	for r := range resultCh {
		once.Set(r.err)
		if r.pkg != nil {
			installed = append(installed, r.pkg)
		}
	}
	return installed, once.Err()
}
