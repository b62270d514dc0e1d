package registry

import (
	"strconv"

	"blainsmith.com/go/seahash"
	"github.com/pkg/errors"
)

// checksumArchive returns the seahash digest of an archive's bytes, hex
// encoded, the same hash the teacher's own BAM checksum command uses.
func checksumArchive(data []byte) string {
	h := seahash.New()
	h.Write(data)
	return strconv.FormatUint(h.Sum64(), 16)
}

// verifyChecksum compares an archive's computed seahash digest against
// the manifest's declared checksum.
func verifyChecksum(m *Manifest, archive []byte) error {
	got := checksumArchive(archive)
	if got != m.Checksum {
		return errors.Errorf("checksum mismatch for %s %s: manifest says %s, archive hashes to %s", m.Name, m.Version, m.Checksum, got)
	}
	return nil
}
