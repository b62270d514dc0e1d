package replicon

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// GenerateIndex scans a FASTA file and writes an index in this package's
// own format (§6): a header line giving fastaPath, then one
// "<sequence-id>;<length>;<rank>" line per record in file order. Sequence
// ids are taken from the portion of a ">" header line before the first
// space, mirroring the convention of the samtools .fai indexer this scan
// loop is adapted from.
func GenerateIndex(out io.Writer, in io.Reader, fastaPath string) error {
	w := bufio.NewWriter(out)
	if _, err := w.WriteString(fastaPath + "\n"); err != nil {
		return errors.Wrap(err, "write index header")
	}

	var (
		r         = bufio.NewReader(in)
		seqName   string
		length    int
		rank      int
		sawRecord bool
		eof       bool
	)
	flush := func() error {
		if seqName == "" {
			return nil
		}
		rank++
		_, err := w.WriteString(seqName + ";" + strconv.Itoa(length) + ";" + strconv.Itoa(rank) + "\n")
		return err
	}

	for !eof {
		fullLine, readErr := r.ReadBytes('\n')
		if readErr == io.EOF {
			eof = true
		} else if readErr != nil {
			return errors.Wrap(readErr, "read FASTA")
		}
		line := bytes.TrimRight(fullLine, "\r\n")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return errors.Wrap(err, "write index record")
			}
			seqName = strings.Split(string(line[1:]), " ")[0]
			length = 0
			sawRecord = true
			continue
		}
		length += len(line)
	}
	if err := flush(); err != nil {
		return errors.Wrap(err, "write index record")
	}
	if !sawRecord {
		return errors.New("empty FASTA file")
	}
	return w.Flush()
}
