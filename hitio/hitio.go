// Package hitio reads the external profile-hit stream (§6): the ranked
// matches an HMM search already produced, one per line, that the
// detection core consumes as CoreHits. Parsing this stream is ambient
// I/O outside the core itself.
package hitio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/mr-c/macsyfinder/hit"
	"github.com/mr-c/macsyfinder/msferr"
	"github.com/mr-c/macsyfinder/replicon"
)

// ParseHits reads tab-separated hit records: id, gene_name, replicon_name,
// position, sequence_length, score, i_evalue, profile_coverage,
// sequence_coverage, match_begin, match_end. Blank lines and lines
// starting with '#' are skipped. Input may be gzip compressed.
func ParseHits(r io.Reader) ([]*hit.CoreHit, error) {
	in, err := replicon.OpenMaybeGzip(r)
	if err != nil {
		return nil, err
	}

	var hits []*hit.CoreHit
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		h, err := parseLine(line)
		if err != nil {
			return nil, msferr.E(msferr.InputError, msferr.Op("hitio.ParseHits"),
				err, "line "+strconv.Itoa(lineNo))
		}
		hits = append(hits, h)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read hit stream")
	}
	return hits, nil
}

func parseLine(line string) (*hit.CoreHit, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 11 {
		return nil, errors.Errorf("expected 11 tab-separated fields, got %d", len(fields))
	}
	position, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, errors.Wrap(err, "parse position")
	}
	seqLen, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, errors.Wrap(err, "parse sequence_length")
	}
	score, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return nil, errors.Wrap(err, "parse score")
	}
	ievalue, err := strconv.ParseFloat(fields[6], 64)
	if err != nil {
		return nil, errors.Wrap(err, "parse i_evalue")
	}
	profileCov, err := strconv.ParseFloat(fields[7], 64)
	if err != nil {
		return nil, errors.Wrap(err, "parse profile_coverage")
	}
	seqCov, err := strconv.ParseFloat(fields[8], 64)
	if err != nil {
		return nil, errors.Wrap(err, "parse sequence_coverage")
	}
	begin, err := strconv.Atoi(fields[9])
	if err != nil {
		return nil, errors.Wrap(err, "parse match_begin")
	}
	end, err := strconv.Atoi(fields[10])
	if err != nil {
		return nil, errors.Wrap(err, "parse match_end")
	}
	return &hit.CoreHit{
		ID:               fields[0],
		GeneName:         fields[1],
		RepliconName:     fields[2],
		Position:         position,
		SequenceLength:   seqLen,
		Score:            score,
		IEvalue:          ievalue,
		ProfileCoverage:  profileCov,
		SequenceCoverage: seqCov,
		MatchBegin:       begin,
		MatchEnd:         end,
	}, nil
}
