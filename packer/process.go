package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/facette/natsort"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/alpha0010/terra-awg/structure"
	"github.com/alpha0010/terra-awg/tilepack"
)

// Describes processing config for a set of files
type PackConfig struct {
	verbose bool
	verify  bool // unpack the output and compare it with the decoded grid
	jobs    int  // files processed at once
	width   int  // output line width
}

// Everything produced for one input file.
type FileResult struct {
	Path      string
	Structure *structure.Structure
	Words     []uint16
	Stats     tilepack.Stats
	Err       error
}

// Order input files the way they are listed in the output, by natural sort.
func SortPaths(paths []string) []string {
	sorted := slices.Clone(paths)
	slices.SortStableFunc(sorted, func(a, b string) int {
		switch {
		case natsort.Compare(a, b):
			return -1
		case natsort.Compare(b, a):
			return 1
		}
		return 0
	})
	return sorted
}

// Check the packed words reproduce the decoded grid exactly.
func VerifyPacked(st *structure.Structure, words []uint16) error {
	unpacked, err := tilepack.Unpack(words, st.Framed)
	if err != nil {
		return errors.Wrap(err, "unpack")
	}
	if unpacked.Width != st.Grid.Width || unpacked.Height != st.Grid.Height {
		return errors.Errorf("round trip size %dx%d, want %dx%d",
			unpacked.Width, unpacked.Height, st.Grid.Width, st.Grid.Height)
	}
	want := st.Grid.Tiles()
	for i, tile := range unpacked.Tiles() {
		if tile != want[i] {
			x, y := i/st.Grid.Height, i%st.Grid.Height
			return errors.Errorf("round trip tile (%d,%d) is %+v, want %+v", x, y, tile, want[i])
		}
	}
	return nil
}

// Decode, pack and optionally verify a single file.
func PackFile(path string, cfg PackConfig) FileResult {
	res := FileResult{Path: path}
	st, err := LoadStructureFile(path)
	if err != nil {
		res.Err = errors.Wrapf(err, "load %s", path)
		return res
	}
	res.Structure = st
	res.Words, res.Stats, err = tilepack.PackWithStats(st.Grid, st.Framed)
	if err != nil {
		res.Err = errors.Wrapf(err, "pack %s", path)
		return res
	}
	if cfg.verbose {
		fmt.Fprintf(os.Stderr, "%s: %q %dx%d, %d tiles -> %d records, %d words (%.1f%%)\n",
			path, st.Name, st.Grid.Width, st.Grid.Height, res.Stats.Tiles, res.Stats.Records,
			res.Stats.Size, Percent(res.Stats.Size, res.Stats.RawSize))
	}
	if cfg.verify {
		if err := VerifyPacked(st, res.Words); err != nil {
			res.Err = errors.Wrapf(err, "verify %s", path)
			return res
		}
		if cfg.verbose {
			fmt.Fprintf(os.Stderr, "\t%s: verify OK\n", path)
		}
	}
	return res
}

// Process every file, at most cfg.jobs at a time. Results come back in
// output order; a failed file never stops the others.
func PackFiles(paths []string, cfg PackConfig) []FileResult {
	sorted := SortPaths(paths)
	results := make([]FileResult, len(sorted))

	var g errgroup.Group
	if cfg.jobs > 0 {
		g.SetLimit(cfg.jobs)
	}
	for i, path := range sorted {
		i, path := i, path
		g.Go(func() error {
			results[i] = PackFile(path, cfg)
			return nil
		})
	}
	g.Wait()
	return results
}

// Count how many different tile records a grid contains.
func DistinctRecords(st *structure.Structure) int {
	seen := make(map[uint64]struct{})
	buf := make([]byte, 0, 2*tilepack.MaxRecordWords)
	for _, t := range st.Grid.Tiles() {
		buf = buf[:0]
		for _, w := range tilepack.EncodeTile(t, st.Framed) {
			buf = binary.LittleEndian.AppendUint16(buf, w)
		}
		seen[xxhash.Sum64(buf)] = struct{}{}
	}
	return len(seen)
}

func Ratio(num int, denom int) float32 {
	if denom == 0 {
		return 0.0
	}
	return float32(num) / float32(denom)
}

func Percent(num int, denom int) float32 {
	return 100.0 * Ratio(num, denom)
}
