package tilepack

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/alpha0010/terra-awg/structure"
)

// ErrGridTooLarge is returned for grids whose size does not fit the header word.
var ErrGridTooLarge = errors.New("grid too large for packed header")

// HeaderWord holds the grid dimensions, width in the high byte.
// Both must be below structure.MaxDimension.
func HeaderWord(width int, height int) uint16 {
	return uint16(width)<<8 | uint16(height)
}

// Pack encodes every tile of g in column-major order. Consecutive identical
// records are merged by counting the repeats in the first word of the record.
func Pack(g *structure.Grid, framed *structure.FramedSet) ([]uint16, error) {
	if g.Width >= structure.MaxDimension || g.Height >= structure.MaxDimension {
		return nil, errors.Wrapf(ErrGridTooLarge, "%dx%d", g.Width, g.Height)
	}
	output := []uint16{HeaderWord(g.Width, g.Height)}
	var prev []uint16
	prevIndex := -1
	cur := make([]uint16, 0, MaxRecordWords)
	for _, t := range g.Tiles() {
		cur = AppendTile(cur[:0], t, framed)
		// A full counter starts a fresh copy of the record.
		if prevIndex >= 0 && output[prevIndex]&CountMask < CountMask && slices.Equal(prev, cur) {
			output[prevIndex]++
			continue
		}
		prevIndex = len(output)
		output = append(output, cur...)
		prev = slices.Clone(cur)
	}
	return output, nil
}

// Stats describes the result of packing a grid.
type Stats struct {
	Tiles   int   // tiles in the grid
	Records int   // records written
	RawSize int   // words needed without merging, including the header
	Size    int   // words written, including the header
	Runs    []int // tiles covered by each record, in output order
}

// PackWithStats is Pack, also returning how well the grid compacted.
func PackWithStats(g *structure.Grid, framed *structure.FramedSet) ([]uint16, Stats, error) {
	output, err := Pack(g, framed)
	if err != nil {
		return nil, Stats{}, err
	}
	stats := Stats{Tiles: len(g.Tiles()), RawSize: 1, Size: len(output)}
	for _, t := range g.Tiles() {
		stats.RawSize += len(EncodeTile(t, framed))
	}
	for head := 1; head < len(output); {
		n := recordLen(output, head, framed)
		stats.Records++
		stats.Runs = append(stats.Runs, int(output[head]&CountMask)+1)
		head += n
	}
	return output, stats, nil
}
