package tilepack

import (
	"github.com/pkg/errors"

	"github.com/alpha0010/terra-awg/structure"
)

var (
	ErrShortPack = errors.New("packed data ends inside a record")
	ErrBadPack   = errors.New("packed data is inconsistent")
)

// recordLen is the number of words in the record starting at head, or 0 when
// the record runs past the end of words.
func recordLen(words []uint16, head int, framed *structure.FramedSet) int {
	header := words[head]
	n := 1
	if header&HasBlock != 0 {
		if head+n >= len(words) {
			return 0
		}
		if framed.Has(int(words[head+n])) {
			n += 2
		}
		n++
	}
	if header&HasWall != 0 {
		n++
	}
	if header&HasPaint != 0 {
		n++
	}
	if header&HasFlags != 0 {
		n++
	}
	if head+n > len(words) {
		return 0
	}
	return n
}

// DecodeRecord reads the record at the start of words. It returns the tile,
// how many extra times it repeats and the number of words consumed.
func DecodeRecord(words []uint16, framed *structure.FramedSet) (structure.Tile, int, int, error) {
	if len(words) == 0 {
		return structure.Tile{}, 0, 0, errors.WithStack(ErrShortPack)
	}
	n := recordLen(words, 0, framed)
	if n == 0 {
		return structure.Tile{}, 0, 0, errors.WithStack(ErrShortPack)
	}
	header := words[0]
	tile := structure.EmptyTile()
	i := 1
	if header&HasBlock != 0 {
		tile.BlockID = int(words[i])
		i++
		if framed.Has(tile.BlockID) {
			tile.FrameX = words[i]
			tile.FrameY = words[i+1]
			i += 2
		}
	}
	if header&HasWall != 0 {
		tile.WallID = words[i]
		i++
	}
	if header&HasPaint != 0 {
		tile.BlockPaint = uint8(words[i] & 0x00ff)
		tile.WallPaint = uint8(words[i] >> 8)
		i++
	}
	if header&HasFlags != 0 {
		flags := words[i]
		liquid := structure.Liquid(flags & liquidMask)
		if liquid > structure.LiquidShimmer {
			return structure.Tile{}, 0, 0, errors.Wrapf(ErrBadPack, "liquid %d", liquid)
		}
		tile.Liquid = liquid
		tile.Slope = uint8((flags >> slopeShift) & slopeMask)
		tile.WireRed = flags&(1<<bitWireRed) != 0
		tile.WireBlue = flags&(1<<bitWireBlue) != 0
		tile.WireGreen = flags&(1<<bitWireGreen) != 0
		tile.WireYellow = flags&(1<<bitWireYellow) != 0
		tile.Actuator = flags&(1<<bitActuator) != 0
		tile.Actuated = flags&(1<<bitActuated) != 0
		tile.EchoCoatBlock = flags&(1<<bitEchoCoatBlock) != 0
		tile.EchoCoatWall = flags&(1<<bitEchoCoatWall) != 0
		tile.IlluminantBlock = flags&(1<<bitIlluminantBlock) != 0
		tile.IlluminantWall = flags&(1<<bitIlluminantWall) != 0
		i++
	}
	return tile, int(header & CountMask), n, nil
}

// Unpack rebuilds the grid from the output of Pack.
func Unpack(words []uint16, framed *structure.FramedSet) (*structure.Grid, error) {
	if len(words) == 0 {
		return nil, errors.Wrap(ErrShortPack, "missing header word")
	}
	g := structure.NewGrid(int(words[0]>>8), int(words[0]&0xff))
	total := g.Width * g.Height
	head := 1
	for i := 0; i < total; {
		tile, repeat, n, err := DecodeRecord(words[head:], framed)
		if err != nil {
			return nil, errors.Wrapf(err, "tile %d, word %d", i, head)
		}
		head += n
		if i+repeat >= total {
			return nil, errors.Wrapf(ErrBadPack, "run of %d at tile %d overflows %dx%d grid",
				repeat+1, i, g.Width, g.Height)
		}
		for ; repeat >= 0; repeat-- {
			g.Set(i/g.Height, i%g.Height, tile)
			i++
		}
	}
	if head != len(words) {
		return nil, errors.Wrapf(ErrBadPack, "%d trailing words", len(words)-head)
	}
	return g, nil
}
