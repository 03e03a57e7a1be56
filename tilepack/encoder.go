// Package tilepack converts decoded structures into the packed word format
// embedded as literal data, and back.
package tilepack

import "github.com/alpha0010/terra-awg/structure"

/*
	Record layout (one or more 16-bit words per tile)

	word 0       | fwpb | cccc cccc cccc |
	             b = block group follows, w = wall, p = paint, f = flags
	             c = repeat count, filled in by Pack
	block group  blockID, then frameX, frameY if the block is framed
	wall         wallID
	paint        blockPaint | wallPaint << 8
	flags        liquid (0-2), slope (3-5), wires/actuators/coatings (6-15)
*/

const (
	HasBlock = 0x1000
	HasWall  = 0x2000
	HasPaint = 0x4000
	HasFlags = 0x8000

	PresenceMask = 0xf000
	CountMask    = 0x0fff
)

const (
	liquidMask = 0x0007
	slopeShift = 3
	slopeMask  = 0x0007
)

// Bit positions of the tile booleans in the flags word.
const (
	bitWireRed = 6 + iota
	bitWireBlue
	bitWireGreen
	bitWireYellow
	bitActuator
	bitActuated
	bitEchoCoatBlock
	bitEchoCoatWall
	bitIlluminantBlock
	bitIlluminantWall
)

// MaxRecordWords is the size of the largest record EncodeTile produces.
const MaxRecordWords = 6

func flagBit(set bool, bit uint) uint16 {
	if set {
		return 1 << bit
	}
	return 0
}

// FlagsWord packs liquid, slope and the boolean fields of t.
func FlagsWord(t *structure.Tile) uint16 {
	flags := uint16(t.Liquid) & liquidMask
	flags |= (uint16(t.Slope) & slopeMask) << slopeShift
	flags |= flagBit(t.WireRed, bitWireRed)
	flags |= flagBit(t.WireBlue, bitWireBlue)
	flags |= flagBit(t.WireGreen, bitWireGreen)
	flags |= flagBit(t.WireYellow, bitWireYellow)
	flags |= flagBit(t.Actuator, bitActuator)
	flags |= flagBit(t.Actuated, bitActuated)
	flags |= flagBit(t.EchoCoatBlock, bitEchoCoatBlock)
	flags |= flagBit(t.EchoCoatWall, bitEchoCoatWall)
	flags |= flagBit(t.IlluminantBlock, bitIlluminantBlock)
	flags |= flagBit(t.IlluminantWall, bitIlluminantWall)
	return flags
}

// EncodeTile returns the record for a single tile. The count bits of word 0
// are always clear.
func EncodeTile(t structure.Tile, framed *structure.FramedSet) []uint16 {
	return AppendTile(make([]uint16, 0, MaxRecordWords), t, framed)
}

// AppendTile appends the record for t to output.
func AppendTile(output []uint16, t structure.Tile, framed *structure.FramedSet) []uint16 {
	head := len(output)
	output = append(output, 0)
	if t.HasBlock() {
		output[head] |= HasBlock
		output = append(output, uint16(t.BlockID))
		if framed.Has(t.BlockID) {
			output = append(output, t.FrameX, t.FrameY)
		}
	}
	if t.WallID != 0 {
		output[head] |= HasWall
		output = append(output, t.WallID)
	}
	if t.BlockPaint != 0 || t.WallPaint != 0 {
		output[head] |= HasPaint
		output = append(output, uint16(t.BlockPaint)|uint16(t.WallPaint)<<8)
	}
	if flags := FlagsWord(&t); flags != 0 {
		output[head] |= HasFlags
		output = append(output, flags)
	}
	return output
}
