package structure

import (
	"fmt"
	"io"
)

// Version is the only structure file version understood by Decode.
const Version = 10279

// MaxDimension is the exclusive upper bound for width and height.
const MaxDimension = 0xff

const numFlagBytes = 4

// Flag bits of the tile header bytes.
const (
	flagMore = 0x01 // another flag byte follows

	// flags[0]
	flagBlock      = 0x02
	flagWall       = 0x04
	flagLiquidMask = 0x18
	flagWater      = 0x08
	flagLava       = 0x10
	flagHoney      = 0x18
	flagBlockWide  = 0x20
	flagRunByte    = 0x40
	flagRunWord    = 0x80

	// flags[1]
	flagWireRed   = 0x02
	flagWireBlue  = 0x04
	flagWireGreen = 0x08
	slopeShift    = 4
	slopeMask     = 0x07

	// flags[2]
	flagActuator   = 0x02
	flagActuated   = 0x04
	flagBlockPaint = 0x08
	flagWallPaint  = 0x10
	flagWireYellow = 0x20
	flagWallHigh   = 0x40
	flagShimmer    = 0x80

	// flags[3]
	flagEchoBlock       = 0x02
	flagEchoWall        = 0x04
	flagIlluminantBlock = 0x08
	flagIlluminantWall  = 0x10
)

// Decode reads a complete structure file.
func Decode(r io.Reader) (*Structure, error) {
	s := NewStream(r)

	name, err := s.ReadString("name")
	if err != nil {
		return nil, err
	}

	start := s.Offset()
	version, err := s.ReadUint32("version")
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, &DecodeError{Offset: start, Field: "version", Err: ErrUnsupportedVersion,
			Detail: fmt.Sprintf("got %d, want %d", version, Version)}
	}

	bits, err := s.ReadBitVec("framed tiles")
	if err != nil {
		return nil, err
	}
	framed := NewFramedSet(bits)

	start = s.Offset()
	width, err := s.ReadUint32("width")
	if err != nil {
		return nil, err
	}
	height, err := s.ReadUint32("height")
	if err != nil {
		return nil, err
	}
	if width >= MaxDimension || height >= MaxDimension {
		return nil, &DecodeError{Offset: start, Field: "dimensions", Err: ErrOversizedStructure,
			Detail: fmt.Sprintf("%dx%d", width, height)}
	}

	grid, err := DecodeTiles(s, framed, int(width), int(height))
	if err != nil {
		return nil, err
	}
	return &Structure{Name: name, Framed: framed, Grid: grid}, nil
}

// DecodeTiles reads width columns of height tile records.
// A run count repeats the previous tile down the same column only.
func DecodeTiles(s *Stream, framed *FramedSet, width int, height int) (*Grid, error) {
	if width < 0 || height < 0 || width >= MaxDimension || height >= MaxDimension {
		return nil, &DecodeError{Offset: s.Offset(), Field: "dimensions", Err: ErrOversizedStructure,
			Detail: fmt.Sprintf("%dx%d", width, height)}
	}
	grid := NewGrid(width, height)
	for x := 0; x < width; x++ {
		rle := 0
		for y := 0; y < height; y++ {
			if rle > 0 {
				grid.Set(x, y, grid.At(x, y-1))
				rle--
				continue
			}
			tile, run, err := decodeTile(s, framed)
			if err != nil {
				return nil, err
			}
			grid.Set(x, y, tile)
			rle = run
		}
	}
	return grid, nil
}

// decodeTile reads one tile record and its trailing run count.
func decodeTile(s *Stream, framed *FramedSet) (Tile, int, error) {
	var flags [numFlagBytes]byte
	for i := range flags {
		b, err := s.ReadUint8("tile flags")
		if err != nil {
			return Tile{}, 0, err
		}
		flags[i] = b
		if b&flagMore == 0 {
			break
		}
	}

	tile := EmptyTile()
	var err error

	if flags[0]&flagBlock != 0 {
		idStart := s.Offset()
		if flags[0]&flagBlockWide == 0 {
			var id uint8
			id, err = s.ReadUint8("block id")
			tile.BlockID = int(id)
		} else {
			var id uint16
			id, err = s.ReadUint16("block id")
			tile.BlockID = int(id)
		}
		if err != nil {
			return Tile{}, 0, err
		}
		if tile.BlockID >= framed.Len() {
			return Tile{}, 0, &DecodeError{Offset: idStart, Field: "block id", Err: ErrCorruptStructure,
				Detail: fmt.Sprintf("id %d outside framed set of %d", tile.BlockID, framed.Len())}
		}
		if framed.Has(tile.BlockID) {
			if tile.FrameX, err = s.ReadUint16("frame x"); err != nil {
				return Tile{}, 0, err
			}
			if tile.FrameY, err = s.ReadUint16("frame y"); err != nil {
				return Tile{}, 0, err
			}
		}
		if flags[2]&flagBlockPaint != 0 {
			if tile.BlockPaint, err = s.ReadUint8("block paint"); err != nil {
				return Tile{}, 0, err
			}
		}
	}
	tile.Slope = (flags[1] >> slopeShift) & slopeMask

	if flags[0]&flagWall != 0 {
		wall, err := s.ReadUint8("wall id")
		if err != nil {
			return Tile{}, 0, err
		}
		tile.WallID = uint16(wall)
		if flags[2]&flagWallPaint != 0 {
			if tile.WallPaint, err = s.ReadUint8("wall paint"); err != nil {
				return Tile{}, 0, err
			}
		}
	}

	switch flags[0] & flagLiquidMask {
	case flagWater:
		tile.Liquid = LiquidWater
		if flags[2]&flagShimmer != 0 {
			tile.Liquid = LiquidShimmer
		}
	case flagLava:
		tile.Liquid = LiquidLava
	case flagHoney:
		tile.Liquid = LiquidHoney
	}
	if tile.Liquid != LiquidNone {
		// Amount is not kept.
		if _, err := s.ReadUint8("liquid amount"); err != nil {
			return Tile{}, 0, err
		}
	}

	if flags[2]&flagWallHigh != 0 {
		high, err := s.ReadUint8("wall id high")
		if err != nil {
			return Tile{}, 0, err
		}
		tile.WallID |= uint16(high) << 8
	}

	tile.WireRed = flags[1]&flagWireRed != 0
	tile.WireBlue = flags[1]&flagWireBlue != 0
	tile.WireGreen = flags[1]&flagWireGreen != 0
	tile.WireYellow = flags[2]&flagWireYellow != 0
	tile.Actuator = flags[2]&flagActuator != 0
	tile.Actuated = flags[2]&flagActuated != 0
	tile.EchoCoatBlock = flags[3]&flagEchoBlock != 0
	tile.EchoCoatWall = flags[3]&flagEchoWall != 0
	tile.IlluminantBlock = flags[3]&flagIlluminantBlock != 0
	tile.IlluminantWall = flags[3]&flagIlluminantWall != 0

	run := 0
	if flags[0]&flagRunByte != 0 {
		b, err := s.ReadUint8("run length")
		if err != nil {
			return Tile{}, 0, err
		}
		run = int(b)
	} else if flags[0]&flagRunWord != 0 {
		w, err := s.ReadUint16("run length")
		if err != nil {
			return Tile{}, 0, err
		}
		run = int(w)
	}
	return tile, run, nil
}
