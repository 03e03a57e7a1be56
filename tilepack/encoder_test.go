package tilepack

import (
	"fmt"
	"math/bits"
	"slices"
	"testing"

	"github.com/alpha0010/terra-awg/structure"
)

func framedSet(n int, set ...int) *structure.FramedSet {
	b := make([]bool, n)
	for _, i := range set {
		b[i] = true
	}
	return structure.NewFramedSet(b)
}

func TestEncodeTile(t *testing.T) {
	framed := framedSet(20, 10)
	var tests = []struct {
		name string
		tile structure.Tile
		want []uint16
	}{
		{"empty", structure.EmptyTile(), []uint16{0}},
		{"block", structure.Tile{BlockID: 5}, []uint16{0x1000, 5}},
		{"block zero", structure.Tile{BlockID: 0}, []uint16{0x1000, 0}},
		{"framed", structure.Tile{BlockID: 10, FrameX: 18, FrameY: 54}, []uint16{0x1000, 10, 18, 54}},
		{"wall", structure.Tile{BlockID: structure.NoBlock, WallID: 0x134}, []uint16{0x2000, 0x134}},
		{"paint", structure.Tile{BlockID: 3, BlockPaint: 0x0c, WallPaint: 0x1b, WallID: 4},
			[]uint16{0x7000, 3, 4, 0x1b0c}},
		{"wall paint only", structure.Tile{BlockID: structure.NoBlock, WallPaint: 2},
			[]uint16{0x4000, 0x0200}},
		{"liquid", structure.Tile{BlockID: structure.NoBlock, Liquid: structure.LiquidHoney},
			[]uint16{0x8000, 3}},
		{"slope", structure.Tile{BlockID: 1, Slope: 5}, []uint16{0x9000, 1, 5 << 3}},
		{"everything", structure.Tile{
			BlockID: 10, FrameX: 1, FrameY: 2, WallID: 3, BlockPaint: 4, WallPaint: 5,
			Slope: 1, Liquid: structure.LiquidShimmer,
			WireRed: true, WireBlue: true, WireGreen: true, WireYellow: true,
			Actuator: true, Actuated: true, EchoCoatBlock: true, EchoCoatWall: true,
			IlluminantBlock: true, IlluminantWall: true,
		}, []uint16{0xf000, 10, 1, 2, 3, 0x0504, 0xffcc}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeTile(tt.tile, framed)
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestFlagsWordBits(t *testing.T) {
	var tests = []struct {
		set  func(*structure.Tile)
		want uint16
	}{
		{func(t *structure.Tile) { t.WireRed = true }, 1 << 6},
		{func(t *structure.Tile) { t.WireBlue = true }, 1 << 7},
		{func(t *structure.Tile) { t.WireGreen = true }, 1 << 8},
		{func(t *structure.Tile) { t.WireYellow = true }, 1 << 9},
		{func(t *structure.Tile) { t.Actuator = true }, 1 << 10},
		{func(t *structure.Tile) { t.Actuated = true }, 1 << 11},
		{func(t *structure.Tile) { t.EchoCoatBlock = true }, 1 << 12},
		{func(t *structure.Tile) { t.EchoCoatWall = true }, 1 << 13},
		{func(t *structure.Tile) { t.IlluminantBlock = true }, 1 << 14},
		{func(t *structure.Tile) { t.IlluminantWall = true }, 1 << 15},
		{func(t *structure.Tile) { t.Liquid = structure.LiquidWater }, 1},
		{func(t *structure.Tile) { t.Liquid = structure.LiquidLava }, 2},
		{func(t *structure.Tile) { t.Liquid = structure.LiquidShimmer }, 4},
		{func(t *structure.Tile) { t.Slope = 7 }, 7 << 3},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("bit %d", i), func(t *testing.T) {
			tile := structure.EmptyTile()
			tt.set(&tile)
			if got := FlagsWord(&tile); got != tt.want {
				t.Errorf("got %#04x, want %#04x", got, tt.want)
			}
		})
	}
}

func TestEncodeNormalizesDefaults(t *testing.T) {
	implicit := structure.Tile{BlockID: 5, WallID: 2}
	explicit := structure.Tile{BlockID: 5, WallID: 2, Slope: 0, BlockPaint: 0, WallPaint: 0}
	if a, b := EncodeTile(implicit, nil), EncodeTile(explicit, nil); !slices.Equal(a, b) {
		t.Errorf("got %#x and %#x, want equal", a, b)
	}
}

func TestEncodeIsPure(t *testing.T) {
	framed := framedSet(8, 4)
	tile := structure.Tile{BlockID: 4, FrameX: 36, WallID: 9, Liquid: structure.LiquidLava, WireRed: true}
	first := EncodeTile(tile, framed)
	second := EncodeTile(tile, framed)
	if !slices.Equal(first, second) {
		t.Errorf("got %#x then %#x", first, second)
	}
	first[0] = 0xdead
	if third := EncodeTile(tile, framed); !slices.Equal(third, second) {
		t.Errorf("encoding shares state with a previous result: %#x", third)
	}
}

func TestPresenceBitsMatchWords(t *testing.T) {
	framed := framedSet(16, 3)
	blocks := []int{structure.NoBlock, 0, 3}
	walls := []uint16{0, 7}
	paints := [][2]uint8{{0, 0}, {1, 0}, {0, 9}}
	liquids := []structure.Liquid{structure.LiquidNone, structure.LiquidWater}
	wires := []bool{false, true}
	for _, block := range blocks {
		for _, wall := range walls {
			for _, paint := range paints {
				for _, liquid := range liquids {
					for _, wire := range wires {
						tile := structure.Tile{
							BlockID: block, FrameX: 1, FrameY: 1, WallID: wall,
							BlockPaint: paint[0], WallPaint: paint[1],
							Liquid: liquid, WireYellow: wire,
						}
						checkPresence(t, tile, framed)
					}
				}
			}
		}
	}
}

func checkPresence(t *testing.T, tile structure.Tile, framed *structure.FramedSet) {
	t.Helper()
	words := EncodeTile(tile, framed)
	if words[0]&CountMask != 0 {
		t.Errorf("%+v: count bits set in %#04x", tile, words[0])
	}
	want := 1
	if words[0]&HasBlock != 0 {
		want++
		if framed.Has(tile.BlockID) {
			want += 2
		}
	}
	want += bits.OnesCount16(words[0] & (HasWall | HasPaint | HasFlags))
	if len(words) != want {
		t.Errorf("%+v: %d words for header %#04x, want %d", tile, len(words), words[0], want)
	}
	checks := []struct {
		bit     uint16
		present bool
	}{
		{HasBlock, tile.BlockID != structure.NoBlock},
		{HasWall, tile.WallID != 0},
		{HasPaint, tile.BlockPaint != 0 || tile.WallPaint != 0},
		{HasFlags, FlagsWord(&tile) != 0},
	}
	for _, c := range checks {
		if (words[0]&c.bit != 0) != c.present {
			t.Errorf("%+v: bit %#04x in header %#04x, want present=%v", tile, c.bit, words[0], c.present)
		}
	}
}
