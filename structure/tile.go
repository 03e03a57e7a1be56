package structure

// Liquid held by a tile. The ordinal values are part of the packed format.
type Liquid uint8

const (
	LiquidNone Liquid = iota
	LiquidWater
	LiquidLava
	LiquidHoney
	LiquidShimmer
)

var liquidNames = [...]string{"none", "water", "lava", "honey", "shimmer"}

func (l Liquid) String() string {
	if int(l) < len(liquidNames) {
		return liquidNames[l]
	}
	return "invalid"
}

// NoBlock is the BlockID of a tile without a block.
const NoBlock = -1

// Tile is one cell of a structure.
// Zero values are the defaults for everything except BlockID.
type Tile struct {
	BlockID    int    // NoBlock, or 0-65535
	FrameX     uint16 // only set when the block is framed
	FrameY     uint16
	WallID     uint16 // 0 = no wall
	BlockPaint uint8
	WallPaint  uint8
	Slope      uint8 // 3 bits
	Liquid     Liquid

	WireRed         bool
	WireBlue        bool
	WireGreen       bool
	WireYellow      bool
	Actuator        bool
	Actuated        bool
	EchoCoatBlock   bool
	EchoCoatWall    bool
	IlluminantBlock bool
	IlluminantWall  bool
}

// EmptyTile returns a tile with no block, wall or liquid.
func EmptyTile() Tile {
	return Tile{BlockID: NoBlock}
}

func (t *Tile) HasBlock() bool {
	return t.BlockID != NoBlock
}

// FramedSet marks the block IDs which always carry frame coordinates.
type FramedSet struct {
	bits []bool
}

// NewFramedSet copies the given bit vector.
func NewFramedSet(bits []bool) *FramedSet {
	f := FramedSet{bits: make([]bool, len(bits))}
	copy(f.bits, bits)
	return &f
}

// Len is the number of block IDs covered by the set.
func (f *FramedSet) Len() int {
	if f == nil {
		return 0
	}
	return len(f.bits)
}

// Has reports whether blockID is framed. IDs outside the set are not framed.
func (f *FramedSet) Has(blockID int) bool {
	if f == nil || blockID < 0 || blockID >= len(f.bits) {
		return false
	}
	return f.bits[blockID]
}

// Grid is a width x height block of tiles, stored column by column.
type Grid struct {
	Width  int
	Height int
	tiles  []Tile
}

func NewGrid(width int, height int) *Grid {
	g := Grid{
		Width:  width,
		Height: height,
		tiles:  make([]Tile, width*height),
	}
	for i := range g.tiles {
		g.tiles[i] = EmptyTile()
	}
	return &g
}

func (g *Grid) At(x int, y int) Tile {
	return g.tiles[x*g.Height+y]
}

func (g *Grid) Set(x int, y int, t Tile) {
	g.tiles[x*g.Height+y] = t
}

// Tiles returns all tiles in column-major order. The slice must not be modified.
func (g *Grid) Tiles() []Tile {
	return g.tiles
}

// Structure is a fully decoded structure file.
type Structure struct {
	Name   string
	Framed *FramedSet
	Grid   *Grid
}
