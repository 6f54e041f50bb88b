package mahjong

import (
	"sort"
	"strings"

	"github.com/fbriere/rmahjong/internal/errutil"
	"github.com/pkg/errors"
)

// Tile is the catalog index of one of the 34 tile kinds.
type Tile int

const (
	C1 Tile = iota // characters
	C2
	C3
	C4
	C5
	C6
	C7
	C8
	C9
	B1 // bamboo
	B2
	B3
	B4
	B5
	B6
	B7
	B8
	B9
	P1 // pins
	P2
	P3
	P4
	P5
	P6
	P7
	P8
	P9
	WE // winds
	WS
	WW
	WN
	DR // dragons
	DG
	DW
)

const (
	MaxTileIndex = int(DW)
	TileKinds    = MaxTileIndex + 1

	IllegalTile Tile = -1
)

type Suit int

const (
	Characters Suit = iota
	Bamboo
	Pins
	Winds
	Dragons
)

var tileNames = [TileKinds]string{
	"C1", "C2", "C3", "C4", "C5", "C6", "C7", "C8", "C9",
	"B1", "B2", "B3", "B4", "B5", "B6", "B7", "B8", "B9",
	"P1", "P2", "P3", "P4", "P5", "P6", "P7", "P8", "P9",
	"WE", "WS", "WW", "WN",
	"DR", "DG", "DW",
}

var tileByName = func() map[string]Tile {
	m := make(map[string]Tile, TileKinds)
	for i, name := range tileNames {
		m[name] = Tile(i)
	}
	return m
}()

// orphans are the thirteen terminal and honor kinds.
var orphans = Tiles{C1, C9, B1, B9, P1, P9, WE, WS, WW, WN, DR, DG, DW}

// green tiles allowed in ryuuiisou
var greens = Tiles{B2, B3, B4, B6, B8, DG}

// ParseTile reads a two letter tile name such as "C1", "WE" or "DR".
func ParseTile(name string) (Tile, error) {
	t, ok := tileByName[name]
	if !ok {
		return IllegalTile, errors.Wrapf(errutil.ErrUnknownTile, "name=%q", name)
	}
	return t, nil
}

// Catalog returns every tile kind once, in catalog order.
func Catalog() Tiles {
	tiles := make(Tiles, TileKinds)
	for i := range tiles {
		tiles[i] = Tile(i)
	}
	return tiles
}

func (t Tile) Valid() bool {
	return t >= C1 && t <= DW
}

func (t Tile) Index() int {
	return int(t)
}

func (t Tile) Suit() Suit {
	switch {
	case t < B1:
		return Characters
	case t < P1:
		return Bamboo
	case t < WE:
		return Pins
	case t < DR:
		return Winds
	default:
		return Dragons
	}
}

// Rank returns 1-9 for suited tiles and 0 for honors.
func (t Tile) Rank() int {
	if !t.Valid() || t.IsHonor() {
		return 0
	}
	return int(t)%9 + 1
}

func (t Tile) IsHonor() bool {
	return t >= WE && t <= DW
}

func (t Tile) IsWind() bool {
	return t >= WE && t <= WN
}

func (t Tile) IsDragon() bool {
	return t >= DR && t <= DW
}

func (t Tile) IsTerminal() bool {
	r := t.Rank()
	return r == 1 || r == 9
}

func (t Tile) IsTerminalOrHonor() bool {
	return t.IsTerminal() || t.IsHonor()
}

// Successor returns the next rank of the same suit. It fails for honors
// and rank 9, sequences never wrap.
func (t Tile) Successor() (Tile, bool) {
	r := t.Rank()
	if r == 0 || r == 9 {
		return IllegalTile, false
	}
	return t + 1, true
}

func (t Tile) String() string {
	if !t.Valid() {
		return "XX"
	}
	return tileNames[t]
}

func (t Tile) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, errors.Wrapf(errutil.ErrUnknownTile, "index=%d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tile) UnmarshalText(text []byte) error {
	v, err := ParseTile(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Tiles is a multiset of tiles, order matters only for the winning tile
// which is always the last one.
type Tiles []Tile

// ParseTiles reads space separated tile names.
func ParseTiles(s string) (Tiles, error) {
	fields := strings.Fields(s)
	tiles := make(Tiles, 0, len(fields))
	for _, f := range fields {
		t, err := ParseTile(f)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

func (ts Tiles) Clone() Tiles {
	c := make(Tiles, len(ts))
	copy(c, ts)
	return c
}

func (ts Tiles) Sort() {
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
}

func (ts Tiles) Count(t Tile) int {
	n := 0
	for _, x := range ts {
		if x == t {
			n++
		}
	}
	return n
}

func (ts Tiles) Contains(t Tile) bool {
	return ts.Count(t) > 0
}

// Remove returns a copy without the first occurrence of t.
func (ts Tiles) Remove(t Tile) (Tiles, bool) {
	for i, x := range ts {
		if x == t {
			c := make(Tiles, 0, len(ts)-1)
			c = append(c, ts[:i]...)
			return append(c, ts[i+1:]...), true
		}
	}
	return ts.Clone(), false
}

// Last returns the winning tile of a complete hand.
func (ts Tiles) Last() Tile {
	if len(ts) == 0 {
		return IllegalTile
	}
	return ts[len(ts)-1]
}

func (ts Tiles) Validate() error {
	for _, t := range ts {
		if !t.Valid() {
			return errors.Wrapf(errutil.ErrUnknownTile, "index=%d", int(t))
		}
	}
	return nil
}

func (ts Tiles) String() string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return strings.Join(names, " ")
}
