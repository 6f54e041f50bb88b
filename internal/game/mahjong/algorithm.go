package mahjong

import (
	"fmt"
	"strings"

	"github.com/fbriere/rmahjong/internal/errutil"
	"github.com/pkg/errors"
)

// Shape of a complete hand.
type Shape int

const (
	Standard Shape = iota
	SevenPairs
	ThirteenOrphans
)

func (s Shape) String() string {
	switch s {
	case SevenPairs:
		return "SevenPairs"
	case ThirteenOrphans:
		return "ThirteenOrphans"
	}
	return "Standard"
}

func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Decomposition is one way to read a complete hand.
type Decomposition struct {
	Shape Shape `json:"shape"`
	// Concealed groups first, the Exposed trailing groups are the declared
	// melds in declaration order.
	Groups  []Meld `json:"groups,omitempty"`
	Exposed int    `json:"exposed"`
	// Tiles holds the fourteen tiles of a thirteen orphans hand.
	Tiles Tiles `json:"tiles,omitempty"`
	// Win is the index of the group completed by WinTile, -1 while the
	// decomposition is not yet interpreted.
	Win     int  `json:"win"`
	WinTile Tile `json:"win_tile"`
}

func (d Decomposition) TileCount() int {
	if d.Shape == ThirteenOrphans {
		return len(d.Tiles)
	}
	n := 0
	for _, g := range d.Groups {
		n += g.Size()
	}
	return n
}

// AllTiles returns every physical tile, quads counting four.
func (d Decomposition) AllTiles() Tiles {
	if d.Shape == ThirteenOrphans {
		return d.Tiles.Clone()
	}
	var tiles Tiles
	for _, g := range d.Groups {
		tiles = append(tiles, g.Tiles()...)
	}
	return tiles
}

// IsOpen reports whether any declared meld was claimed from a discard.
func (d Decomposition) IsOpen() bool {
	for _, g := range d.exposed() {
		if g.Open {
			return true
		}
	}
	return false
}

// Pair returns the pair of a standard hand.
func (d Decomposition) Pair() (Meld, bool) {
	if d.Shape != Standard {
		return Meld{}, false
	}
	for _, g := range d.Groups {
		if g.Kind == Pair {
			return g, true
		}
	}
	return Meld{}, false
}

func (d Decomposition) concealed() []Meld {
	return d.Groups[:len(d.Groups)-d.Exposed]
}

func (d Decomposition) exposed() []Meld {
	return d.Groups[len(d.Groups)-d.Exposed:]
}

// winGroup returns the group completed by the winning tile.
func (d Decomposition) winGroup() (Meld, bool) {
	if d.Win < 0 || d.Win >= len(d.Groups) {
		return Meld{}, false
	}
	return d.Groups[d.Win], true
}

// key identifies a decomposition regardless of concealed group order.
func (d Decomposition) key() string {
	if d.Shape == ThirteenOrphans {
		return d.Shape.String()
	}
	stats := map[Meld]int{}
	for _, g := range d.concealed() {
		stats[g]++
	}
	var parts []string
	for _, kind := range []Kind{Pair, Sequence, Triplet, Quad} {
		for t := C1; t <= DW; t++ {
			m := Meld{Kind: kind, Tile: t}
			if n := stats[m]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s%d*%d", kind, t, n))
			}
		}
	}
	return d.Shape.String() + ":" + strings.Join(parts, ",")
}

// interpretations expands d into one decomposition per concealed group
// that the winning tile could have completed. Identical groups yield a
// single interpretation.
func (d Decomposition) interpretations(win Tile) []Decomposition {
	if d.Shape == ThirteenOrphans {
		d.Win = -1
		d.WinTile = win
		return []Decomposition{d}
	}

	var result []Decomposition
	seen := map[Meld]bool{}
	for i, g := range d.concealed() {
		if !g.Contains(win) || seen[g] {
			continue
		}
		seen[g] = true
		c := d
		c.Win = i
		c.WinTile = win
		result = append(result, c)
	}
	return result
}

func (d Decomposition) String() string {
	if d.Shape == ThirteenOrphans {
		return fmt.Sprintf("%s(%s)", d.Shape, d.Tiles)
	}
	parts := make([]string, len(d.Groups))
	for i, g := range d.Groups {
		parts[i] = g.String()
	}
	return fmt.Sprintf("%s[%s] win=%d(%s)", d.Shape, strings.Join(parts, " "), d.Win, d.WinTile)
}

// checkShape validates the hand and returns the number of tiles it holds
// in the 14 tile count.
func checkShape(concealed Tiles, melds []Meld) (int, error) {
	if err := concealed.Validate(); err != nil {
		return 0, err
	}
	for _, m := range melds {
		if m.Kind == Pair {
			return 0, errors.Wrapf(errutil.ErrIllegalMeld, "exposed %s", m)
		}
		if err := m.Validate(); err != nil {
			return 0, err
		}
	}
	n := 3*len(melds) + len(concealed)
	if n != 13 && n != 14 {
		return 0, errors.Wrapf(errutil.ErrTileCount, "concealed=%d, melds=%d", len(concealed), len(melds))
	}
	return n, nil
}

// Decompose returns every distinct reading of a complete 14 tile hand,
// standard shapes first. An empty result means the hand is not complete.
//
// Concealed tiles are never grouped into quads: four identical concealed
// tiles cannot be read as a quad plus the remaining groups, quads only
// come from declared melds.
func Decompose(concealed Tiles, melds []Meld) ([]Decomposition, error) {
	n, err := checkShape(concealed, melds)
	if err != nil {
		return nil, err
	}
	if n != 14 {
		return nil, errors.Wrapf(errutil.ErrTileCount, "%d tiles, a complete hand needs 14", n)
	}

	return decompose(concealed, melds), nil
}

// decompose assumes a validated 14 tile hand.
func decompose(concealed Tiles, melds []Meld) []Decomposition {
	var (
		result []Decomposition
		seen   = map[string]bool{}
	)

	add := func(d Decomposition) {
		k := d.key()
		if seen[k] {
			return
		}
		seen[k] = true
		result = append(result, d)
	}

	stats := NewStats(concealed)
	var groups []Meld
	var walk func(pairs int)
	walk = func(pairs int) {
		t := stats.first()
		if t == IllegalTile {
			if pairs != 1 {
				return
			}
			all := make([]Meld, 0, len(groups)+len(melds))
			all = append(all, groups...)
			all = append(all, melds...)
			add(Decomposition{Shape: Standard, Groups: all, Exposed: len(melds), Win: -1, WinTile: IllegalTile})
			return
		}

		if pairs == 0 && stats[t] >= 2 {
			stats[t] -= 2
			groups = append(groups, Meld{Kind: Pair, Tile: t})
			walk(pairs + 1)
			groups = groups[:len(groups)-1]
			stats[t] += 2
		}

		if stats[t] >= 3 {
			stats[t] -= 3
			groups = append(groups, Meld{Kind: Triplet, Tile: t})
			walk(pairs)
			groups = groups[:len(groups)-1]
			stats[t] += 3
		}

		if r := t.Rank(); r >= 1 && r <= 7 && stats[t+1] > 0 && stats[t+2] > 0 {
			stats[t]--
			stats[t+1]--
			stats[t+2]--
			groups = append(groups, Meld{Kind: Sequence, Tile: t})
			walk(pairs)
			groups = groups[:len(groups)-1]
			stats[t]++
			stats[t+1]++
			stats[t+2]++
		}
	}
	walk(0)

	if len(melds) > 0 {
		return result
	}

	if d, ok := sevenPairs(stats); ok {
		add(d)
	}
	if d, ok := thirteenOrphans(concealed, stats); ok {
		add(d)
	}
	return result
}

func sevenPairs(stats *Stats) (Decomposition, bool) {
	var groups []Meld
	for i, count := range stats {
		switch count {
		case 0:
		case 2:
			groups = append(groups, Meld{Kind: Pair, Tile: Tile(i)})
		default:
			return Decomposition{}, false
		}
	}
	if len(groups) != 7 {
		return Decomposition{}, false
	}
	return Decomposition{Shape: SevenPairs, Groups: groups, Win: -1, WinTile: IllegalTile}, true
}

func thirteenOrphans(concealed Tiles, stats *Stats) (Decomposition, bool) {
	pairs := 0
	for _, t := range orphans {
		switch stats[t] {
		case 1:
		case 2:
			pairs++
		default:
			return Decomposition{}, false
		}
	}
	if pairs != 1 || stats.total() != 14 {
		return Decomposition{}, false
	}
	return Decomposition{Shape: ThirteenOrphans, Tiles: concealed.Clone(), Win: -1, WinTile: IllegalTile}, true
}
