package mahjong

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fbriere/rmahjong/internal/errutil"
	"github.com/pkg/errors"
)

// Stats counts tiles per kind.
type Stats [TileKinds]int

func NewStats(tiles ...Tiles) *Stats {
	ms := &Stats{}
	ms.From(tiles...)
	return ms
}

func (ms *Stats) String() string {
	buf := &bytes.Buffer{}

	for i, count := range ms {
		if count == 0 {
			continue
		}
		fmt.Fprintf(buf, "%s:%d ", Tile(i), count)
	}

	return buf.String()
}

func (ms *Stats) From(tiles ...Tiles) {
	for _, ts := range tiles {
		for _, t := range ts {
			if t.Valid() {
				ms[t]++
			}
		}
	}
}

// first returns the lowest kind still counted.
func (ms *Stats) first() Tile {
	for i, count := range ms {
		if count > 0 {
			return Tile(i)
		}
	}
	return IllegalTile
}

func (ms *Stats) total() int {
	n := 0
	for _, count := range ms {
		n += count
	}
	return n
}

// WinMethod tells how the winning tile reached the hand.
type WinMethod int

const (
	Ron   WinMethod = iota // win by discard
	Tsumo                  // self-draw
)

func ParseWinMethod(s string) (WinMethod, error) {
	switch strings.ToLower(s) {
	case "ron":
		return Ron, nil
	case "tsumo":
		return Tsumo, nil
	}
	return Ron, errors.Wrapf(errutil.ErrIllegalParameter, "win method=%q", s)
}

func (m WinMethod) String() string {
	if m == Tsumo {
		return "Tsumo"
	}
	return "Ron"
}

func (m WinMethod) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *WinMethod) UnmarshalText(text []byte) error {
	v, err := ParseWinMethod(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Context is the table state a hand is evaluated against. IllegalTile as
// a wind disables that yakuhai role.
type Context struct {
	RoundWind Tile
	SeatWind  Tile
	Method    WinMethod
	FromWall  bool // winning tile was drawn, the completed group stays concealed
}

func NewContext(roundWind, seatWind Tile, method WinMethod) Context {
	return Context{
		RoundWind: roundWind,
		SeatWind:  seatWind,
		Method:    method,
		FromWall:  method == Tsumo,
	}
}

func (c Context) IsDealer() bool {
	return c.SeatWind == WE
}

// yakuhai returns how many value roles t holds: dragon, round wind and
// seat wind each count once.
func (c Context) yakuhai(t Tile) int {
	n := 0
	if t.IsDragon() {
		n++
	}
	if t == c.RoundWind {
		n++
	}
	if t == c.SeatWind {
		n++
	}
	return n
}

func (c Context) String() string {
	return fmt.Sprintf("RoundWind=%s, SeatWind=%s, Method=%s, FromWall=%t",
		c.RoundWind, c.SeatWind, c.Method, c.FromWall)
}
