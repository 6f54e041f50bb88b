package mahjong

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fbriere/rmahjong/internal/errutil"
	"github.com/pkg/errors"
)

type Kind int

const (
	Sequence Kind = iota
	Triplet
	Quad
	Pair
)

var kindNames = [...]string{
	Sequence: "Sequence",
	Triplet:  "Triplet",
	Quad:     "Quad",
	Pair:     "Pair",
}

func (k Kind) String() string {
	if k < Sequence || k > Pair {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Meld is one group of a hand. Tile is the seed: the lowest tile of a
// sequence, the repeated tile otherwise.
type Meld struct {
	Kind Kind
	Tile Tile
	Open bool
}

// NewSequence builds a sequence from an explicit successor chain.
func NewSequence(a, b, c Tile, open bool) (Meld, error) {
	if next, ok := a.Successor(); !ok || next != b {
		return Meld{}, errors.Wrapf(errutil.ErrIllegalMeld, "sequence %s %s %s", a, b, c)
	}
	if next, ok := b.Successor(); !ok || next != c {
		return Meld{}, errors.Wrapf(errutil.ErrIllegalMeld, "sequence %s %s %s", a, b, c)
	}
	return Meld{Kind: Sequence, Tile: a, Open: open}, nil
}

// SequenceFrom builds the sequence starting at seed.
func SequenceFrom(seed Tile, open bool) (Meld, error) {
	b, ok := seed.Successor()
	if !ok {
		return Meld{}, errors.Wrapf(errutil.ErrIllegalMeld, "sequence from %s", seed)
	}
	c, ok := b.Successor()
	if !ok {
		return Meld{}, errors.Wrapf(errutil.ErrIllegalMeld, "sequence from %s", seed)
	}
	return NewSequence(seed, b, c, open)
}

func NewTriplet(t Tile, open bool) (Meld, error) {
	if !t.Valid() {
		return Meld{}, errors.Wrapf(errutil.ErrIllegalMeld, "triplet of %s", t)
	}
	return Meld{Kind: Triplet, Tile: t, Open: open}, nil
}

func NewQuad(t Tile, open bool) (Meld, error) {
	if !t.Valid() {
		return Meld{}, errors.Wrapf(errutil.ErrIllegalMeld, "quad of %s", t)
	}
	return Meld{Kind: Quad, Tile: t, Open: open}, nil
}

func NewPair(t Tile) (Meld, error) {
	if !t.Valid() {
		return Meld{}, errors.Wrapf(errutil.ErrIllegalMeld, "pair of %s", t)
	}
	return Meld{Kind: Pair, Tile: t}, nil
}

// Validate checks a meld built by hand rather than by a constructor.
func (m Meld) Validate() error {
	switch m.Kind {
	case Sequence:
		_, err := SequenceFrom(m.Tile, m.Open)
		return err
	case Triplet, Quad, Pair:
		if !m.Tile.Valid() {
			return errors.Wrapf(errutil.ErrIllegalMeld, "%s of %s", m.Kind, m.Tile)
		}
		return nil
	}
	return errors.Wrapf(errutil.ErrIllegalMeld, "kind=%d", int(m.Kind))
}

// Tiles returns the physical tiles, four for a quad.
func (m Meld) Tiles() Tiles {
	switch m.Kind {
	case Sequence:
		return Tiles{m.Tile, m.Tile + 1, m.Tile + 2}
	case Triplet:
		return Tiles{m.Tile, m.Tile, m.Tile}
	case Quad:
		return Tiles{m.Tile, m.Tile, m.Tile, m.Tile}
	case Pair:
		return Tiles{m.Tile, m.Tile}
	}
	return nil
}

// Size is the number of tiles the meld contributes to the 14 tile count,
// a quad takes the slot of a triplet.
func (m Meld) Size() int {
	if m.Kind == Pair {
		return 2
	}
	return 3
}

func (m Meld) Contains(t Tile) bool {
	if m.Kind == Sequence {
		return t >= m.Tile && t <= m.Tile+2 && t.Suit() == m.Tile.Suit()
	}
	return t == m.Tile
}

// IsSet reports triplets and quads.
func (m Meld) IsSet() bool {
	return m.Kind == Triplet || m.Kind == Quad
}

func (m Meld) hasTerminalOrHonor() bool {
	if m.Kind == Sequence {
		return m.Tile.Rank() == 1 || m.Tile.Rank() == 7
	}
	return m.Tile.IsTerminalOrHonor()
}

func (m Meld) hasTerminal() bool {
	if m.Kind == Sequence {
		return m.Tile.Rank() == 1 || m.Tile.Rank() == 7
	}
	return m.Tile.IsTerminal()
}

// Name is the set name used by the bot protocol.
func (m Meld) Name() string {
	switch m.Kind {
	case Sequence:
		return "Chi"
	case Triplet:
		return "Pon"
	case Quad:
		return "Kan"
	}
	return "Pair"
}

// EngineTile is the tile sent along with Name to identify the set.
func (m Meld) EngineTile() Tile {
	return m.Tile
}

func (m Meld) String() string {
	state := "closed"
	if m.Open {
		state = "open"
	}
	return fmt.Sprintf("%s(%s, %s)", m.Kind, m.Tiles(), state)
}

func (m Meld) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Tiles Tiles  `json:"tiles"`
		Open  bool   `json:"open"`
	}{m.Kind.String(), m.Tiles(), m.Open})
}

// ParseMeld reads "Chi C1", "Pon DR", "Kan P9" or "CKan P9". Chi, Pon and
// Kan are open, CKan is a concealed quad.
func ParseMeld(s string) (Meld, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Meld{}, errors.Wrapf(errutil.ErrIllegalMeld, "meld=%q", s)
	}
	t, err := ParseTile(fields[1])
	if err != nil {
		return Meld{}, err
	}
	switch strings.ToLower(fields[0]) {
	case "chi":
		return SequenceFrom(t, true)
	case "pon":
		return NewTriplet(t, true)
	case "kan":
		return NewQuad(t, true)
	case "ckan":
		return NewQuad(t, false)
	}
	return Meld{}, errors.Wrapf(errutil.ErrIllegalMeld, "meld=%q", s)
}

// ParseMelds reads a comma separated list of melds, an empty string is no
// melds.
func ParseMelds(s string) ([]Meld, error) {
	var melds []Meld
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		m, err := ParseMeld(part)
		if err != nil {
			return nil, err
		}
		melds = append(melds, m)
	}
	return melds, nil
}
