package mahjong

// Action is an option offered to a seat.
type Action string

const (
	ActionTsumo Action = "Tsumo"
	ActionPon   Action = "Pon"
	ActionChi   Action = "Chi"
	ActionRon   Action = "Ron"
	ActionPass  Action = "Pass"
)

// Relation is where a discarder sits as seen from the seat reacting to it.
type Relation int

const (
	Self Relation = iota
	RightPlayer
	AcrossPlayer
	LeftPlayer
)

// RelationOf returns the position of the discarder seat relative to seat,
// both given as seat indexes in turn order.
func RelationOf(seat, discarder int) Relation {
	switch (discarder - seat + 4) % 4 {
	case 1:
		return RightPlayer
	case 2:
		return AcrossPlayer
	case 3:
		return LeftPlayer
	}
	return Self
}

func (r Relation) String() string {
	switch r {
	case RightPlayer:
		return "right"
	case AcrossPlayer:
		return "across"
	case LeftPlayer:
		return "left"
	}
	return "self"
}

// HandActions returns the options after a draw, the drawn tile being the
// last concealed tile.
func HandActions(concealed Tiles, melds []Meld, roundWind, seatWind Tile) []Action {
	var actions []Action
	if YakuHan(concealed, melds, NewContext(roundWind, seatWind, Tsumo)) > 0 {
		actions = append(actions, ActionTsumo)
	}
	return actions
}

// StealOptions returns the claims a 13 tile hand may make on a discard,
// ordered Pon, Chi, Ron.
func StealOptions(concealed Tiles, melds []Meld, discard Tile, rel Relation, roundWind, seatWind Tile) []Action {
	var actions []Action
	if concealed.Count(discard) >= 2 {
		actions = append(actions, ActionPon)
	}
	if rel == LeftPlayer && len(ChiCandidates(concealed, discard)) > 0 {
		actions = append(actions, ActionChi)
	}

	hand := make(Tiles, 0, len(concealed)+1)
	hand = append(hand, concealed...)
	hand = append(hand, discard)
	if YakuHan(hand, melds, NewContext(roundWind, seatWind, Ron)) > 0 && !IsFuriten(concealed, melds) {
		actions = append(actions, ActionRon)
	}
	return actions
}

// ChiCandidates returns every open sequence the discard completes with two
// concealed tiles, by ascending seed.
func ChiCandidates(concealed Tiles, discard Tile) []Meld {
	r := discard.Rank()
	if r == 0 {
		return nil
	}
	var result []Meld
	for offset := 2; offset >= 0; offset-- {
		seed := discard - Tile(offset)
		if sr := r - offset; sr < 1 || sr > 7 {
			continue
		}
		ok := true
		for i := 0; i < 3; i++ {
			t := seed + Tile(i)
			if t != discard && !concealed.Contains(t) {
				ok = false
				break
			}
		}
		if ok {
			result = append(result, Meld{Kind: Sequence, Tile: seed, Open: true})
		}
	}
	return result
}

// IsFuriten always reports false, discards are not tracked per seat yet.
func IsFuriten(concealed Tiles, melds []Meld) bool {
	return false
}
