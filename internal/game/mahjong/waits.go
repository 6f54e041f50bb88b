package mahjong

import (
	"github.com/fbriere/rmahjong/internal/errutil"
	"github.com/pkg/errors"
)

func checkWaiting(concealed Tiles, melds []Meld) error {
	n, err := checkShape(concealed, melds)
	if err != nil {
		return err
	}
	if n != 13 {
		return errors.Wrapf(errutil.ErrTileCount, "%d tiles, a waiting hand needs 13", n)
	}
	return nil
}

// WaitingTiles returns, in catalog order, every kind that completes the
// 13 tile hand.
func WaitingTiles(concealed Tiles, melds []Meld) (Tiles, error) {
	if err := checkWaiting(concealed, melds); err != nil {
		return nil, err
	}
	return waitingTiles(concealed, melds), nil
}

func waitingTiles(concealed Tiles, melds []Meld) Tiles {
	var waits Tiles
	hand := make(Tiles, len(concealed)+1)
	copy(hand, concealed)
	for _, t := range Catalog() {
		hand[len(concealed)] = t
		if len(decompose(hand, melds)) > 0 {
			waits = append(waits, t)
		}
	}
	return waits
}

func IsTenpai(concealed Tiles, melds []Meld) (bool, error) {
	waits, err := WaitingTiles(concealed, melds)
	if err != nil {
		return false, err
	}
	return len(waits) > 0, nil
}

// IsSingleWait reports whether the hand before the last tile was drawn
// waited on exactly one kind.
func IsSingleWait(concealed Tiles, melds []Meld) (bool, error) {
	if len(concealed) == 0 {
		return false, errors.Wrap(errutil.ErrTileCount, "empty hand")
	}
	waits, err := WaitingTiles(concealed[:len(concealed)-1], melds)
	if err != nil {
		return false, err
	}
	return len(waits) == 1, nil
}

func isSingleWait(concealed Tiles, melds []Meld) bool {
	return len(waitingTiles(concealed[:len(concealed)-1], melds)) == 1
}

// RiichiDiscards returns the distinct kinds whose discard leaves the 14
// tile hand in tenpai. An open hand cannot declare riichi, closed quads
// keep it closed.
func RiichiDiscards(concealed Tiles, melds []Meld) (Tiles, error) {
	n, err := checkShape(concealed, melds)
	if err != nil {
		return nil, err
	}
	if n != 14 {
		return nil, errors.Wrapf(errutil.ErrTileCount, "%d tiles, riichi needs 14", n)
	}
	for _, m := range melds {
		if m.Open {
			return nil, nil
		}
	}

	var discards Tiles
	stats := NewStats(concealed)
	for i, count := range stats {
		if count == 0 {
			continue
		}
		rest, _ := concealed.Remove(Tile(i))
		if len(waitingTiles(rest, melds)) > 0 {
			discards = append(discards, Tile(i))
		}
	}
	return discards, nil
}

func CanRiichi(concealed Tiles, melds []Meld) (bool, error) {
	discards, err := RiichiDiscards(concealed, melds)
	if err != nil {
		return false, err
	}
	return len(discards) > 0, nil
}
