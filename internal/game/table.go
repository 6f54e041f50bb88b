package game

import (
	"sync"

	"github.com/fbriere/rmahjong/internal/botengine"
	"github.com/fbriere/rmahjong/internal/errutil"
	"github.com/fbriere/rmahjong/internal/game/mahjong"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	fieldTable = "table"
	fieldSeat  = "seat"
)

// notenPenalty is split between the noten and tenpai seats at an
// exhaustive draw.
const notenPenalty = 3000

var logger = log.WithField("component", "game")

// Offer lists the claims one seat may make on a discard.
type Offer struct {
	Seat     int              `json:"seat"`
	Relation mahjong.Relation `json:"relation"`
	Actions  []mahjong.Action `json:"actions"`
}

// Table holds four seats around one round.
type Table struct {
	sync.RWMutex

	id        string
	roundWind mahjong.Tile
	seats     [seatCount]*Seat

	names    []string // owned copy of the configured bot names
	nextName int
	botCfg   botengine.Config

	logger *log.Entry
}

func NewTable(cfg Config) *Table {
	cfg = cfg.withDefaults()

	id := uuid.New()
	t := &Table{
		id:        id,
		roundWind: mahjong.WE,
		names:     append([]string(nil), cfg.BotNames...),
		botCfg:    cfg.Bot,
		logger:    logger.WithField(fieldTable, id),
	}
	for i := range t.seats {
		t.seats[i] = newSeat(i, cfg.StartScore)
	}
	t.logger.Debugf("table created, start score=%d", cfg.StartScore)
	return t
}

func (t *Table) ID() string {
	return t.id
}

func (t *Table) RoundWind() mahjong.Tile {
	t.RLock()
	defer t.RUnlock()
	return t.roundWind
}

func (t *Table) SetRoundWind(w mahjong.Tile) error {
	if !w.IsWind() {
		return errors.Wrapf(errutil.ErrIllegalParameter, "round wind=%s", w)
	}
	t.Lock()
	defer t.Unlock()
	t.roundWind = w
	return nil
}

func (t *Table) seat(i int) (*Seat, error) {
	if i < 0 || i >= seatCount {
		return nil, errors.Wrapf(errutil.ErrSeatNotFound, "seat=%d", i)
	}
	return t.seats[i], nil
}

// Seat returns a snapshot of seat i.
func (t *Table) Seat(i int) (Seat, error) {
	t.RLock()
	defer t.RUnlock()

	s, err := t.seat(i)
	if err != nil {
		return Seat{}, err
	}
	snapshot := *s
	snapshot.concealed = s.concealed.Clone()
	snapshot.melds = s.Melds()
	return snapshot, nil
}

// Scores returns the points of every seat in seat order.
func (t *Table) Scores() [seatCount]int {
	t.RLock()
	defer t.RUnlock()

	var scores [seatCount]int
	for i, s := range t.seats {
		scores[i] = s.score
	}
	return scores
}

// SetHand replaces the hand of a seat. The hand must hold 13 or 14 tiles.
func (t *Table) SetHand(i int, concealed mahjong.Tiles, melds []mahjong.Meld) error {
	if err := concealed.Validate(); err != nil {
		return err
	}
	n := len(concealed) + 3*len(melds)
	if n != 13 && n != 14 {
		return errors.Wrapf(errutil.ErrTileCount, "seat=%d, tiles=%d", i, n)
	}
	for _, m := range melds {
		if err := m.Validate(); err != nil {
			return err
		}
		if m.Kind == mahjong.Pair {
			return errors.Wrapf(errutil.ErrIllegalMeld, "exposed pair %s", m)
		}
	}

	t.Lock()
	defer t.Unlock()

	s, err := t.seat(i)
	if err != nil {
		return err
	}
	s.concealed = concealed.Clone()
	s.melds = append([]mahjong.Meld(nil), melds...)
	return nil
}

// HandActions returns the options of seat i after its draw.
func (t *Table) HandActions(i int) ([]mahjong.Action, error) {
	t.RLock()
	defer t.RUnlock()

	s, err := t.seat(i)
	if err != nil {
		return nil, err
	}
	return mahjong.HandActions(s.concealed, s.melds, t.roundWind, s.wind), nil
}

// AfterDiscard returns the claims the other seats may make on the tile
// discarded by seat from, starting with the right player. Seats without any
// option are left out.
func (t *Table) AfterDiscard(from int, tile mahjong.Tile) ([]Offer, error) {
	if !tile.Valid() {
		return nil, errors.Wrapf(errutil.ErrUnknownTile, "tile=%d", tile)
	}

	t.RLock()
	defer t.RUnlock()

	if _, err := t.seat(from); err != nil {
		return nil, err
	}

	var offers []Offer
	for k := 1; k < seatCount; k++ {
		s := t.seats[(from+k)%seatCount]
		if len(s.concealed)+3*len(s.melds) != 13 {
			continue
		}
		rel := mahjong.RelationOf(s.index, from)
		actions := mahjong.StealOptions(s.concealed, s.melds, tile, rel, t.roundWind, s.wind)
		if len(actions) == 0 {
			continue
		}
		offers = append(offers, Offer{Seat: s.index, Relation: rel, Actions: actions})
	}
	return offers, nil
}

// DeclareWin settles the hand of seat winner, whose last concealed tile is
// the winning tile, and moves the points. from is the discarder on Ron and
// ignored on Tsumo. The returned diff sums to zero.
func (t *Table) DeclareWin(winner int, method mahjong.WinMethod, from int, dora mahjong.DoraContext) (*mahjong.ScoreResult, [seatCount]int, error) {
	var diff [seatCount]int

	t.Lock()
	defer t.Unlock()

	w, err := t.seat(winner)
	if err != nil {
		return nil, diff, err
	}
	if method == mahjong.Ron {
		if _, err := t.seat(from); err != nil {
			return nil, diff, err
		}
		if from == winner {
			return nil, diff, errors.Wrapf(errutil.ErrIllegalParameter, "ron on own discard, seat=%d", winner)
		}
	}

	result, err := mahjong.Settle(w.concealed, w.melds, method, dora, t.roundWind, w.wind)
	if err != nil {
		return nil, diff, err
	}

	p := result.Payment
	switch method {
	case mahjong.Ron:
		diff[from] -= p.Ron
		diff[winner] += p.Ron
	case mahjong.Tsumo:
		for _, s := range t.seats {
			if s.index == winner {
				continue
			}
			pay := p.NonDealer
			if s.IsDealer() && !w.IsDealer() {
				pay = p.Dealer
			}
			diff[s.index] -= pay
			diff[winner] += pay
		}
	}

	t.apply(diff)
	t.logger.Infof("win declared, seat=%d, method=%s, han=%d, fu=%d, diff=%v", winner, method, result.Han, result.Fu, diff)
	return result, diff, nil
}

// ExhaustiveDraw ends the round without a winner. Noten seats pay the
// penalty to the tenpai seats, nothing moves when all or none are tenpai.
func (t *Table) ExhaustiveDraw() [seatCount]int {
	var diff [seatCount]int

	t.Lock()
	defer t.Unlock()

	var tenpai [seatCount]bool
	count := 0
	for i, s := range t.seats {
		ok, err := mahjong.IsTenpai(s.concealed, s.melds)
		if err != nil {
			s.logger.Debugf("noten at draw: %v", err)
		}
		tenpai[i] = ok && err == nil
		if tenpai[i] {
			count++
		}
	}
	if count == 0 || count == seatCount {
		return diff
	}

	gain, loss := notenPenalty/count, notenPenalty/(seatCount-count)
	for i := range diff {
		if tenpai[i] {
			diff[i] = gain
		} else {
			diff[i] = -loss
		}
	}

	t.apply(diff)
	t.logger.Infof("exhaustive draw, tenpai=%v, diff=%v", tenpai, diff)
	return diff
}

// apply adds diff to the scores. Caller holds the lock.
func (t *Table) apply(diff [seatCount]int) {
	for i, d := range diff {
		t.seats[i].score += d
	}
}

// Close stops every bot at the table.
func (t *Table) Close() {
	t.Lock()
	defer t.Unlock()

	for _, s := range t.seats {
		if s.bot == nil {
			continue
		}
		if err := s.bot.Close(); err != nil {
			s.logger.Warnf("close bot: %v", err)
		}
		s.bot = nil
	}
}
