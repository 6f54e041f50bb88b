package game

import (
	"context"
	"fmt"

	"github.com/fbriere/rmahjong/internal/botengine"
	"github.com/fbriere/rmahjong/internal/game/mahjong"
	log "github.com/sirupsen/logrus"
)

const seatCount = 4

// Bot is the decision process behind a bot seat, *botengine.Engine in
// production.
type Bot interface {
	SetHand(tiles mahjong.Tiles) error
	SetSets(melds []mahjong.Meld) error
	SetRoundWind(t mahjong.Tile) error
	SetPlayerWind(t mahjong.Tile) error
	QuestionDiscard(ctx context.Context) (botengine.Decision, error)
	QuestionYaku(ctx context.Context) (int, error)
	QuestionSteal(ctx context.Context, tile mahjong.Tile, melds []mahjong.Meld) (botengine.Claim, error)
	Close() error
}

type Seat struct {
	index int
	name  string
	wind  mahjong.Tile
	score int

	concealed mahjong.Tiles
	melds     []mahjong.Meld

	bot         Bot
	unavailable bool

	logger *log.Entry
}

func newSeat(index, score int) *Seat {
	return &Seat{
		index:  index,
		wind:   mahjong.WE + mahjong.Tile(index),
		score:  score,
		logger: logger.WithField(fieldSeat, index),
	}
}

func (s *Seat) Index() int {
	return s.index
}

func (s *Seat) Name() string {
	return s.name
}

func (s *Seat) Wind() mahjong.Tile {
	return s.wind
}

func (s *Seat) Score() int {
	return s.score
}

// IsDealer reports whether the seat holds the east wind.
func (s *Seat) IsDealer() bool {
	return s.wind == mahjong.WE
}

func (s *Seat) IsBot() bool {
	return s.bot != nil
}

// Available is false once the bot of the seat failed.
func (s *Seat) Available() bool {
	return !s.unavailable
}

func (s *Seat) Concealed() mahjong.Tiles {
	return s.concealed.Clone()
}

func (s *Seat) Melds() []mahjong.Meld {
	return append([]mahjong.Meld(nil), s.melds...)
}

func (s *Seat) String() string {
	return fmt.Sprintf("Seat=%d, Name=%s, Wind=%s, Score=%d", s.index, s.name, s.wind, s.score)
}
