package game

import (
	"context"

	"github.com/fbriere/rmahjong/internal/botengine"
	"github.com/fbriere/rmahjong/internal/errutil"
	"github.com/fbriere/rmahjong/internal/game/mahjong"
	"github.com/pkg/errors"
)

var startEngine = func(cfg botengine.Config) (Bot, error) {
	e, err := botengine.Start(cfg)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// takeName hands out the next configured bot name. Caller holds the lock.
func (t *Table) takeName() (string, error) {
	if t.nextName >= len(t.names) {
		return "", errors.Wrapf(errutil.ErrNoBotName, "%d names used", len(t.names))
	}
	name := t.names[t.nextName]
	t.nextName++
	return name, nil
}

// AddBot seats bot at seat i under the next configured name.
func (t *Table) AddBot(i int, bot Bot) (string, error) {
	t.Lock()
	defer t.Unlock()

	s, err := t.seat(i)
	if err != nil {
		return "", err
	}
	if s.bot != nil {
		return "", errors.Wrapf(errutil.ErrIllegalParameter, "seat %d already has a bot", i)
	}
	name, err := t.takeName()
	if err != nil {
		return "", err
	}

	s.name = name
	s.bot = bot
	s.unavailable = false
	s.logger = s.logger.WithField("bot", name)
	s.logger.Info("bot seated")
	return name, nil
}

// StartBot launches the configured bot process for seat i.
func (t *Table) StartBot(i int) (string, error) {
	bot, err := startEngine(t.botCfg)
	if err != nil {
		return "", err
	}
	name, err := t.AddBot(i, bot)
	if err != nil {
		bot.Close()
		return "", err
	}
	return name, nil
}

// AskBot runs fn against the bot of seat i. A transport fault closes the
// bot and leaves the seat unavailable, the fault is returned as is.
func (t *Table) AskBot(i int, fn func(bot Bot) error) error {
	t.Lock()
	defer t.Unlock()

	s, err := t.seat(i)
	if err != nil {
		return err
	}
	if s.bot == nil || s.unavailable {
		return errors.Wrapf(errutil.ErrSeatUnavailable, "seat=%d", i)
	}

	err = fn(s.bot)
	if errutil.IsTransport(err) {
		s.logger.Warnf("bot lost, seat unavailable: %v", err)
		s.unavailable = true
		s.bot.Close()
	}
	return err
}

// syncBot sends the public state of seat s to its bot.
func (t *Table) syncBot(s *Seat, bot Bot) error {
	if err := bot.SetHand(s.concealed); err != nil {
		return err
	}
	if err := bot.SetSets(s.melds); err != nil {
		return err
	}
	if err := bot.SetRoundWind(t.roundWind); err != nil {
		return err
	}
	return bot.SetPlayerWind(s.wind)
}

// BotDiscard asks the bot of seat i what to do with its 14 tile hand.
func (t *Table) BotDiscard(ctx context.Context, i int) (botengine.Decision, error) {
	var d botengine.Decision
	err := t.AskBot(i, func(bot Bot) (err error) {
		if err = t.syncBot(t.seats[i], bot); err != nil {
			return err
		}
		d, err = bot.QuestionDiscard(ctx)
		return err
	})
	return d, err
}

// BotYaku asks the bot of seat i to count its own han.
func (t *Table) BotYaku(ctx context.Context, i int) (int, error) {
	var han int
	err := t.AskBot(i, func(bot Bot) (err error) {
		if err = t.syncBot(t.seats[i], bot); err != nil {
			return err
		}
		han, err = bot.QuestionYaku(ctx)
		return err
	})
	return han, err
}

// BotSteal offers the discard of seat from to the bot of seat i, along with
// every set the discard would complete.
func (t *Table) BotSteal(ctx context.Context, i, from int, tile mahjong.Tile) (botengine.Claim, error) {
	claim := botengine.Claim{Action: mahjong.ActionPass}
	err := t.AskBot(i, func(bot Bot) error {
		s := t.seats[i]
		if _, err := t.seat(from); err != nil {
			return err
		}

		var sets []mahjong.Meld
		if s.concealed.Count(tile) >= 2 {
			sets = append(sets, mahjong.Meld{Kind: mahjong.Triplet, Tile: tile, Open: true})
		}
		if mahjong.RelationOf(i, from) == mahjong.LeftPlayer {
			sets = append(sets, mahjong.ChiCandidates(s.concealed, tile)...)
		}
		if len(sets) == 0 {
			return nil
		}

		if err := t.syncBot(s, bot); err != nil {
			return err
		}
		c, err := bot.QuestionSteal(ctx, tile, sets)
		if err != nil {
			return err
		}
		if c.Action != mahjong.ActionPass && !containsMeld(sets, c.Meld) {
			return errors.Wrapf(errutil.ErrBotProtocol, "claimed %s not offered", c.Meld)
		}
		claim = c
		return nil
	})
	return claim, err
}

func containsMeld(melds []mahjong.Meld, m mahjong.Meld) bool {
	for _, x := range melds {
		if x == m {
			return true
		}
	}
	return false
}
