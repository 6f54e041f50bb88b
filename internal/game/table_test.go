package game

import (
	"context"
	"testing"

	"github.com/fbriere/rmahjong/internal/botengine"
	"github.com/fbriere/rmahjong/internal/errutil"
	"github.com/fbriere/rmahjong/internal/game/mahjong"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

func mustHand(t *testing.T, table *Table, seat int, hand, melds string) {
	tiles, err := mahjong.ParseTiles(hand)
	if err != nil {
		t.Fatalf("expect: nil, got: %v", err)
	}
	sets, err := mahjong.ParseMelds(melds)
	if err != nil {
		t.Fatalf("expect: nil, got: %v", err)
	}
	if err := table.SetHand(seat, tiles, sets); err != nil {
		t.Fatalf("expect: nil, got: %v", err)
	}
}

func sum(diff [seatCount]int) int {
	total := 0
	for _, d := range diff {
		total += d
	}
	return total
}

func TestNewTable(t *testing.T) {
	table := NewTable(Config{})
	if table.ID() == "" {
		t.Fatalf("expect: table id, got: empty")
	}
	if table.RoundWind() != mahjong.WE {
		t.Fatalf("expect: %v, got: %v", mahjong.WE, table.RoundWind())
	}

	winds := mahjong.Tiles{mahjong.WE, mahjong.WS, mahjong.WW, mahjong.WN}
	for i, w := range winds {
		s, err := table.Seat(i)
		if err != nil {
			t.Fatalf("expect: nil, got: %v", err)
		}
		if s.Wind() != w || s.Score() != 25000 || s.IsDealer() != (i == 0) {
			t.Fatalf("expect: %v 25000, got: %v", w, s.String())
		}
	}
	if _, err := table.Seat(4); errors.Cause(err) != errutil.ErrSeatNotFound {
		t.Fatalf("expect: %v, got: %v", errutil.ErrSeatNotFound, err)
	}
	if err := table.SetRoundWind(mahjong.DR); errors.Cause(err) != errutil.ErrIllegalParameter {
		t.Fatalf("expect: %v, got: %v", errutil.ErrIllegalParameter, err)
	}
}

func TestSetHand(t *testing.T) {
	table := NewTable(Config{})
	cases := []struct {
		hand  mahjong.Tiles
		melds []mahjong.Meld
		err   error
	}{
		{mahjong.Tiles{mahjong.C1}, nil, errutil.ErrTileCount},
		{mahjong.Tiles{mahjong.C1, mahjong.IllegalTile}, nil, errutil.ErrUnknownTile},
		{mahjong.Tiles{mahjong.C1, mahjong.C1, mahjong.C1, mahjong.C1, mahjong.C1, mahjong.C1, mahjong.C1, mahjong.C1, mahjong.C1, mahjong.C1, mahjong.C1},
			[]mahjong.Meld{{Kind: mahjong.Pair, Tile: mahjong.DR}}, errutil.ErrIllegalMeld},
	}
	for _, c := range cases {
		if err := table.SetHand(0, c.hand, c.melds); errors.Cause(err) != c.err {
			t.Fatalf("expect: %v, got: %v", c.err, err)
		}
	}
}

func TestAfterDiscard(t *testing.T) {
	table := NewTable(Config{})
	mustHand(t, table, 1, "C2 C3 DR DR B5 B6 B7 P1 P2 P3 P7 P8 P9", "")
	mustHand(t, table, 2, "C1 C1 C5 C6 C7 B2 B3 B4 P4 P5 P6 WN WN", "")

	offers, err := table.AfterDiscard(0, mahjong.C1)
	if err != nil {
		t.Fatalf("expect: nil, got: %v", err)
	}
	if len(offers) != 2 {
		t.Fatalf("expect: 2 offers, got: %v", offers)
	}
	if o := offers[0]; o.Seat != 1 || o.Relation != mahjong.LeftPlayer || len(o.Actions) != 1 || o.Actions[0] != mahjong.ActionChi {
		t.Fatalf("expect: seat 1 Chi, got: %v", o)
	}
	if o := offers[1]; o.Seat != 2 || o.Relation != mahjong.AcrossPlayer || len(o.Actions) != 1 || o.Actions[0] != mahjong.ActionPon {
		t.Fatalf("expect: seat 2 Pon, got: %v", o)
	}

	// the discarder sits on the right of seat 1, no chi
	offers, err = table.AfterDiscard(2, mahjong.C1)
	if err != nil {
		t.Fatalf("expect: nil, got: %v", err)
	}
	if len(offers) != 0 {
		t.Fatalf("expect: no offer, got: %v", offers)
	}

	if _, err := table.AfterDiscard(5, mahjong.C1); errors.Cause(err) != errutil.ErrSeatNotFound {
		t.Fatalf("expect: %v, got: %v", errutil.ErrSeatNotFound, err)
	}
	if _, err := table.AfterDiscard(0, mahjong.IllegalTile); errors.Cause(err) != errutil.ErrUnknownTile {
		t.Fatalf("expect: %v, got: %v", errutil.ErrUnknownTile, err)
	}
}

func TestDeclareWin(t *testing.T) {
	cases := []struct {
		seat   int
		hand   string
		melds  string
		method mahjong.WinMethod
		from   int
		dora   mahjong.DoraContext
		diff   [seatCount]int
	}{
		{0, "C6 C7 C8 B6 B7 B8 P6 P7 P8 C2 C2 B6 B7 B8", "", mahjong.Tsumo, -1, mahjong.DoraContext{}, [seatCount]int{18000, -6000, -6000, -6000}},
		{1, "C6 C7 C8 B6 B7 B8 P6 P7 P8 C2 C2 B6 B7 B8", "", mahjong.Tsumo, -1, mahjong.DoraContext{}, [seatCount]int{-6000, 12000, -3000, -3000}},
		{2, "WN B9 B6 WN B4 B8 B5 B7", "Chi B1, Chi P5", mahjong.Ron, 0, mahjong.DoraContext{UraDora: mahjong.Tiles{mahjong.B7}}, [seatCount]int{-2000, 0, 2000, 0}},
	}

	for i, c := range cases {
		table := NewTable(Config{})
		mustHand(t, table, c.seat, c.hand, c.melds)
		r, diff, err := table.DeclareWin(c.seat, c.method, c.from, c.dora)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if diff != c.diff || sum(diff) != 0 {
			t.Fatalf("expect: %v, got: %v, case: %d, result: %v", c.diff, diff, i, r.Payment)
		}
		scores := table.Scores()
		for s := range scores {
			if scores[s] != 25000+c.diff[s] {
				t.Fatalf("expect: %v, got: %v", 25000+c.diff[s], scores[s])
			}
		}
	}
}

func TestDeclareWinFaults(t *testing.T) {
	table := NewTable(Config{})
	mustHand(t, table, 0, "C1 C1 C3 C5 C7 C9 B1 B3 B5 B7 P1 P3 P5 P7", "")
	mustHand(t, table, 1, "C1 C2 C3 C4 C5 C6 C7 C8 C9 B1 B2 B3 DR WE", "")

	cases := []struct {
		seat   int
		method mahjong.WinMethod
		from   int
		err    error
	}{
		{0, mahjong.Tsumo, -1, errutil.ErrNotWon},
		{0, mahjong.Ron, 0, errutil.ErrIllegalParameter},
		{0, mahjong.Ron, 9, errutil.ErrSeatNotFound},
		{7, mahjong.Tsumo, -1, errutil.ErrSeatNotFound},
		{2, mahjong.Tsumo, -1, errutil.ErrTileCount},
	}
	for _, c := range cases {
		if _, _, err := table.DeclareWin(c.seat, c.method, c.from, mahjong.DoraContext{}); errors.Cause(err) != c.err {
			t.Fatalf("expect: %v, got: %v", c.err, err)
		}
	}
	if table.Scores() != [seatCount]int{25000, 25000, 25000, 25000} {
		t.Fatalf("expect: untouched scores, got: %v", table.Scores())
	}
}

func TestExhaustiveDraw(t *testing.T) {
	const (
		tenpai = "C1 C2 C3 C4 C5 C6 C7 C8 C9 B1 B1 B1 DR"
		noten  = "C1 C1 C3 C5 C7 C9 B1 B3 B5 B7 P1 P3 P5"
	)
	cases := []struct {
		hands [seatCount]string
		diff  [seatCount]int
	}{
		{[seatCount]string{tenpai, noten, noten, noten}, [seatCount]int{3000, -1000, -1000, -1000}},
		{[seatCount]string{tenpai, noten, tenpai, noten}, [seatCount]int{1500, -1500, 1500, -1500}},
		{[seatCount]string{tenpai, tenpai, tenpai, noten}, [seatCount]int{1000, 1000, 1000, -3000}},
		{[seatCount]string{tenpai, tenpai, tenpai, tenpai}, [seatCount]int{}},
		{[seatCount]string{noten, noten, noten, noten}, [seatCount]int{}},
	}

	for _, c := range cases {
		table := NewTable(Config{})
		for i, h := range c.hands {
			mustHand(t, table, i, h, "")
		}
		diff := table.ExhaustiveDraw()
		if diff != c.diff || sum(diff) != 0 {
			t.Fatalf("expect: %v, got: %v", c.diff, diff)
		}
	}

	// seats without a hand are noten
	table := NewTable(Config{})
	mustHand(t, table, 3, tenpai, "")
	if diff := table.ExhaustiveDraw(); diff != [seatCount]int{-1000, -1000, -1000, 3000} {
		t.Fatalf("expect: %v, got: %v", [seatCount]int{-1000, -1000, -1000, 3000}, diff)
	}
}

func TestHandActions(t *testing.T) {
	table := NewTable(Config{})
	mustHand(t, table, 0, "C6 C7 C8 B6 B7 B8 P6 P7 P8 C2 C2 B6 B7 B8", "")
	actions, err := table.HandActions(0)
	if err != nil {
		t.Fatalf("expect: nil, got: %v", err)
	}
	if len(actions) != 1 || actions[0] != mahjong.ActionTsumo {
		t.Fatalf("expect: [Tsumo], got: %v", actions)
	}
}

type fakeBot struct {
	hand   mahjong.Tiles
	sets   []mahjong.Meld
	round  mahjong.Tile
	wind   mahjong.Tile
	offers []mahjong.Meld

	han    int
	claim  botengine.Claim
	err    error
	closed bool
}

func (b *fakeBot) SetHand(tiles mahjong.Tiles) error  { b.hand = tiles; return nil }
func (b *fakeBot) SetSets(melds []mahjong.Meld) error { b.sets = melds; return nil }
func (b *fakeBot) SetRoundWind(t mahjong.Tile) error  { b.round = t; return nil }
func (b *fakeBot) SetPlayerWind(t mahjong.Tile) error { b.wind = t; return nil }
func (b *fakeBot) Close() error                       { b.closed = true; return nil }

func (b *fakeBot) QuestionDiscard(ctx context.Context) (botengine.Decision, error) {
	return botengine.Decision{Action: botengine.ActionDiscard, Tile: b.hand.Last()}, b.err
}

func (b *fakeBot) QuestionYaku(ctx context.Context) (int, error) {
	return b.han, b.err
}

func (b *fakeBot) QuestionSteal(ctx context.Context, tile mahjong.Tile, melds []mahjong.Meld) (botengine.Claim, error) {
	b.offers = melds
	return b.claim, b.err
}

func TestBotNames(t *testing.T) {
	table := NewTable(Config{BotNames: []string{"Panda", "Yogi"}})
	for i, expect := range []string{"Panda", "Yogi"} {
		name, err := table.AddBot(i, &fakeBot{})
		if err != nil || name != expect {
			t.Fatalf("expect: %s, got: %s %v", expect, name, err)
		}
	}
	if _, err := table.AddBot(2, &fakeBot{}); errors.Cause(err) != errutil.ErrNoBotName {
		t.Fatalf("expect: %v, got: %v", errutil.ErrNoBotName, err)
	}
	if _, err := table.AddBot(0, &fakeBot{}); errors.Cause(err) != errutil.ErrIllegalParameter {
		t.Fatalf("expect: %v, got: %v", errutil.ErrIllegalParameter, err)
	}

	// names are never shared between tables
	other := NewTable(Config{})
	name, err := other.AddBot(0, &fakeBot{})
	if err != nil || name != "Panda" {
		t.Fatalf("expect: Panda, got: %s %v", name, err)
	}
}

func TestStartBot(t *testing.T) {
	fake := &fakeBot{}
	old := startEngine
	startEngine = func(cfg botengine.Config) (Bot, error) { return fake, nil }
	defer func() { startEngine = old }()

	table := NewTable(Config{BotNames: []string{"Panda"}})
	if name, err := table.StartBot(3); err != nil || name != "Panda" {
		t.Fatalf("expect: Panda, got: %s %v", name, err)
	}
	if _, err := table.StartBot(2); errors.Cause(err) != errutil.ErrNoBotName {
		t.Fatalf("expect: %v, got: %v", errutil.ErrNoBotName, err)
	}
	table.Close()
	if !fake.closed {
		t.Fatalf("expect: closed bot, got: running")
	}
}

func TestBotQuestions(t *testing.T) {
	table := NewTable(Config{})
	bot := &fakeBot{han: 3}
	if _, err := table.AddBot(1, bot); err != nil {
		t.Fatalf("expect: nil, got: %v", err)
	}
	mustHand(t, table, 1, "C2 C3 DR DR B5 B6 B7 P1 P2 P3 P7 P8 P9", "")

	han, err := table.BotYaku(context.Background(), 1)
	if err != nil || han != 3 {
		t.Fatalf("expect: 3, got: %d %v", han, err)
	}
	if bot.hand.String() != "C2 C3 DR DR B5 B6 B7 P1 P2 P3 P7 P8 P9" || bot.round != mahjong.WE || bot.wind != mahjong.WS {
		t.Fatalf("expect: synced state, got: %v %v %v", bot.hand, bot.round, bot.wind)
	}

	d, err := table.BotDiscard(context.Background(), 1)
	if err != nil || d.Tile != mahjong.P9 {
		t.Fatalf("expect: P9, got: %v %v", d, err)
	}

	chi := mahjong.Meld{Kind: mahjong.Sequence, Tile: mahjong.C1, Open: true}
	bot.claim = botengine.Claim{Action: mahjong.ActionChi, Meld: chi}
	claim, err := table.BotSteal(context.Background(), 1, 0, mahjong.C1)
	if err != nil || claim.Meld != chi {
		t.Fatalf("expect: %v, got: %v %v", chi, claim, err)
	}
	if len(bot.offers) != 1 || bot.offers[0] != chi {
		t.Fatalf("expect: [%v], got: %v", chi, bot.offers)
	}

	// nothing to offer, the bot is not asked
	bot.offers = nil
	claim, err = table.BotSteal(context.Background(), 1, 2, mahjong.WN)
	if err != nil || claim.Action != mahjong.ActionPass || bot.offers != nil {
		t.Fatalf("expect: Pass, got: %v %v", claim, err)
	}

	if _, err := table.BotYaku(context.Background(), 0); errors.Cause(err) != errutil.ErrSeatUnavailable {
		t.Fatalf("expect: %v, got: %v", errutil.ErrSeatUnavailable, err)
	}
}

func TestBotFault(t *testing.T) {
	cases := []struct {
		fault  error
		lost   bool
		claim  botengine.Claim
		expect error
	}{
		{errutil.ErrBotTimeout, true, botengine.Claim{}, errutil.ErrBotTimeout},
		{errutil.ErrBotExited, true, botengine.Claim{}, errutil.ErrBotExited},
		{nil, true, botengine.Claim{Action: mahjong.ActionPon, Meld: mahjong.Meld{Kind: mahjong.Triplet, Tile: mahjong.C1, Open: true}}, errutil.ErrBotProtocol},
	}

	for _, c := range cases {
		table := NewTable(Config{})
		bot := &fakeBot{err: c.fault, claim: c.claim}
		table.AddBot(1, bot)
		mustHand(t, table, 1, "C2 C3 DR DR B5 B6 B7 P1 P2 P3 P7 P8 P9", "")

		_, err := table.BotSteal(context.Background(), 1, 0, mahjong.C1)
		if errors.Cause(err) != c.expect {
			t.Fatalf("expect: %v, got: %v", c.expect, err)
		}
		s, _ := table.Seat(1)
		if s.Available() == c.lost || bot.closed != c.lost {
			t.Fatalf("expect: lost=%t, got: %v", c.lost, s.Available())
		}
		// an unavailable seat is never asked again
		if _, err := table.BotYaku(context.Background(), 1); errors.Cause(err) != errutil.ErrSeatUnavailable {
			t.Fatalf("expect: %v, got: %v", errutil.ErrSeatUnavailable, err)
		}
	}
}

func TestConfigFromViper(t *testing.T) {
	viper.Set("table.start_score", 30000)
	viper.Set("bots.names", []string{"Yogi"})
	viper.Set("bots.path", "/usr/bin/bot")
	defer viper.Reset()

	cfg := ConfigFromViper()
	if cfg.StartScore != 30000 || len(cfg.BotNames) != 1 || cfg.BotNames[0] != "Yogi" || cfg.Bot.Path != "/usr/bin/bot" {
		t.Fatalf("expect: viper values, got: %+v", cfg)
	}

	viper.Reset()
	cfg = ConfigFromViper()
	if cfg.StartScore != 25000 || len(cfg.BotNames) != 3 || cfg.BotNames[0] != "Panda" {
		t.Fatalf("expect: defaults, got: %+v", cfg)
	}
}
