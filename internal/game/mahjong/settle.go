package mahjong

import (
	"github.com/fbriere/rmahjong/internal/errutil"
	"github.com/pkg/errors"
)

const YakuDora = "Dora"

// ScoreResult is the settlement of one win declaration.
type ScoreResult struct {
	Yaku          []Yaku        `json:"yaku"`
	Han           int           `json:"han"`
	Fu            int           `json:"fu"`
	Limit         string        `json:"limit"`
	Payment       Payment       `json:"payment"`
	Decomposition Decomposition `json:"decomposition"`
}

// IsYakuman reports whether the hand scored in the yakuman tier.
func (r *ScoreResult) IsYakuman() bool {
	return len(r.Yaku) > 0 && r.Yaku[0].Yakuman
}

type evaluation struct {
	d     Decomposition
	yaku  []Yaku
	han   int
	fu    int
	pinfu bool
}

func sumHan(yaku []Yaku) int {
	han := 0
	for _, y := range yaku {
		han += y.Han
	}
	return han
}

func evaluate(d Decomposition, ctx Context) evaluation {
	yaku := Detect(d, ctx)
	pinfu := false
	for _, y := range yaku {
		if y.Name == YakuPinfu {
			pinfu = true
		}
	}
	return evaluation{
		d:     d,
		yaku:  yaku,
		han:   sumHan(yaku),
		fu:    Fu(d, ctx, pinfu),
		pinfu: pinfu,
	}
}

// bestWin evaluates every winning interpretation of the 14 tile hand and
// keeps the one with the most han, then the most fu.
func bestWin(concealed Tiles, melds []Meld, ctx Context) (evaluation, bool) {
	var (
		best  evaluation
		found bool
		win   = concealed.Last()
	)
	for _, d := range decompose(concealed, melds) {
		for _, w := range d.interpretations(win) {
			e := evaluate(w, ctx)
			if !found || e.han > best.han || (e.han == best.han && e.fu > best.fu) {
				best, found = e, true
			}
		}
	}
	return best, found
}

// Settle scores a complete hand whose last concealed tile is the winning
// tile.
func Settle(concealed Tiles, melds []Meld, method WinMethod, dora DoraContext, roundWind, seatWind Tile) (*ScoreResult, error) {
	if _, err := Decompose(concealed, melds); err != nil {
		return nil, err
	}

	ctx := NewContext(roundWind, seatWind, method)
	best, ok := bestWin(concealed, melds, ctx)
	if !ok {
		return nil, errors.Wrapf(errutil.ErrNotWon, "hand=%s", concealed)
	}
	if best.han == 0 {
		return nil, errors.Wrapf(errutil.ErrNoYaku, "hand=%s", concealed)
	}

	yaku := append([]Yaku(nil), best.yaku...)
	han := best.han
	if !yaku[0].Yakuman {
		if n := dora.Count(best.d.AllTiles()); n > 0 {
			yaku = append(yaku, Yaku{Name: YakuDora, Han: n})
			han += n
		}
	}

	limit, payment, err := ComputePayment(han, best.fu, method, seatWind)
	if err != nil {
		return nil, err
	}

	return &ScoreResult{
		Yaku:          yaku,
		Han:           han,
		Fu:            best.fu,
		Limit:         limit,
		Payment:       payment,
		Decomposition: best.d,
	}, nil
}

// YakuHan returns the han of the best interpretation without dora, zero
// for an incomplete or yakuless hand.
func YakuHan(concealed Tiles, melds []Meld, ctx Context) int {
	if n, err := checkShape(concealed, melds); err != nil || n != 14 {
		return 0
	}
	best, ok := bestWin(concealed, melds, ctx)
	if !ok {
		return 0
	}
	return best.han
}
