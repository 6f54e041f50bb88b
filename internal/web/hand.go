package web

import (
	"strings"

	"github.com/fbriere/rmahjong/internal/errutil"
	"github.com/fbriere/rmahjong/internal/game/mahjong"
	"github.com/lonng/nex"
	"github.com/pkg/errors"
)

type handRequest struct {
	Hand      string `json:"hand"`
	Melds     string `json:"melds"` // "Chi B1, Pon DR"
	RoundWind string `json:"round_wind"`
	SeatWind  string `json:"seat_wind"`
}

type settleRequest struct {
	handRequest
	Method  string `json:"method"`
	Dora    string `json:"dora"`
	UraDora string `json:"ura_dora"`
}

type stealRequest struct {
	handRequest
	Discard  string           `json:"discard"`
	Relation mahjong.Relation `json:"relation"`
}

type waitsResponse struct {
	Waits   mahjong.Tiles `json:"waits"`
	Tenpai  bool          `json:"tenpai"`
	Single  bool          `json:"single"`
	Riichi  mahjong.Tiles `json:"riichi,omitempty"` // discards keeping tenpai, 14 tile hands only
}

type actionsResponse struct {
	Actions []mahjong.Action `json:"actions"`
}

type stealResponse struct {
	Actions []mahjong.Action `json:"actions"`
	Chi     []mahjong.Meld   `json:"chi,omitempty"`
}

type paymentResponse struct {
	Limit   string          `json:"limit"`
	Total   int             `json:"total"`
	Payment mahjong.Payment `json:"payment"`
}

// parseWind reads an optional wind, empty means no wind role.
func parseWind(s string) (mahjong.Tile, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return mahjong.IllegalTile, nil
	}
	t, err := mahjong.ParseTile(s)
	if err != nil {
		return mahjong.IllegalTile, err
	}
	if !t.IsWind() {
		return mahjong.IllegalTile, errors.Wrapf(errutil.ErrIllegalParameter, "wind=%s", s)
	}
	return t, nil
}

func (r *handRequest) parse() (mahjong.Tiles, []mahjong.Meld, error) {
	tiles, err := mahjong.ParseTiles(r.Hand)
	if err != nil {
		return nil, nil, err
	}
	melds, err := mahjong.ParseMelds(r.Melds)
	if err != nil {
		return nil, nil, err
	}
	return tiles, melds, nil
}

func (r *handRequest) winds() (round, seat mahjong.Tile, err error) {
	if round, err = parseWind(r.RoundWind); err != nil {
		return
	}
	seat, err = parseWind(r.SeatWind)
	return
}

func waitsHandler(req *handRequest) (*waitsResponse, error) {
	tiles, melds, err := req.parse()
	if err != nil {
		return nil, err
	}

	resp := &waitsResponse{Waits: mahjong.Tiles{}}
	if len(tiles)+3*len(melds) == 14 {
		if resp.Riichi, err = mahjong.RiichiDiscards(tiles, melds); err != nil {
			return nil, err
		}
		// waits of the hand before its last draw
		tiles = tiles[:len(tiles)-1]
	}

	waits, err := mahjong.WaitingTiles(tiles, melds)
	if err != nil {
		return nil, err
	}
	if len(waits) > 0 {
		resp.Waits = waits
	}
	resp.Tenpai = len(waits) > 0
	resp.Single = len(waits) == 1
	return resp, nil
}

func settleHandler(req *settleRequest) (*mahjong.ScoreResult, error) {
	tiles, melds, err := req.parse()
	if err != nil {
		return nil, err
	}
	round, seat, err := req.winds()
	if err != nil {
		return nil, err
	}
	method, err := mahjong.ParseWinMethod(req.Method)
	if err != nil {
		return nil, err
	}

	var dora mahjong.DoraContext
	if dora.Dora, err = mahjong.ParseTiles(req.Dora); err != nil {
		return nil, err
	}
	if dora.UraDora, err = mahjong.ParseTiles(req.UraDora); err != nil {
		return nil, err
	}

	result, err := mahjong.Settle(tiles, melds, method, dora, round, seat)
	if err != nil {
		return nil, err
	}
	logger.Debugf("settled hand=%s, han=%d, fu=%d, payment=%s", tiles, result.Han, result.Fu, result.Payment)
	return result, nil
}

func actionsHandler(req *handRequest) (*actionsResponse, error) {
	tiles, melds, err := req.parse()
	if err != nil {
		return nil, err
	}
	round, seat, err := req.winds()
	if err != nil {
		return nil, err
	}
	actions := mahjong.HandActions(tiles, melds, round, seat)
	if actions == nil {
		actions = []mahjong.Action{}
	}
	return &actionsResponse{Actions: actions}, nil
}

func stealHandler(req *stealRequest) (*stealResponse, error) {
	tiles, melds, err := req.parse()
	if err != nil {
		return nil, err
	}
	if n := len(tiles) + 3*len(melds); n != 13 {
		return nil, errors.Wrapf(errutil.ErrTileCount, "tiles=%d", n)
	}
	round, seat, err := req.winds()
	if err != nil {
		return nil, err
	}
	discard, err := mahjong.ParseTile(strings.TrimSpace(req.Discard))
	if err != nil {
		return nil, err
	}
	if req.Relation < mahjong.RightPlayer || req.Relation > mahjong.LeftPlayer {
		return nil, errors.Wrapf(errutil.ErrIllegalParameter, "relation=%d", req.Relation)
	}

	resp := &stealResponse{
		Actions: mahjong.StealOptions(tiles, melds, discard, req.Relation, round, seat),
	}
	if resp.Actions == nil {
		resp.Actions = []mahjong.Action{}
	}
	if req.Relation == mahjong.LeftPlayer {
		resp.Chi = mahjong.ChiCandidates(tiles, discard)
	}
	return resp, nil
}

func paymentHandler(form *nex.Form) (*paymentResponse, error) {
	method, err := mahjong.ParseWinMethod(form.Get("method"))
	if err != nil {
		return nil, err
	}
	seat, err := parseWind(form.Get("seat_wind"))
	if err != nil {
		return nil, err
	}

	limit, payment, err := mahjong.ComputePayment(form.Int("han"), form.Int("fu"), method, seat)
	if err != nil {
		return nil, err
	}
	return &paymentResponse{Limit: limit, Total: payment.Total(), Payment: payment}, nil
}
