package mahjong

import (
	"fmt"

	"github.com/fbriere/rmahjong/internal/errutil"
	"github.com/pkg/errors"
)

// Payment is what the losers pay the winner.
type Payment struct {
	Method    WinMethod `json:"method"`
	Ron       int       `json:"ron,omitempty"`        // paid by the discarder
	NonDealer int       `json:"non_dealer,omitempty"` // paid by each non-dealer on self-draw
	Dealer    int       `json:"dealer,omitempty"`     // paid by the dealer on a non-dealer self-draw
}

func (p Payment) Total() int {
	switch {
	case p.Method == Ron:
		return p.Ron
	case p.Dealer == 0:
		return 3 * p.NonDealer
	default:
		return 2*p.NonDealer + p.Dealer
	}
}

func (p Payment) String() string {
	if p.Method == Ron {
		return fmt.Sprintf("Ron %d", p.Ron)
	}
	if p.Dealer == 0 {
		return fmt.Sprintf("Tsumo %d all", p.NonDealer)
	}
	return fmt.Sprintf("Tsumo %d/%d", p.NonDealer, p.Dealer)
}

// payout is one table cell. For a non-dealer winner tsumo is what each
// non-dealer pays and tsumoDealer what the dealer pays, a dealer winner
// collects tsumo from everybody. Zero marks an impossible combination.
type payout struct {
	tsumo       int
	tsumoDealer int
	ron         int
}

var nonDealerTable = map[int][]payout{
	20:  {{}, {400, 700, 0}, {700, 1300, 0}, {1300, 2600, 0}},
	25:  {{}, {0, 0, 1600}, {800, 1600, 3200}, {1600, 3200, 6400}},
	30:  {{300, 500, 1000}, {500, 1000, 2000}, {1000, 2000, 3900}, {2000, 3900, 7700}},
	40:  {{400, 700, 1300}, {700, 1300, 2600}, {1300, 2600, 5200}},
	50:  {{400, 800, 1600}, {800, 1600, 3200}, {1600, 3200, 6400}},
	60:  {{500, 1000, 2000}, {1000, 2000, 3900}, {2000, 3900, 7700}},
	70:  {{600, 1200, 2300}, {1200, 2300, 4500}},
	80:  {{700, 1300, 2600}, {1300, 2600, 5200}},
	90:  {{800, 1500, 2900}, {1500, 2900, 5800}},
	100: {{800, 1600, 3200}, {1600, 3200, 6400}},
	110: {{900, 1800, 3600}, {1800, 3600, 7100}},
}

var dealerTable = map[int][]payout{
	20:  {{}, {tsumo: 700}, {tsumo: 1300}, {tsumo: 2600}},
	25:  {{}, {ron: 2400}, {tsumo: 1600, ron: 4800}, {tsumo: 3200, ron: 9600}},
	30:  {{tsumo: 500, ron: 1500}, {tsumo: 1000, ron: 2900}, {tsumo: 2000, ron: 5800}, {tsumo: 3900, ron: 11600}},
	40:  {{tsumo: 700, ron: 2000}, {tsumo: 1300, ron: 3900}, {tsumo: 2600, ron: 7700}},
	50:  {{tsumo: 800, ron: 2400}, {tsumo: 1600, ron: 4800}, {tsumo: 3200, ron: 9600}},
	60:  {{tsumo: 1000, ron: 2900}, {tsumo: 2000, ron: 5800}, {tsumo: 3900, ron: 11600}},
	70:  {{tsumo: 1200, ron: 3400}, {tsumo: 2300, ron: 6800}},
	80:  {{tsumo: 1300, ron: 3900}, {tsumo: 2600, ron: 7700}},
	90:  {{tsumo: 1500, ron: 4400}, {tsumo: 2900, ron: 8700}},
	100: {{tsumo: 1600, ron: 4800}, {tsumo: 3200, ron: 9600}},
	110: {{tsumo: 1800, ron: 5300}, {tsumo: 3600, ron: 10600}},
}

// Limit hand names.
const (
	LimitMangan    = "Mangan"
	LimitHaneman   = "Haneman"
	LimitBaiman    = "Baiman"
	LimitSanbaiman = "Sanbaiman"
	LimitYakuman   = "Yakuman"
)

type limit struct {
	minHan    int
	name      string
	nonDealer payout
	dealer    payout
}

// limits is ordered by decreasing han.
var limits = []limit{
	{13, LimitYakuman, payout{8000, 16000, 32000}, payout{tsumo: 16000, ron: 48000}},
	{11, LimitSanbaiman, payout{6000, 12000, 24000}, payout{tsumo: 12000, ron: 36000}},
	{8, LimitBaiman, payout{4000, 8000, 16000}, payout{tsumo: 8000, ron: 24000}},
	{6, LimitHaneman, payout{3000, 6000, 12000}, payout{tsumo: 6000, ron: 18000}},
	{5, LimitMangan, payout{2000, 4000, 8000}, payout{tsumo: 4000, ron: 12000}},
}

var mangan = limits[len(limits)-1]

// manganBase is the basic points from which a hand pays as mangan.
const manganBase = 2000

// ComputePayment returns the limit name, empty below mangan, and the
// payment of a han/fu combination. The winner is the dealer when seatWind
// is east.
func ComputePayment(han, fu int, method WinMethod, seatWind Tile) (string, Payment, error) {
	if han < 1 || fu < 20 {
		return "", Payment{}, errors.Wrapf(errutil.ErrIllegalScore, "han=%d, fu=%d", han, fu)
	}

	dealer := seatWind == WE
	for _, l := range limits {
		if han >= l.minHan {
			return l.name, l.payment(dealer, method), nil
		}
	}

	table := nonDealerTable
	if dealer {
		table = dealerTable
	}

	row, ok := table[fu]
	if !ok {
		return formulaPayment(han, fu, method, dealer)
	}
	if han > len(row) {
		return mangan.name, mangan.payment(dealer, method), nil
	}

	p := row[han-1].payment(dealer, method)
	if p.Total() == 0 {
		return "", Payment{}, errors.Wrapf(errutil.ErrIllegalScore, "han=%d, fu=%d, method=%s", han, fu, method)
	}
	return "", p, nil
}

func (l limit) payment(dealer bool, method WinMethod) Payment {
	if dealer {
		return l.dealer.payment(true, method)
	}
	return l.nonDealer.payment(false, method)
}

func (p payout) payment(dealer bool, method WinMethod) Payment {
	if method == Ron {
		return Payment{Method: Ron, Ron: p.ron}
	}
	if dealer {
		return Payment{Method: Tsumo, NonDealer: p.tsumo}
	}
	return Payment{Method: Tsumo, NonDealer: p.tsumo, Dealer: p.tsumoDealer}
}

// formulaPayment handles fu values without a table row, base points are
// fu * 2^(2+han).
func formulaPayment(han, fu int, method WinMethod, dealer bool) (string, Payment, error) {
	base := fu << uint(han+2)
	if base >= manganBase {
		return mangan.name, mangan.payment(dealer, method), nil
	}

	var p payout
	if dealer {
		p = payout{tsumo: ceil100(2 * base), ron: ceil100(6 * base)}
	} else {
		p = payout{tsumo: ceil100(base), tsumoDealer: ceil100(2 * base), ron: ceil100(4 * base)}
	}
	return "", p.payment(dealer, method), nil
}

func ceil100(n int) int {
	return roundUp(n, 100)
}
