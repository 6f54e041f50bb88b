package mahjong

import "fmt"

// Yaku is one scoring pattern found in a hand.
type Yaku struct {
	Name    string `json:"name"`
	Han     int    `json:"han"`
	Yakuman bool   `json:"yakuman,omitempty"`
}

func (y Yaku) String() string {
	return fmt.Sprintf("%s(%d)", y.Name, y.Han)
}

const yakumanHan = 13

// Yaku names.
const (
	YakuMenzenTsumo   = "Menzen tsumo"
	YakuYakuhai       = "Yakuhai"
	YakuTanyao        = "Tanyao"
	YakuPinfu         = "Pinfu"
	YakuIipeikou      = "Iipeikou"
	YakuSanshoku      = "Sanshoku doujun"
	YakuSanshokuDouko = "Sanshoku doukou"
	YakuIttsuu        = "Ittsuu"
	YakuChanta        = "Chanta"
	YakuJunchan       = "Junchan"
	YakuToitoi        = "Toitoi"
	YakuSanankou      = "Sanankou"
	YakuHonitsu       = "Honitsu"
	YakuChinitsu      = "Chinitsu"
	YakuChiitoitsu    = "Chiitoitsu"

	YakuDaisangen  = "Daisangen"
	YakuShousuushi = "Shousuushi"
	YakuDaisuushi  = "Daisuushi"
	YakuSuuankou   = "Suuankou"
	YakuChinroutou = "Chinroutou"
	YakuRyuuiisou  = "Ryuuiisou"
	YakuTsuuiisou  = "Tsuuiisou"
	YakuChuuren    = "Chuurenpoutou"
	YakuKokushi    = "Kokushi musou"
	YakuSuukantsu  = "Suukantsu"
)

// closedHan and openHan give the value of a yaku in a closed and an open
// hand. A yaku missing from openHan requires a closed hand.
var closedHan = map[string]int{
	YakuMenzenTsumo:   1,
	YakuTanyao:        1,
	YakuPinfu:         1,
	YakuIipeikou:      1,
	YakuSanshoku:      2,
	YakuSanshokuDouko: 2,
	YakuIttsuu:        2,
	YakuChanta:        2,
	YakuJunchan:       3,
	YakuToitoi:        2,
	YakuSanankou:      2,
	YakuHonitsu:       3,
	YakuChinitsu:      6,
	YakuChiitoitsu:    2,
}

var openHan = map[string]int{
	YakuTanyao:        1,
	YakuSanshoku:      1,
	YakuSanshokuDouko: 2,
	YakuIttsuu:        1,
	YakuChanta:        1,
	YakuJunchan:       2,
	YakuToitoi:        2,
	YakuSanankou:      2,
	YakuHonitsu:       2,
	YakuChinitsu:      5,
}

// Detect returns the yaku of an interpreted decomposition. When any
// yakuman applies only yakuman are returned.
func Detect(d Decomposition, ctx Context) []Yaku {
	if yakuman := detectYakuman(d, ctx); len(yakuman) > 0 {
		return yakuman
	}

	open := d.IsOpen()
	han := closedHan
	if open {
		han = openHan
	}

	var result []Yaku
	add := func(name string) {
		if n, ok := han[name]; ok {
			result = append(result, Yaku{Name: name, Han: n})
		}
	}

	tiles := d.AllTiles()

	if !open && ctx.Method == Tsumo {
		add(YakuMenzenTsumo)
	}

	if d.Shape == SevenPairs {
		add(YakuChiitoitsu)
	}

	if d.Shape == Standard {
		for _, g := range d.Groups {
			if !g.IsSet() {
				continue
			}
			if n := ctx.yakuhai(g.Tile); n > 0 {
				result = append(result, Yaku{Name: fmt.Sprintf("%s %s", YakuYakuhai, g.Tile), Han: n})
			}
		}
	}

	if isTanyao(tiles) {
		add(YakuTanyao)
	}

	if d.Shape == Standard {
		if isPinfu(d, ctx) {
			add(YakuPinfu)
		}
		if isIipeikou(d) {
			add(YakuIipeikou)
		}
		if isSanshoku(d) {
			add(YakuSanshoku)
		}
		if isSanshokuDouko(d) {
			add(YakuSanshokuDouko)
		}
		if isIttsuu(d) {
			add(YakuIttsuu)
		}
		switch {
		case isJunchan(d):
			add(YakuJunchan)
		case isChanta(d):
			add(YakuChanta)
		}
		if countSets(d) == 4 {
			add(YakuToitoi)
		}
		if countConcealedSets(d, ctx) >= 3 {
			add(YakuSanankou)
		}
	}

	switch {
	case isChinitsu(tiles):
		add(YakuChinitsu)
	case isHonitsu(tiles):
		add(YakuHonitsu)
	}

	return result
}

func detectYakuman(d Decomposition, ctx Context) []Yaku {
	var result []Yaku
	add := func(name string) {
		result = append(result, Yaku{Name: name, Han: yakumanHan, Yakuman: true})
	}

	if d.Shape == ThirteenOrphans {
		add(YakuKokushi)
		return result
	}

	tiles := d.AllTiles()

	if d.Shape == Standard {
		if countSetsOf(d, Tile.IsDragon) == 3 {
			add(YakuDaisangen)
		}
		winds := countSetsOf(d, Tile.IsWind)
		switch {
		case winds == 4:
			add(YakuDaisuushi)
		case winds == 3:
			if p, ok := d.Pair(); ok && p.Tile.IsWind() {
				add(YakuShousuushi)
			}
		}
		if countConcealedSets(d, ctx) == 4 {
			add(YakuSuuankou)
		}
	}

	if all(tiles, Tile.IsTerminal) {
		add(YakuChinroutou)
	}
	if all(tiles, isGreen) {
		add(YakuRyuuiisou)
	}
	if all(tiles, Tile.IsHonor) {
		add(YakuTsuuiisou)
	}
	if d.Exposed == 0 && isChuuren(tiles) {
		add(YakuChuuren)
	}

	quads := 0
	for _, g := range d.Groups {
		if g.Kind == Quad {
			quads++
		}
	}
	if quads == 4 {
		add(YakuSuukantsu)
	}

	return result
}

func all(tiles Tiles, pred func(Tile) bool) bool {
	for _, t := range tiles {
		if !pred(t) {
			return false
		}
	}
	return len(tiles) > 0
}

func isGreen(t Tile) bool {
	return greens.Contains(t)
}

func isTanyao(tiles Tiles) bool {
	for _, t := range tiles {
		if t.IsTerminalOrHonor() {
			return false
		}
	}
	return true
}

// isPinfu requires a closed hand of four sequences, a valueless pair and
// a win on the open end of a two-sided wait.
func isPinfu(d Decomposition, ctx Context) bool {
	if d.Shape != Standard || d.IsOpen() {
		return false
	}
	for _, g := range d.Groups {
		switch g.Kind {
		case Sequence:
		case Pair:
			if ctx.yakuhai(g.Tile) > 0 {
				return false
			}
		default:
			return false
		}
	}
	w, ok := d.winGroup()
	if !ok || w.Kind != Sequence {
		return false
	}
	return isTwoSided(w, d.WinTile)
}

func isTwoSided(seq Meld, win Tile) bool {
	switch win {
	case seq.Tile:
		return seq.Tile.Rank() != 7
	case seq.Tile + 2:
		return seq.Tile.Rank() != 1
	}
	return false
}

func isIipeikou(d Decomposition) bool {
	if d.IsOpen() {
		return false
	}
	seen := map[Tile]bool{}
	for _, g := range d.Groups {
		if g.Kind != Sequence {
			continue
		}
		if seen[g.Tile] {
			return true
		}
		seen[g.Tile] = true
	}
	return false
}

// ranks collects, per rank, the suits holding a group accepted by pred.
func ranks(d Decomposition, pred func(Meld) bool) map[int]map[Suit]bool {
	result := map[int]map[Suit]bool{}
	for _, g := range d.Groups {
		if !pred(g) || g.Tile.IsHonor() {
			continue
		}
		r := g.Tile.Rank()
		if result[r] == nil {
			result[r] = map[Suit]bool{}
		}
		result[r][g.Tile.Suit()] = true
	}
	return result
}

func isSanshoku(d Decomposition) bool {
	for _, suits := range ranks(d, func(m Meld) bool { return m.Kind == Sequence }) {
		if len(suits) == 3 {
			return true
		}
	}
	return false
}

func isSanshokuDouko(d Decomposition) bool {
	for _, suits := range ranks(d, Meld.IsSet) {
		if len(suits) == 3 {
			return true
		}
	}
	return false
}

func isIttsuu(d Decomposition) bool {
	seqs := map[Tile]bool{}
	for _, g := range d.Groups {
		if g.Kind == Sequence {
			seqs[g.Tile] = true
		}
	}
	for _, base := range []Tile{C1, B1, P1} {
		if seqs[base] && seqs[base+3] && seqs[base+6] {
			return true
		}
	}
	return false
}

func isChanta(d Decomposition) bool {
	honors := false
	for _, g := range d.Groups {
		if !g.hasTerminalOrHonor() {
			return false
		}
		if g.Tile.IsHonor() {
			honors = true
		}
	}
	return honors
}

func isJunchan(d Decomposition) bool {
	for _, g := range d.Groups {
		if !g.hasTerminal() {
			return false
		}
	}
	return true
}

func countSets(d Decomposition) int {
	n := 0
	for _, g := range d.Groups {
		if g.IsSet() {
			n++
		}
	}
	return n
}

func countSetsOf(d Decomposition, pred func(Tile) bool) int {
	n := 0
	for _, g := range d.Groups {
		if g.IsSet() && pred(g.Tile) {
			n++
		}
	}
	return n
}

// isConcealedSet reports whether the i-th group is a triplet or quad that
// was never exposed. A triplet completed by a discard counts as open.
func isConcealedSet(d Decomposition, ctx Context, i int) bool {
	g := d.Groups[i]
	if !g.IsSet() || g.Open {
		return false
	}
	return !(i == d.Win && !ctx.FromWall)
}

func countConcealedSets(d Decomposition, ctx Context) int {
	n := 0
	for i := range d.Groups {
		if isConcealedSet(d, ctx, i) {
			n++
		}
	}
	return n
}

func suitsOf(tiles Tiles) (suits map[Suit]bool, honors bool) {
	suits = map[Suit]bool{}
	for _, t := range tiles {
		if t.IsHonor() {
			honors = true
			continue
		}
		suits[t.Suit()] = true
	}
	return suits, honors
}

func isHonitsu(tiles Tiles) bool {
	suits, honors := suitsOf(tiles)
	return len(suits) == 1 && honors
}

func isChinitsu(tiles Tiles) bool {
	suits, honors := suitsOf(tiles)
	return len(suits) == 1 && !honors
}

// isChuuren matches 1112345678999 plus one more tile of the same suit.
func isChuuren(tiles Tiles) bool {
	if len(tiles) != 14 || !isChinitsu(tiles) {
		return false
	}
	var counts [10]int
	for _, t := range tiles {
		counts[t.Rank()]++
	}
	if counts[1] < 3 || counts[9] < 3 {
		return false
	}
	for r := 2; r <= 8; r++ {
		if counts[r] < 1 {
			return false
		}
	}
	return true
}
