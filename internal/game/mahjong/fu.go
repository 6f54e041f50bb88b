package mahjong

const (
	chiitoitsuFu = 25
	kokushiFu    = 30
)

// Fu returns the minipoints of an interpreted decomposition. pinfu tells
// whether Pinfu was detected for it.
func Fu(d Decomposition, ctx Context, pinfu bool) int {
	switch d.Shape {
	case SevenPairs:
		return chiitoitsuFu
	case ThirteenOrphans:
		return kokushiFu
	}

	fu := 20

	for i, g := range d.Groups {
		switch g.Kind {
		case Triplet, Quad:
			fu += setFu(g, isConcealedSet(d, ctx, i))
		case Pair:
			if ctx.yakuhai(g.Tile) > 0 {
				fu += 2
			}
		}
	}

	if hasWaitFu(d) {
		fu += 2
	}

	if !d.IsOpen() && ctx.Method == Ron {
		fu += 10
	}
	if ctx.Method == Tsumo && !pinfu {
		fu += 2
	}

	fu = roundUp(fu, 10)
	if fu == 20 && !(pinfu && ctx.Method == Tsumo) {
		fu = 30
	}
	return fu
}

func setFu(g Meld, concealed bool) int {
	var fu int
	switch {
	case g.Kind == Quad && concealed:
		fu = 16
	case g.Kind == Quad:
		fu = 4
	case concealed:
		fu = 4
	default:
		fu = 2
	}
	if g.Tile.IsTerminalOrHonor() {
		fu *= 2
	}
	return fu
}

// hasWaitFu reports an edge, closed or pair wait for the winning group, or
// a hand that waited on a single kind.
func hasWaitFu(d Decomposition) bool {
	w, ok := d.winGroup()
	if !ok {
		return false
	}
	switch w.Kind {
	case Pair:
		return true
	case Sequence:
		switch d.WinTile {
		case w.Tile + 1:
			return true
		case w.Tile:
			if w.Tile.Rank() == 7 {
				return true
			}
		case w.Tile + 2:
			if w.Tile.Rank() == 1 {
				return true
			}
		}
	}

	concealed, ok := d.preWin()
	if !ok {
		return false
	}
	return len(waitingTiles(concealed, d.exposed())) == 1
}

// preWin rebuilds the 13 concealed tiles held before the winning tile.
func (d Decomposition) preWin() (Tiles, bool) {
	var tiles Tiles
	for _, g := range d.concealed() {
		tiles = append(tiles, g.Tiles()...)
	}
	return tiles.Remove(d.WinTile)
}

func roundUp(n, unit int) int {
	return (n + unit - 1) / unit * unit
}
