package mahjong

// DoraContext holds the dora tiles already resolved from their indicators.
// Ura dora only count for a hand that declared riichi, callers pass them
// accordingly.
type DoraContext struct {
	Dora    Tiles `json:"dora"`
	UraDora Tiles `json:"ura_dora"`
}

// Count returns one han per occurrence of a dora tile in tiles.
func (dc DoraContext) Count(tiles Tiles) int {
	n := 0
	for _, t := range tiles {
		n += dc.Dora.Count(t) + dc.UraDora.Count(t)
	}
	return n
}

// DoraFromIndicator returns the tile following an indicator: ranks wrap
// 9 to 1, winds cycle east south west north, dragons cycle white green red.
func DoraFromIndicator(indicator Tile) Tile {
	switch {
	case !indicator.Valid():
		return IllegalTile
	case indicator.Rank() == 9:
		return indicator - 8
	case indicator.Rank() > 0:
		return indicator + 1
	case indicator == WN:
		return WE
	case indicator.IsWind():
		return indicator + 1
	}

	switch indicator {
	case DW:
		return DG
	case DG:
		return DR
	default:
		return DW
	}
}

// DoraFromIndicators converts every indicator.
func DoraFromIndicators(indicators Tiles) Tiles {
	doras := make(Tiles, len(indicators))
	for i, t := range indicators {
		doras[i] = DoraFromIndicator(t)
	}
	return doras
}
