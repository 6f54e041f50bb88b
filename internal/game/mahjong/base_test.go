package mahjong

import (
	"reflect"
	"testing"
)

var noWinds = NewContext(IllegalTile, IllegalTile, Ron)

func TestYakuHan(t *testing.T) {
	cases := []struct {
		hand   string
		melds  string
		expect int
	}{
		{"WW C4 C4 C4 C4 C2 C3 DR B9 DR B8 B7 DR WW", "", 1},
		{"DR DR C1 C1 C4 C2 C3 B8 B9 WN WN B7 DR WN", "", 1},
		{"C1 B1 B9 C2 WW WW WN WS DR DG DW C5 P7 P9", "", 0},
		{"C1 C1 DW C1 DW DW B1 P2 P2 P2 B1", "Kan DR", 6},
		{"C2 C3 C4 B2 B2 B2 P8 P8 P8 P5 P6 P7 C2 C2", "", 1},
		{"C2 C3 C4 B3 B3 B4 P8 P8 P8 P5 P6 P7 C9 C9", "", 0},
		{"WW C1 C1 C1 B9 B8 B7 WW", "Pon DR, Chi C2", 1},
		{"WW C1 C1 C1 B9 B8 B7 WW", "CKan DR, Chi C3", 1},
		{"WW C1 C1 C1 B6 B8 B7 WW", "Pon DR, Pon DG", 2},
		{"WW C1 C1 C1 B6 B8 B7 WW", "CKan DR, CKan DG", 4},
		{"C2 C3 C4 C2 C3 C4 P8 P8 P8 P5 P6 P7 C9 C9", "", 1},
		{"C2 C3 C4 C2 C3 C4 P8 P8 P8 C9 C9", "Chi P5", 0},
		{"C6 C7 C8 B6 B7 B8 P6 P7 P8 C9 C9 B1 B1 B1", "", 2},
		{"C6 C7 C8 B6 B7 B8 P6 P7 P8 C9 C9", "CKan C8", 2},
		{"B6 B7 B8 P6 P7 P8 C9 C9", "Pon B2, Chi C6", 1},
		{"B6 B7 B8 P6 P7 P8 C9 C9", "CKan B2, Chi C6", 1},
		{"C6 C7 C8 B6 B7 B8 P6 P7 P8 C2 C2 B6 B8 B7", "", 4},
		{"B1 B2 B3 B4 B5 B6 B7 B8 B9 P1 P1 P1 WN WN", "", 2},
		{"B1 B2 B3 B4 B5 B6 B7 B8 B9 WN WN", "CKan P1", 2},
		{"B1 B2 B3 B4 B5 B6 B7 B8 B9 WE WE", "Chi P7", 1},
		{"C5 P3 P8 C1 C4 P6 DG B9 WS B5 B5 P5 B6 C6", "", 0},
		{"C5 P3 P8 C1 C4 P6 DG B9 WS B6 C6", "CKan B5", 0},
		{"WN B9 B6 WN B4 B8 B5 B7", "Chi B1, Chi P5", 1},
		{"WW C9 C8 C7 C1 C2 C3 B1 B1 B1 B1 B2 B3 WW", "", 2},
		{"C6 C9 C8 C7 C1 C2 C3 B1 B1 B1 B1 B2 B3 C6", "", 0},
		{"DR C9 C8 C7 C1 C2 C3 B1 B1 B1 B4 B2 B3 DR", "", 0},
		{"WW C9 C8 C7 C1 C2 C3 DR DR DR B1 B2 B3 WW", "", 3},
		{"B9 C9 C8 C7 C1 C2 C3 B1 B1 B1 B1 B2 B3 B9", "", 3},
		{"WW C1 C2 C3 B7 B8 B9 WW", "Pon B9, Chi P1", 1},
		{"B9 C1 C2 C3 B1 B1 B1 B9", "Pon P1, Chi C7", 2},
		{"WN P2 P3 P1 WN C3 C2 C1", "Pon WE, Chi C7", 1},
		{"P2 P2 P2 P2 P3 P4 P9 P9", "Pon B2, Pon C2", 2},
		{"WW C1 C2 C3 B7 B8 B9 WW", "CKan B9, Chi P1", 1},
		{"B9 C1 C2 C3 B1 B1 B1 B9", "CKan P1, Chi C7", 2},
		{"WN P2 P3 P1 WN C3 C2 C1", "CKan WE, Chi C7", 1},
		{"P2 P2 P2 P2 P3 P4 P9 P9", "CKan B2, CKan C2", 4},
		// the B9 triplet completed by the discard is not concealed
		{"WN WN P9 P9 P9 C9 C9 C9 C3 C4 C5 B9 B9 B9", "", 2},
		{"WS WS P9 P9 P9 P9 P1 P1 DR DR B3 B3 B4 B4", "", 0},
		{"WS WS P1 P1 DR DR B3 B3 B4 B4", "CKan P9", 0},
		{"DR DR P1 P2 P3 WE WE WE", "CKan P9, Chi P2", 2},
		{"WS WS P9 P9 P9 P1 P2 P3 WE WE WE P3 P4 P5", "", 3},
		{"P2 P2 P1 P2 P3 P4 P5 P6", "CKan P9, Chi P6", 5},
		{"B1 B1 P1 P2 P3 P4 P5 P6", "CKan P9, Chi P6", 0},
		{"P2 P2 P9 P9 P9 P1 P2 P3 P8 P8 P8 P3 P4 P5", "", 6},
		{"P2 P2 P8 P8 P8 P3 P3 P3 P6 P7 P8 P3 P4 P5", "", 7},
		{"P1 P1 P1 P2 P3 P9 P7 P8 P9 P9 P9", "CKan DR", 6},
		{"WS WS P9 P7 P8 P9 P9 P9", "Pon P1, CKan DR", 4},
		{"WW C1 C2 C3 WW", "Pon B9, Pon P1, Pon C2", 0},
		{"B2 B2", "Pon B9, Pon P1, CKan C2, CKan B5", 2},
		{"B2 B2", "CKan B8, Pon P1, CKan C2, CKan B5", 4},
		{"P2 P2 P2 P9 P9", "Kan B1, CKan B2, CKan C2", 6},
		{"P4 P4 C6 P3 C5 B7 B6 P1 B8 B8", "CKan WE", 0},
		{"C6 C8 B7 B8 B9 P1 P2 P3 C2 C2 B6 B7 B9", "", 0},
		{"C6 C7 C8 B7 B8 B9 P1 P2 P3 DR DR B6 B7 B8", "", 0},
		{"C6 C7 C8 B7 B8 B9 P2 P3 C2 C2 B3 B4 B5 P1", "", 1},
		{"C6 C7 C8 B7 B8 B9 P1 P2 P3 WW B6 B7 B8 WW", "", 0},
		{"C6 C7 C8 B2 B3 B4 P1 P2 P3 C2 C2 B7 B8 B9", "", 1},
		{"DR DR DR B3 B4 B2 P2 P2", "CKan DW, Pon DG", 13},
		{"WE WE WE B3 B4 B2 WN WN", "CKan WW, Pon WS", 13},
		{"WE WE WE C9 C9 WN WN WN", "CKan WW, Pon WS", 13},
		{"B1 B2 B3 B4 B5 B6 B7 B8 B9 WN WN", "Kan P1", 1},
		{"B1 B1 B1 C2 C2 C2 C9 C9 C9 WW WW", "CKan DR", 13},
		{"C1 C1 C1 C9 C9 C9 B9 B9 B1 B1 B1", "Kan P9", 13},
		{"DG DG B2 B3 B4 B4 B4 B4", "Kan B6, Pon B8", 13},
		{"DG DG DG WE WE WN WN WN", "Kan DR, Pon WW", 13},
		{"C1 C1 C1 C5 C6 C7 C8 C9 C9 C9 C3", "Chi C2", 0},
		{"B1 B1 B1 B2 B3 B4 B5 B6 B7 B8 B1", "Pon B9", 0},
		{"P1 P1 P1 P2 P3 P4 P5 P6 P7 P8 P9 P9 P9 B9", "", 0},
		{"P1 P9 C1 C9 B1 B9 DR DG DW WW WE WS WN C2", "", 0},
		{"P1 P9 C1 C9 B1 B9 DR DG DW WW WE WS P1 P1", "", 0},
		{"C4 C5 C6 C7 B7 B8 B9 P2 P3 P4 C4", "Kan WS", 0},
		{"B6 B6", "Kan B5, Kan P3, CKan WE, CKan C9", 13},

		// pinfu
		{"C6 C7 C8 B6 B7 B8 P6 P7 P8 C2 C2 B6 B7 B8", "", 5},
		{"C6 C7 C8 B7 B8 B9 P1 P2 P3 C2 C2 B7 B8 B6", "", 1},
		{"C6 C7 C8 B7 B8 B9 P1 P2 P3 C2 C2 C3 C4 C5", "", 1},
		{"C6 C7 C8 B7 B8 B9 P1 P2 P3 C2 C2 B6 B7 B8", "", 1},

		// special shapes
		{"WE WE P9 P9 C9 C9 P1 P1 DR DR B3 B3 B4 B4", "", 2},
		{"C3 C3 P8 P8 C7 C7 P5 P5 P6 P6 B3 B3 B4 B4", "", 3},
		{"WE WE P9 P9 P8 P8 P1 P1 DR DR P3 P3 P4 P4", "", 5},
		{"B1 B1 B8 B8 B7 B7 B5 B5 B6 B6 B3 B3 B4 B4", "", 8},
		{"DR DR DG DG DW DW WE WE WW WW WN WN WS WS", "", 13},
		{"C1 C1 C1 C2 C3 C4 C5 C6 C7 C8 C9 C9 C9 C5", "", 13},
		{"B1 B1 B1 B2 B3 B4 B5 B6 B7 B8 B9 B9 B9 B1", "", 13},
		{"P1 P1 P1 P2 P3 P4 P5 P6 P7 P8 P9 P9 P9 P9", "", 13},
		{"P1 P9 C1 C9 B1 B9 DR DG DW WW WE WS WN B9", "", 13},
		{"P1 P9 C1 C9 B1 B9 DR DG DW WW WE WS WN DR", "", 13},
	}

	for i, c := range cases {
		got := YakuHan(mustTiles(t, c.hand), mustMelds(t, c.melds), noWinds)
		if got != c.expect {
			t.Fatalf("expect: %v, got: %v, case: %d, hand: %v %v", c.expect, got, i, c.hand, c.melds)
		}
	}
}

func TestYakuHanWinds(t *testing.T) {
	cases := []struct {
		hand   string
		melds  string
		ctx    Context
		expect int
	}{
		{"WE C2 C3 C4 WN WN WN DR B9 DR B8 B7 WE WE", "", NewContext(WE, WN, Ron), 2},
		{"WE C2 C3 C4 WN WN WN DR B9 DR B8 B7 WE WE", "", NewContext(WE, WN, Tsumo), 3},
		{"WE C2 C3 C4 WN WN WN DR B9 DR B8 B7 WE WE", "", NewContext(WE, WE, Ron), 2},
		{"WE C2 C3 C4 WN WN WN DR B9 DR B8 B7 WE WE", "", NewContext(WE, WS, Ron), 1},
		{"WE DW DW DW C4 C2 C3 DR B9 DR B8 B7 WE WE", "", NewContext(WE, WS, Ron), 2},
		{"C4 C5 C6 C7 B7 B8 B9 P2 P3 P4 C4", "Kan WS", NewContext(WE, WS, Ron), 1},
		{"C4 C5 C6 C7 B7 B8 B9 P2 P3 P4 C4", "CKan WS", NewContext(WE, WS, Ron), 1},
		{"WN B9 B6 WN B4 B8 B5 B7", "Chi B1, Chi P5", NewContext(WE, WW, Ron), 1},
		{"WN B9 B6 WN B4 B8 B5 B7", "Chi B1, Chi P5", NewContext(WE, WW, Tsumo), 1},
		// a drawn tile keeps the completed triplet concealed
		{"WN WN P9 P9 P9 C9 C9 C9 C3 C4 C5 B9 B9 B9", "", NewContext(IllegalTile, IllegalTile, Tsumo), 5},
		{"WE WE C2 C3 C4 C5 C6 C7 DR DR DR WN WN WN", "", NewContext(WS, WN, Ron), 5},
	}

	for i, c := range cases {
		got := YakuHan(mustTiles(t, c.hand), mustMelds(t, c.melds), c.ctx)
		if got != c.expect {
			t.Fatalf("expect: %v, got: %v, case: %d, ctx: %v", c.expect, got, i, c.ctx)
		}
	}
}

func TestDetect(t *testing.T) {
	cases := []struct {
		hand   string
		melds  string
		ctx    Context
		expect []string
	}{
		{"C6 C7 C8 B6 B7 B8 P6 P7 P8 C2 C2 B6 B7 B8", "", noWinds,
			[]string{YakuTanyao, YakuPinfu, YakuIipeikou, YakuSanshoku}},
		{"C6 C7 C8 B6 B7 B8 P6 P7 P8 C2 C2 B6 B7 B8", "", NewContext(WE, WS, Tsumo),
			[]string{YakuMenzenTsumo, YakuTanyao, YakuPinfu, YakuIipeikou, YakuSanshoku}},
		{"WE WE WE C9 C9 WN WN WN", "CKan WW, Pon WS", noWinds, []string{YakuDaisuushi}},
		{"B6 B6", "Kan B5, Kan P3, CKan WE, CKan C9", noWinds, []string{YakuSuukantsu}},
		{"DR DR DG DG DW DW WE WE WW WW WN WN WS WS", "", noWinds, []string{YakuTsuuiisou}},
		{"P1 P9 C1 C9 B1 B9 DR DG DW WW WE WS WN B9", "", noWinds, []string{YakuKokushi}},
		{"WE WE P9 P9 P8 P8 P1 P1 DR DR P3 P3 P4 P4", "", noWinds, []string{YakuChiitoitsu, YakuHonitsu}},
		{"B9 C9 C8 C7 C1 C2 C3 B1 B1 B1 B1 B2 B3 B9", "", noWinds, []string{YakuJunchan}},
	}

	for _, c := range cases {
		concealed, melds := mustTiles(t, c.hand), mustMelds(t, c.melds)
		best, ok := bestWin(concealed, melds, c.ctx)
		if !ok {
			t.Fatalf("expect: a complete hand, got: none, hand: %v", c.hand)
		}
		first := Detect(best.d, c.ctx)
		if !reflect.DeepEqual(first, Detect(best.d, c.ctx)) {
			t.Fatalf("Detect is not idempotent: %v", first)
		}
		var names []string
		for _, y := range first {
			names = append(names, y.Name)
		}
		if !reflect.DeepEqual(names, c.expect) {
			t.Fatalf("expect: %v, got: %v, hand: %v", c.expect, names, c.hand)
		}
	}
}

func TestYakuhaiStacks(t *testing.T) {
	hand := mustTiles(t, "WE WE WE C2 C3 C4 B5 B6 B7 P2 P2 P3 P4 P5")
	best, ok := bestWin(hand, nil, NewContext(WE, WE, Ron))
	if !ok {
		t.Fatalf("expect: a complete hand")
	}
	yaku := Detect(best.d, NewContext(WE, WE, Ron))
	if len(yaku) != 1 || yaku[0].Han != 2 {
		t.Fatalf("expect: a double wind yakuhai, got: %v", yaku)
	}
}

func BenchmarkYakuHan(b *testing.B) {
	hand := mustTiles(b, "P2 P2 P8 P8 P8 P3 P3 P3 P6 P7 P8 P3 P4 P5")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		YakuHan(hand, nil, noWinds)
	}
}
