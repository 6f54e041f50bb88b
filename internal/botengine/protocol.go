package botengine

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/fbriere/rmahjong/internal/errutil"
	"github.com/fbriere/rmahjong/internal/game/mahjong"
	"github.com/pkg/errors"
)

// Commands understood by the bot.
const (
	cmdHand         = "HAND"
	cmdWall         = "WALL"
	cmdDoras        = "DORAS"
	cmdTurns        = "TURNS"
	cmdSets         = "SETS"
	cmdRoundWind    = "ROUND_WIND"
	cmdPlayerWind   = "PLAYER_WIND"
	cmdDiscard      = "DISCARD"
	cmdDiscardTiles = "DISCARD_TILES"
	cmdYaku         = "YAKU"
	cmdSteal        = "STEAL"
)

const errorPrefix = "Error"

// Discard actions answered to a DISCARD question.
const (
	ActionDiscard = "Discard"
	ActionKan     = "Kan"
)

// Decision is the answer to a DISCARD question.
type Decision struct {
	Action string
	Tile   mahjong.Tile
}

// Claim is the answer to a STEAL question. Meld is only set for Chi and
// Pon.
type Claim struct {
	Action mahjong.Action
	Meld   mahjong.Meld
}

func encodeTiles(buf *bytes.Buffer, cmd string, tiles mahjong.Tiles) {
	buf.WriteString(cmd + "\n")
	buf.WriteString(tiles.String() + "\n")
}

func encodeTile(buf *bytes.Buffer, cmd string, t mahjong.Tile) {
	buf.WriteString(cmd + "\n")
	buf.WriteString(t.String() + "\n")
}

func encodeInt(buf *bytes.Buffer, cmd string, n int) {
	fmt.Fprintf(buf, "%s\n%d\n", cmd, n)
}

// encodeSets writes each meld as "<Name> <tile> " followed by a newline.
func encodeSets(buf *bytes.Buffer, melds []mahjong.Meld) {
	for _, m := range melds {
		fmt.Fprintf(buf, "%s %s ", m.Name(), m.EngineTile())
	}
	buf.WriteString("\n")
}

// checkLine turns an error report of the bot into ErrBotError.
func checkLine(line string) (string, error) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, errorPrefix) {
		return "", errors.Wrapf(errutil.ErrBotError, "%s", line)
	}
	return line, nil
}

func parseTile(line string) (mahjong.Tile, error) {
	t, err := mahjong.ParseTile(line)
	if err != nil {
		return mahjong.IllegalTile, errors.Wrapf(errutil.ErrBotProtocol, "tile=%q", line)
	}
	return t, nil
}

func parseTiles(line string) (mahjong.Tiles, error) {
	tiles, err := mahjong.ParseTiles(line)
	if err != nil {
		return nil, errors.Wrapf(errutil.ErrBotProtocol, "tiles=%q", line)
	}
	return tiles, nil
}

func parseInt(line string) (int, error) {
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, errors.Wrapf(errutil.ErrBotProtocol, "int=%q", line)
	}
	return n, nil
}

// parseClaim reads "Pass", "Chi <tile>" or "Pon <tile>".
func parseClaim(line string) (Claim, error) {
	if line == string(mahjong.ActionPass) {
		return Claim{Action: mahjong.ActionPass}, nil
	}
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Claim{}, errors.Wrapf(errutil.ErrBotProtocol, "claim=%q", line)
	}
	t, err := parseTile(fields[1])
	if err != nil {
		return Claim{}, err
	}

	var m mahjong.Meld
	switch mahjong.Action(fields[0]) {
	case mahjong.ActionChi:
		m, err = mahjong.SequenceFrom(t, true)
	case mahjong.ActionPon:
		m, err = mahjong.NewTriplet(t, true)
	default:
		return Claim{}, errors.Wrapf(errutil.ErrBotProtocol, "claim=%q", line)
	}
	if err != nil {
		return Claim{}, errors.Wrapf(errutil.ErrBotProtocol, "claim=%q: %v", line, err)
	}
	return Claim{Action: mahjong.Action(fields[0]), Meld: m}, nil
}
