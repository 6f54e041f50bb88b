package errutil

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Shape faults: the caller handed the engine an impossible hand.
var (
	ErrUnknownTile  = errors.New("unknown tile")
	ErrIllegalMeld  = errors.New("illegal meld")
	ErrTileCount    = errors.New("a shortage or surplus of tiles")
	ErrIllegalScore = errors.New("no such han/fu combination")
	ErrNotWon       = errors.New("hand is not complete")
	ErrNoYaku       = errors.New("hand has no yaku")
)

// Transport faults: the external decision process misbehaved.
var (
	ErrBotError    = errors.New("bot reported an error")
	ErrBotExited   = errors.New("bot exited")
	ErrBotTimeout  = errors.New("bot response timeout")
	ErrBotDesync   = errors.New("bot response out of sync")
	ErrBotProtocol = errors.New("malformed bot response")
	ErrBotClosed   = errors.New("bot engine closed")
)

// Table faults.
var (
	ErrIllegalParameter = errors.New("illegal parameter")
	ErrSeatNotFound     = errors.New("seat not found")
	ErrSeatUnavailable  = errors.New("seat unavailable")
	ErrNoBotName        = errors.New("no bot name left")
	ErrPermissionDenied = errors.New("permission denied")
)

var transport = map[error]bool{
	ErrBotError:    true,
	ErrBotExited:   true,
	ErrBotTimeout:  true,
	ErrBotDesync:   true,
	ErrBotProtocol: true,
	ErrBotClosed:   true,
}

//Code code for the error, wrapped errors are unwrapped first
func Code(err error) int {
	if c, ok := errs[pkgerrors.Cause(err)]; ok {
		return c
	}
	return Unknown
}

// IsTransport reports whether err is a fault of the bot transport rather than
// a rules fault.
func IsTransport(err error) bool {
	return transport[pkgerrors.Cause(err)]
}
