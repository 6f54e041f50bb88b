package errutil

const (
	codeBase = 1000
)

const (
	Unknown = codeBase + iota
	unknownTile
	illegalMeld
	tileCount
	illegalScore
	notWon
	noYaku

	botError
	botExited
	botTimeout
	botDesync
	botProtocol
	botClosed

	illegalParameter
	seatNotFound
	seatUnavailable
	noBotName
	permissionDenied
)

var errs = map[error]int{
	ErrUnknownTile:  unknownTile,
	ErrIllegalMeld:  illegalMeld,
	ErrTileCount:    tileCount,
	ErrIllegalScore: illegalScore,
	ErrNotWon:       notWon,
	ErrNoYaku:       noYaku,

	ErrBotError:    botError,
	ErrBotExited:   botExited,
	ErrBotTimeout:  botTimeout,
	ErrBotDesync:   botDesync,
	ErrBotProtocol: botProtocol,
	ErrBotClosed:   botClosed,

	ErrIllegalParameter: illegalParameter,
	ErrSeatNotFound:     seatNotFound,
	ErrSeatUnavailable:  seatUnavailable,
	ErrNoBotName:        noBotName,
	ErrPermissionDenied: permissionDenied,
}
