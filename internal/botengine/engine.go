package botengine

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/fbriere/rmahjong/internal/async"
	"github.com/fbriere/rmahjong/internal/errutil"
	"github.com/fbriere/rmahjong/internal/game/mahjong"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("component", "bot")

const defaultTimeout = 10 * time.Second

// Config describes how to start a bot process.
type Config struct {
	Path    string
	Args    []string
	Env     []string // appended to the parent environment
	Timeout time.Duration
}

// Engine talks to one bot process. Commands and questions are serialized,
// a question waits for exactly one answer.
type Engine struct {
	id      string
	timeout time.Duration
	logger  *log.Entry

	mu     sync.Mutex
	closed bool

	cmd   *exec.Cmd
	stdin io.WriteCloser
	lines chan string   // answers read from the bot, at most one buffered
	eof   chan struct{} // closed once the bot stdout is closed
	quit  chan struct{} // closed by Close
}

// Start launches the bot process and its reader goroutine.
func Start(cfg Config) (*Engine, error) {
	if cfg.Path == "" {
		return nil, errors.Wrap(errutil.ErrIllegalParameter, "empty bot path")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cmd := exec.Command(cfg.Path, cfg.Args...)
	if len(cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), cfg.Env...)
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "start bot %s", cfg.Path)
	}

	id := uuid.New()
	e := &Engine{
		id:      id,
		timeout: timeout,
		logger:  logger.WithField("bot", id),
		cmd:     cmd,
		stdin:   stdin,
		lines:   make(chan string, 1),
		eof:     make(chan struct{}),
		quit:    make(chan struct{}),
	}

	async.Run("bot-reader", func() { e.read(stdout) })
	e.logger.Debugf("bot started, path=%s, pid=%d", cfg.Path, cmd.Process.Pid)
	return e, nil
}

// ID is the session id of the bot process.
func (e *Engine) ID() string {
	return e.id
}

func (e *Engine) read(r io.Reader) {
	defer close(e.eof)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case e.lines <- scanner.Text():
		case <-e.quit:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		e.logger.Debugf("bot reader stopped: %v", err)
	}
}

// checkIdle fails when the bot sent a line nobody asked for, or is gone.
func (e *Engine) checkIdle() error {
	if e.closed {
		return errutil.ErrBotClosed
	}
	select {
	case line := <-e.lines:
		return errors.Wrapf(errutil.ErrBotDesync, "unsolicited line=%q", line)
	default:
	}
	select {
	case <-e.eof:
		return errutil.ErrBotExited
	default:
	}
	return nil
}

func (e *Engine) send(buf *bytes.Buffer) error {
	if err := e.checkIdle(); err != nil {
		return err
	}
	if _, err := e.stdin.Write(buf.Bytes()); err != nil {
		return errors.Wrapf(errutil.ErrBotExited, "write: %v", err)
	}
	return nil
}

func (e *Engine) command(encode func(buf *bytes.Buffer)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	buf := &bytes.Buffer{}
	encode(buf)
	return e.send(buf)
}

// readLine waits for the next answer line. Caller holds the lock.
func (e *Engine) readLine(ctx context.Context) (string, error) {
	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case line := <-e.lines:
		return checkLine(line)
	case <-e.eof:
		// the last line may still be buffered
		select {
		case line := <-e.lines:
			return checkLine(line)
		default:
		}
		return "", errutil.ErrBotExited
	case <-timer.C:
		return "", errors.Wrapf(errutil.ErrBotTimeout, "no answer after %s", e.timeout)
	case <-ctx.Done():
		return "", errors.Wrap(errutil.ErrBotTimeout, ctx.Err().Error())
	}
}

// ask sends a question, then reads its answer through parse.
func (e *Engine) ask(ctx context.Context, encode func(buf *bytes.Buffer), parse func(ctx context.Context) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	buf := &bytes.Buffer{}
	encode(buf)
	if err := e.send(buf); err != nil {
		return err
	}
	err := parse(ctx)
	if err != nil {
		e.logger.Debugf("bot question failed: %v", err)
	}
	return err
}

func (e *Engine) SetHand(tiles mahjong.Tiles) error {
	return e.command(func(buf *bytes.Buffer) { encodeTiles(buf, cmdHand, tiles) })
}

func (e *Engine) SetWall(tiles mahjong.Tiles) error {
	return e.command(func(buf *bytes.Buffer) { encodeTiles(buf, cmdWall, tiles) })
}

func (e *Engine) SetDoras(tiles mahjong.Tiles) error {
	return e.command(func(buf *bytes.Buffer) { encodeTiles(buf, cmdDoras, tiles) })
}

func (e *Engine) SetTurns(turns int) error {
	return e.command(func(buf *bytes.Buffer) { encodeInt(buf, cmdTurns, turns) })
}

func (e *Engine) SetSets(melds []mahjong.Meld) error {
	return e.command(func(buf *bytes.Buffer) {
		buf.WriteString(cmdSets + "\n")
		encodeSets(buf, melds)
	})
}

func (e *Engine) SetRoundWind(t mahjong.Tile) error {
	return e.command(func(buf *bytes.Buffer) { encodeTile(buf, cmdRoundWind, t) })
}

func (e *Engine) SetPlayerWind(t mahjong.Tile) error {
	return e.command(func(buf *bytes.Buffer) { encodeTile(buf, cmdPlayerWind, t) })
}

// QuestionDiscard asks which tile to discard, or which quad to declare.
func (e *Engine) QuestionDiscard(ctx context.Context) (Decision, error) {
	var d Decision
	err := e.ask(ctx, func(buf *bytes.Buffer) { buf.WriteString(cmdDiscard + "\n") }, func(ctx context.Context) error {
		line, err := e.readLine(ctx)
		if err != nil {
			return err
		}
		switch line {
		case ActionDiscard, ActionKan:
			d.Action = line
			if line, err = e.readLine(ctx); err != nil {
				return err
			}
		default:
			d.Action = ActionDiscard
		}
		d.Tile, err = parseTile(line)
		return err
	})
	return d, err
}

// QuestionDiscardTiles asks for every tile the bot considers discarding.
func (e *Engine) QuestionDiscardTiles(ctx context.Context) (mahjong.Tiles, error) {
	var tiles mahjong.Tiles
	err := e.ask(ctx, func(buf *bytes.Buffer) { buf.WriteString(cmdDiscardTiles + "\n") }, func(ctx context.Context) error {
		line, err := e.readLine(ctx)
		if err != nil {
			return err
		}
		tiles, err = parseTiles(line)
		return err
	})
	return tiles, err
}

// QuestionYaku asks the bot to count the han of its hand.
func (e *Engine) QuestionYaku(ctx context.Context) (int, error) {
	var han int
	err := e.ask(ctx, func(buf *bytes.Buffer) { buf.WriteString(cmdYaku + "\n") }, func(ctx context.Context) error {
		line, err := e.readLine(ctx)
		if err != nil {
			return err
		}
		han, err = parseInt(line)
		return err
	})
	return han, err
}

// QuestionSteal offers a discard and the sets it could complete.
func (e *Engine) QuestionSteal(ctx context.Context, tile mahjong.Tile, melds []mahjong.Meld) (Claim, error) {
	var c Claim
	encode := func(buf *bytes.Buffer) {
		encodeTile(buf, cmdSteal, tile)
		encodeSets(buf, melds)
	}
	err := e.ask(ctx, encode, func(ctx context.Context) error {
		line, err := e.readLine(ctx)
		if err != nil {
			return err
		}
		c, err = parseClaim(line)
		return err
	})
	return c, err
}

// Close stops the bot process. It is safe to call more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	close(e.quit)
	e.stdin.Close()
	if err := e.cmd.Process.Kill(); err != nil {
		e.logger.Debugf("kill bot: %v", err)
	}
	e.cmd.Wait()
	e.logger.Debug("bot stopped")
	return nil
}
