// Package ws bridges a remote game engine onto the engine port over a
// websocket. The engine connects, introduces the game with HELLO, streams
// OBS messages and finishes with END; every OBS is answered with the
// DIRECTIVE the arbiter settled on for that tick.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"overmind/internal/engine"
	"overmind/internal/model"
	"overmind/internal/subagent"
)

const (
	handshakeTimeout = 5 * time.Second
	writeTimeout     = 5 * time.Second
)

type Config struct {
	Board *subagent.DirectiveBoard
	// ReadTimeout bounds the wait for each engine message. Zero waits forever.
	ReadTimeout time.Duration
	// RecordDir, when set, receives a compressed recording of every game.
	RecordDir string
	Logger    zerolog.Logger
}

// Bridge implements engine.Engine. Each Start waits for the next engine
// connection.
type Bridge struct {
	cfg      Config
	upgrader websocket.Upgrader
	conns    chan *websocket.Conn

	closeOnce sync.Once
	closed    chan struct{}
}

func NewBridge(cfg Config) *Bridge {
	if cfg.Board == nil {
		cfg.Board = &subagent.DirectiveBoard{}
	}
	return &Bridge{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns:  make(chan *websocket.Conn),
		closed: make(chan struct{}),
	}
}

func (b *Bridge) Board() *subagent.DirectiveBoard {
	return b.cfg.Board
}

// Handler upgrades engine connections and queues them for Start.
func (b *Bridge) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := b.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			b.cfg.Logger.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		select {
		case b.conns <- conn:
		case <-b.closed:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "bridge closed"), time.Now().Add(time.Second))
			_ = conn.Close()
		case <-r.Context().Done():
			_ = conn.Close()
		}
	}
}

// Close stops accepting games.
func (b *Bridge) Close() error {
	b.closeOnce.Do(func() { close(b.closed) })
	return nil
}

func (b *Bridge) Start(ctx context.Context, spec engine.GameSpec) (engine.Game, error) {
	var conn *websocket.Conn
	select {
	case conn = <-b.conns:
	case <-b.closed:
		return nil, errors.New("bridge closed")
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	info, err := b.handshake(conn, spec)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	g := &game{bridge: b, conn: conn, info: info, result: model.ResultUndecided}
	if b.cfg.RecordDir != "" {
		rec, err := engine.CreateRecording(filepath.Join(b.cfg.RecordDir, filepath.Base(info.ID)+".jsonl.zst"), info)
		if err != nil {
			b.cfg.Logger.Warn().Err(err).Msg("recording disabled for game")
		} else {
			g.rec = rec
		}
	}
	b.cfg.Logger.Info().Str("game", info.ID).Str("race", info.OpponentRace.String()).Msg("engine connected")
	return g, nil
}

func (b *Bridge) handshake(conn *websocket.Conn, spec engine.GameSpec) (engine.GameInfo, error) {
	_ = conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	hello, err := readMessage(conn)
	if err != nil {
		return engine.GameInfo{}, fmt.Errorf("read HELLO: %w", err)
	}
	if hello.Type != TypeHello {
		rejectWith(conn, "expected HELLO")
		return engine.GameInfo{}, fmt.Errorf("expected HELLO, got %q", hello.Type)
	}
	if hello.ProtocolVersion != ProtocolVersion {
		rejectWith(conn, "bad protocol_version")
		return engine.GameInfo{}, fmt.Errorf("unsupported protocol version %d", hello.ProtocolVersion)
	}
	info := engine.GameInfo{
		ID:           hello.GameID,
		Map:          hello.Map,
		OwnRace:      hello.OwnRace,
		OpponentRace: hello.OpponentRace,
		Difficulty:   hello.Difficulty,
	}
	if info.ID == "" {
		info.ID = uuid.NewString()
	}
	if !info.OwnRace.Playable() {
		info.OwnRace = spec.OwnRace
	}
	if !info.OpponentRace.Playable() {
		info.OpponentRace = spec.OpponentRace
	}
	if info.Difficulty == "" {
		info.Difficulty = spec.Difficulty
	}
	if !info.OpponentRace.Playable() {
		rejectWith(conn, "opponent race unknown")
		return engine.GameInfo{}, errors.New("engine did not name a concrete opponent race")
	}
	_ = conn.SetReadDeadline(time.Time{})
	if err := writeMessage(conn, Message{
		Type:            TypeWelcome,
		ProtocolVersion: ProtocolVersion,
		GameID:          info.ID,
		OwnRace:         info.OwnRace,
		OpponentRace:    info.OpponentRace,
		Difficulty:      info.Difficulty,
	}); err != nil {
		return engine.GameInfo{}, err
	}
	return info, nil
}

type game struct {
	bridge  *Bridge
	conn    *websocket.Conn
	info    engine.GameInfo
	rec     *engine.Recorder
	result  model.Result
	pending *int
	done    bool
}

func (g *game) Info() engine.GameInfo {
	return g.info
}

// Next answers the previous OBS, if any, then waits for the next message.
func (g *game) Next(ctx context.Context) (model.Snapshot, bool, error) {
	if g.done {
		return model.Snapshot{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		return model.Snapshot{}, false, err
	}
	if g.pending != nil {
		if err := g.reply(*g.pending); err != nil {
			g.done = true
			return model.Snapshot{}, false, err
		}
		g.pending = nil
	}

	for {
		if timeout := g.bridge.cfg.ReadTimeout; timeout > 0 {
			_ = g.conn.SetReadDeadline(time.Now().Add(timeout))
		}
		msg, err := readMessage(g.conn)
		if err != nil {
			g.done = true
			return model.Snapshot{}, false, fmt.Errorf("read engine message: %w", err)
		}
		switch msg.Type {
		case TypeObs:
			if msg.Snapshot == nil {
				g.bridge.cfg.Logger.Warn().Str("game", g.info.ID).Msg("OBS without snapshot ignored")
				continue
			}
			tick := msg.Snapshot.Tick
			g.pending = &tick
			if g.rec != nil {
				if err := g.rec.Write(*msg.Snapshot); err != nil {
					g.bridge.cfg.Logger.Warn().Err(err).Msg("recording write failed")
				}
			}
			return *msg.Snapshot, true, nil
		case TypeEnd:
			g.done = true
			if msg.Result != "" {
				g.result = msg.Result
			}
			return model.Snapshot{}, false, nil
		default:
			g.bridge.cfg.Logger.Debug().Str("type", msg.Type).Msg("unexpected engine message ignored")
		}
	}
}

func (g *game) reply(tick int) error {
	directive, ok := g.bridge.cfg.Board.Latest()
	if !ok || directive.Tick != tick {
		directive = subagent.Directive{Tick: tick}
	}
	return writeMessage(g.conn, Message{Type: TypeDirective, Directive: &directive})
}

func (g *game) Result() model.Result {
	return g.result
}

func (g *game) Close() error {
	if g.rec != nil {
		if err := g.rec.Close(g.result); err != nil {
			g.bridge.cfg.Logger.Warn().Err(err).Msg("recording close failed")
		}
		g.rec = nil
	}
	_ = g.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"), time.Now().Add(time.Second))
	return g.conn.Close()
}

func readMessage(conn *websocket.Conn) (Message, error) {
	_, data, err := conn.ReadMessage()
	if err != nil {
		return Message{}, err
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("decode message: %w", err)
	}
	return msg, nil
}

func writeMessage(conn *websocket.Conn, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, data)
}

func rejectWith(conn *websocket.Conn, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason), time.Now().Add(time.Second))
}
