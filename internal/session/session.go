package session

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-portal/internal/catalog"
	"github.com/DoyleJ11/lol-portal/internal/compare"
	"github.com/DoyleJ11/lol-portal/internal/engine"
	"github.com/DoyleJ11/lol-portal/internal/favorites"
	"github.com/DoyleJ11/lol-portal/internal/view"
	"github.com/DoyleJ11/lol-portal/pkg/types"
)

var ErrClosed = errors.New("session closed")

type Msg interface{ isSessionMsg() }

// FromClient carries one intent. Reply, when set, receives the outcome.
type FromClient struct {
	ClientID string
	Cmd      engine.Command
	Reply    chan Result
}

func (FromClient) isSessionMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

type GetMatchup struct {
	Reply chan MatchupResult
}

func (GetMatchup) isSessionMsg() {}

// Snapshot is what subscribers receive. Err is set only on the copy sent to
// the client whose intent was rejected.
type Snapshot struct {
	Version int
	Page    types.Snapshot
	Err     string
}

type Result struct {
	Snapshot Snapshot
	Err      error
}

type MatchupResult struct {
	Matchup compare.Matchup
	Err     error
}

type View struct {
	Version    int
	NumClients int
	State      engine.State
	Page       types.Snapshot
}

// ContentProvider returns the current content, nil while loading.
type ContentProvider interface {
	Content() *catalog.Content
}

// Session owns one visitor's page state. All mutations happen on its
// goroutine.
type Session struct {
	id      string
	inbox   chan Msg
	library ContentProvider
	favs    *favorites.Store
	state   engine.State
	version int
	clients map[string]chan Snapshot
	rng     *rand.Rand
	logger  *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc

	idle       time.Duration
	onIdle     func(*Session)
	lastActive time.Time
}

type Option func(*Session)

// WithIdleTimeout closes the session once it has had no subscribers and no
// messages for d, then calls onIdle.
func WithIdleTimeout(d time.Duration, onIdle func(*Session)) Option {
	return func(s *Session) {
		s.idle = d
		s.onIdle = onIdle
	}
}

func New(parent context.Context, id string, library ContentProvider, favs *favorites.Store, logger *zap.Logger, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(parent)

	s := &Session{
		id:      id,
		inbox:   make(chan Msg, 64),
		library: library,
		favs:    favs,
		state:   engine.NewState(),
		clients: make(map[string]chan Snapshot),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:  logger.With(zap.String("session", id)),
		ctx:     ctx,
		cancel:  cancel,

		lastActive: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.loop()
	return s
}

func (s *Session) ID() string { return s.id }

// Done is closed once the session has shut down.
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

// Close stops the session; subscribers see their outbox closed.
func (s *Session) Close() { s.cancel() }

func (s *Session) loop() {
	var idleTick <-chan time.Time
	if s.idle > 0 {
		t := time.NewTicker(s.idle / 2)
		defer t.Stop()
		idleTick = t.C
	}

	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case <-idleTick:
			if len(s.clients) > 0 || time.Since(s.lastActive) < s.idle {
				continue
			}
			s.logger.Info("session idle, closing")
			s.shutdown()
			if s.onIdle != nil {
				s.onIdle(s)
			}
			return

		case m := <-s.inbox:
			s.lastActive = time.Now()
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				s.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- s.snapshot()

			case Leave:
				delete(s.clients, msg.ClientID)

			case FromClient:
				s.handle(msg)

			case GetState:
				msg.Reply <- View{
					Version:    s.version,
					NumClients: len(s.clients),
					State:      s.state,
					Page:       s.snapshot().Page,
				}

			case GetMatchup:
				var res MatchupResult
				if content := s.library.Content(); content.Status(catalog.SectionChampions) == catalog.StatusLoading {
					res.Err = engine.ErrContentLoading
				} else {
					res.Matchup, res.Err = compare.BuildMatchup(content.Champions, s.state.Compare, s.rng)
				}
				msg.Reply <- res

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) handle(msg FromClient) {
	events, newState, err := engine.Apply(s.library.Content(), s.state, msg.Cmd)
	if err != nil {
		s.logger.Debug("intent rejected", zap.String("type", string(msg.Cmd.Type)), zap.Error(err))
		s.reject(msg, err)
		return
	}

	for _, evt := range events {
		if evt.Type != engine.EvtFavoriteToggled {
			continue
		}
		added, err := s.favs.Toggle(s.ctx, evt.Name)
		if err != nil {
			s.logger.Error("persist favorite", zap.String("champion", evt.Name), zap.Error(err))
			s.reject(msg, err)
			return
		}
		s.logger.Debug("favorite toggled", zap.String("champion", evt.Name), zap.Bool("favorite", added))
	}

	s.state = newState
	if len(events) == 0 {
		// e.g. a key press that did not finish the sequence
		s.reply(msg, Result{Snapshot: s.snapshot()})
		return
	}

	s.version++
	snap := s.snapshot()
	s.broadcast(snap)
	s.reply(msg, Result{Snapshot: snap})
}

func (s *Session) reject(msg FromClient, err error) {
	snap := s.snapshot()
	snap.Err = err.Error()
	if ch, ok := s.clients[msg.ClientID]; ok {
		select {
		case ch <- snap:
		default:
		}
	}
	s.reply(msg, Result{Snapshot: snap, Err: err})
}

func (s *Session) reply(msg FromClient, res Result) {
	if msg.Reply == nil {
		return
	}
	select {
	case msg.Reply <- res:
	default:
		// Reply channels are buffered by callers; a full one means nobody is
		// waiting anymore.
	}
}

func (s *Session) snapshot() Snapshot {
	page := view.Build(s.library.Content(), s.state, s.favs)
	page.Version = s.version
	return Snapshot{Version: s.version, Page: page}
}

func (s *Session) shutdown() {
	for id, ch := range s.clients {
		close(ch) // Tell client no more snapshots
		delete(s.clients, id)
	}
	s.cancel()
}

func (s *Session) broadcast(snap Snapshot) {
	for id, ch := range s.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(s.clients, id)
		}
	}
}

// Expose the inbox so tests or the WS layer can send messages.
func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Send delivers m unless the session or ctx is done first.
func (s *Session) Send(ctx context.Context, m Msg) error {
	select {
	case s.inbox <- m:
		return nil
	case <-s.ctx.Done():
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func await[T any](ctx context.Context, s *Session, reply <-chan T) (T, error) {
	var zero T
	select {
	case v := <-reply:
		return v, nil
	case <-s.ctx.Done():
		return zero, ErrClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Apply sends one intent and waits for its outcome.
func (s *Session) Apply(ctx context.Context, clientID string, cmd engine.Command) (Result, error) {
	reply := make(chan Result, 1)
	if err := s.Send(ctx, FromClient{ClientID: clientID, Cmd: cmd, Reply: reply}); err != nil {
		return Result{}, err
	}
	return await(ctx, s, reply)
}

func (s *Session) View(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	if err := s.Send(ctx, GetState{Reply: reply}); err != nil {
		return View{}, err
	}
	return await(ctx, s, reply)
}

func (s *Session) Matchup(ctx context.Context) (compare.Matchup, error) {
	reply := make(chan MatchupResult, 1)
	if err := s.Send(ctx, GetMatchup{Reply: reply}); err != nil {
		return compare.Matchup{}, err
	}
	res, err := await(ctx, s, reply)
	if err != nil {
		return compare.Matchup{}, err
	}
	return res.Matchup, res.Err
}
