package hub

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-portal/internal/favorites"
	"github.com/DoyleJ11/lol-portal/internal/session"
	"github.com/DoyleJ11/lol-portal/internal/storage"
)

type HubMsg interface{ isHubMsg() }

type GetSession struct {
	ID    string
	Reply chan *session.Session
}

type EnsureSession struct {
	ID    string
	Reply chan *session.Session
}

// RemoveSession drops and closes a session. With Session set, only that
// exact session is removed, so a late expiry cannot close its replacement.
type RemoveSession struct {
	ID      string
	Session *session.Session
}

type ShutdownHub struct{}

func (GetSession) isHubMsg()    {}
func (EnsureSession) isHubMsg() {}
func (RemoveSession) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

// Deps is what every new session is built from.
type Deps struct {
	Library      session.ContentProvider
	Slot         storage.Slot
	FavoritesKey string
	// IdleTimeout closes sessions with no subscribers and no traffic; zero
	// keeps them for the life of the hub.
	IdleTimeout time.Duration
	Logger      *zap.Logger
}

type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*session.Session
	deps     Deps
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, deps Deps) *Hub {
	if deps.FavoritesKey == "" {
		deps.FavoritesKey = favorites.DefaultKey
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*session.Session),
		deps:     deps,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// FavoritesKey is the storage slot key for a visitor's favorites.
func (h *Hub) FavoritesKey(id string) string {
	return h.deps.FavoritesKey + ":" + id
}

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case EnsureSession:
				if s := h.live(msg.ID); s != nil {
					msg.Reply <- s
					break
				}
				msg.Reply <- h.create(msg.ID)

			case GetSession:
				msg.Reply <- h.live(msg.ID) // May be nil

			case RemoveSession:
				s := h.sessions[msg.ID]
				if s == nil || (msg.Session != nil && msg.Session != s) {
					break
				}
				s.Close()
				delete(h.sessions, msg.ID)
				h.deps.Logger.Info("session removed", zap.String("session", msg.ID), zap.Int("sessions", len(h.sessions)))

			case ShutdownHub:
				h.shutdown()
				h.cancel()
				return
			}
		}
	}
}

// live returns the registered session unless it has already shut down.
func (h *Hub) live(id string) *session.Session {
	s := h.sessions[id]
	if s == nil {
		return nil
	}
	select {
	case <-s.Done():
		delete(h.sessions, id)
		return nil
	default:
		return s
	}
}

func (h *Hub) create(id string) *session.Session {
	logger := h.deps.Logger
	favs := favorites.Open(h.ctx, h.deps.Slot, h.FavoritesKey(id), logger)

	var opts []session.Option
	if h.deps.IdleTimeout > 0 {
		opts = append(opts, session.WithIdleTimeout(h.deps.IdleTimeout, h.expire))
	}
	s := session.New(h.ctx, id, h.deps.Library, favs, logger, opts...)
	h.sessions[id] = s
	logger.Info("session created", zap.String("session", id), zap.Int("sessions", len(h.sessions)))
	return s
}

// expire runs on the idle session's goroutine.
func (h *Hub) expire(s *session.Session) {
	select {
	case h.inbox <- RemoveSession{ID: s.ID(), Session: s}:
	case <-h.ctx.Done():
	}
}

func (h *Hub) shutdown() {
	for _, s := range h.sessions {
		s.Close()
	}
	clear(h.sessions)
}

// Lookup asks the hub for a session, nil when unknown.
func (h *Hub) Lookup(ctx context.Context, id string) *session.Session {
	return h.request(ctx, func(reply chan *session.Session) HubMsg { return GetSession{ID: id, Reply: reply} })
}

// Ensure returns the session for id, creating it when needed.
func (h *Hub) Ensure(ctx context.Context, id string) *session.Session {
	return h.request(ctx, func(reply chan *session.Session) HubMsg { return EnsureSession{ID: id, Reply: reply} })
}

func (h *Hub) request(ctx context.Context, build func(chan *session.Session) HubMsg) *session.Session {
	reply := make(chan *session.Session, 1)
	select {
	case h.inbox <- build(reply):
	case <-h.ctx.Done():
		return nil
	case <-ctx.Done():
		return nil
	}
	select {
	case s := <-reply:
		return s
	case <-h.ctx.Done():
		return nil
	case <-ctx.Done():
		return nil
	}
}
