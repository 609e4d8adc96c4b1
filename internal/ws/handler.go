package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-portal/internal/hub"
	"github.com/DoyleJ11/lol-portal/internal/session"
	"github.com/DoyleJ11/lol-portal/internal/types"
)

const (
	writeTimeout = 3 * time.Second
	readTimeout  = 5 * time.Minute
)

// Handler upgrades GET /ws?session={id}. Intents come in as ClientMessage,
// snapshots go out as ServerMessage.
func Handler(h *hub.Hub, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("session")
		if id == "" {
			http.Error(w, "missing session", http.StatusBadRequest)
			return
		}

		s := h.Lookup(r.Context(), id)
		if s == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			logger.Debug("ws accept", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := uuid.NewString()
		log := logger.With(zap.String("session", id), zap.String("client", clientID))

		out := make(chan session.Snapshot, 8)
		if err := s.Send(r.Context(), session.Join{ClientID: clientID, Outbox: out}); err != nil {
			return
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = s.Send(ctx, session.Leave{ClientID: clientID})
		}()
		log.Debug("client joined")

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				select {
				case snap, ok := <-out:
					if !ok {
						// Session dropped us or shut down.
						conn.Close(websocket.StatusGoingAway, "session closed")
						return
					}
					if write(writeCtx, conn, types.SnapshotMessage(snap.Version, snap.Page, snap.Err)) != nil {
						return
					}
				case <-writeCtx.Done():
					return
				}
			}
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("ws read", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := sonic.Unmarshal(data, &cm); err != nil {
				_ = write(r.Context(), conn, types.ErrorMessage("bad json"))
				continue
			}

			cmd, err := cm.ToCommand()
			if err != nil {
				_ = write(r.Context(), conn, types.ErrorMessage(err.Error()))
				continue
			}

			// The outcome arrives through out, rejections included.
			if err := s.Send(r.Context(), session.FromClient{ClientID: clientID, Cmd: cmd}); err != nil {
				return
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) error {
	payload, err := sonic.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}
