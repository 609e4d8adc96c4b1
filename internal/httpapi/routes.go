package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-portal/internal/hub"
	"github.com/DoyleJ11/lol-portal/internal/session"
	"github.com/DoyleJ11/lol-portal/internal/ws"
)

func SetupRoutes(h *hub.Hub, lib session.ContentProvider, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, logger))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5))
		r.Use(middleware.Timeout(30 * time.Second))

		r.Route("/api", func(r chi.Router) {
			r.Get("/sections/{section}", Section(lib))
			r.Get("/champions", Champions(lib))
			r.Get("/champions/suggest", Suggest(lib))
			r.Get("/champions/random", RandomChampion(lib))
		})
		r.Get("/fragments/{section}", Fragment(lib))

		r.Post("/sessions", CreateSession(h))
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", GetSession(h))
			r.Get("/page", SessionPage(h))
			r.Post("/intents", PostIntent(h))
			r.Get("/compare", Compare(h))
		})
	})
	return r
}

// RequestLogger logs one line per request at debug, or warn for 5xx.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			}
			if ww.Status() >= http.StatusInternalServerError {
				logger.Warn("request", fields...)
				return
			}
			logger.Debug("request", fields...)
		})
	}
}
