package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"musicbridge/config"
	"musicbridge/core/feed"
	"musicbridge/core/snapshot"
	"musicbridge/logger"

	"github.com/gorilla/mux"
)

// Server exposes the snapshot builder over HTTP and the player feed over
// websocket.
type Server struct {
	cfg     *config.Config
	builder *snapshot.Builder
	hub     *feed.Hub
	redis   *feed.RedisPublisher // optional
	router  *mux.Router
}

// New wires the routes. hub may be nil, in which case the websocket route
// answers 503; redis may be nil.
func New(cfg *config.Config, builder *snapshot.Builder, hub *feed.Hub, redis *feed.RedisPublisher) *Server {
	s := &Server{cfg: cfg, builder: builder, hub: hub, redis: redis}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()

	// CORS
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	router.HandleFunc("/api/status", s.StatusHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(s.AuthMiddleware)

	api.HandleFunc("/query", s.QueryHandler).Methods(http.MethodPost)
	api.HandleFunc("/tracks", s.AllTracksHandler).Methods(http.MethodGet)
	api.HandleFunc("/tracks/current", s.CurrentTrackHandler).Methods(http.MethodGet)
	api.HandleFunc("/tracks/{id:[0-9]+}", s.TrackHandler).Methods(http.MethodGet)
	api.HandleFunc("/tracks/{id:[0-9]+}/artworks", s.ArtworksHandler).Methods(http.MethodGet)
	api.HandleFunc("/playlists/{id:[0-9]+}", s.PlaylistHandler).Methods(http.MethodGet)
	api.HandleFunc("/playlists/{id:[0-9]+}/tracks", s.PlaylistTracksHandler).Methods(http.MethodGet)
	api.HandleFunc("/playlists/{id:[0-9]+}/search", s.SearchHandler).Methods(http.MethodGet)
	api.HandleFunc("/application", s.ApplicationHandler).Methods(http.MethodGet)
	api.HandleFunc("/player", s.PlayerHandler).Methods(http.MethodGet)
	api.HandleFunc("/ws/player", s.PlayerFeedHandler).Methods(http.MethodGet)

	return router
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.cfg.ServerAddr,
		Handler:     s.router,
		ReadTimeout: 30 * time.Second,
		// Whole-library snapshots can take minutes over the bridge.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			logger.String("addr", s.cfg.ServerAddr),
			logger.Bool("auth", s.cfg.APISecret != ""))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
