package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type PageviewsHttpServer struct {
	router          *Router
	muxRouter       *mux.Router
	srv             *http.Server
	shutdownTimeout time.Duration
}

func NewPageviewsHttpServer(router *Router, muxRouter *mux.Router, addr string, shutdownTimeout time.Duration) *PageviewsHttpServer {
	return &PageviewsHttpServer{
		router:    router,
		muxRouter: muxRouter,
		srv: &http.Server{
			Addr:              addr,
			Handler:           muxRouter,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *PageviewsHttpServer) Start(ctx context.Context) error {
	s.router.RegisterRoutes()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[PageviewsHttpServer] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("[PageviewsHttpServer] Shutting down the server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Println("[PageviewsHttpServer] Server exiting")
	return nil
}
