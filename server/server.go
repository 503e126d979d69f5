package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cyclopcam/logs"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/uright/uright/server/backend"
	"github.com/uright/uright/server/notify"
	"github.com/uright/uright/server/userdb"
)

// Server is the uRight application server: it owns logins, sessions and the
// role gate, relays domain CRUD to the backend REST API, and pushes backend
// notifications down to browsers.
type Server struct {
	Log logs.Log

	userDB   *userdb.UserDB
	backend  *backend.Client
	feed     *notify.Feed
	hub      *notify.Hub
	push     *notify.Channel
	validate *validator.Validate

	signalIn   chan os.Signal
	httpServer *http.Server
	httpRouter *httprouter.Router
	wsUpgrader websocket.Upgrader
	pushCancel context.CancelFunc
}

func NewServer(logger logs.Log, cfg *Config) (*Server, error) {
	userDB, err := userdb.NewUserDB(logger, cfg.DB)
	if err != nil {
		return nil, err
	}
	feed := notify.NewFeed()
	hub := notify.NewHub(logger)
	s := &Server{
		Log:      logger,
		userDB:   userDB,
		backend:  backend.NewClient(logger, cfg.Backend.URL, cfg.Backend.Token, cfg.Backend.Timeout()),
		feed:     feed,
		hub:      hub,
		push:     notify.NewChannel(logger, cfg.Backend.URL, cfg.Backend.Token, feed, hub),
		validate: validator.New(),
	}
	if err := s.setupHttpRoutes(cfg.StaticRoot); err != nil {
		return nil, err
	}
	pushCtx, cancel := context.WithCancel(context.Background())
	s.pushCancel = cancel
	go s.push.Run(pushCtx)
	return s, nil
}

// port example: ":8080"
func (s *Server) ListenHTTP(port string) error {
	s.Log.Infof("Listening on %v", port)
	s.httpServer = &http.Server{
		Addr:    port,
		Handler: s.httpRouter,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) ListenForKillSignals() {
	s.signalIn = make(chan os.Signal, 1)
	signal.Notify(s.signalIn, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig, ok := <-s.signalIn
		if ok {
			s.Log.Infof("Received OS signal '%v', shutting down", sig.String())
			s.Shutdown()
		}
	}()
}

func (s *Server) Shutdown() {
	s.Log.Infof("Shutdown")
	signal.Stop(s.signalIn)
	close(s.signalIn)
	s.pushCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.Log.Warnf("Shutdown complete, with error: %v", err)
	} else {
		s.Log.Infof("Shutdown complete")
	}
	s.Log.Close()
}
