// Package server exposes almanac year data and rendered scene frames over
// HTTP.
package server

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/chrissnell/skyalmanac/internal/log"
	"github.com/chrissnell/skyalmanac/internal/store"
	"github.com/chrissnell/skyalmanac/pkg/almanac"
	"github.com/chrissnell/skyalmanac/pkg/config"
	"github.com/chrissnell/skyalmanac/pkg/responseformat"
	"github.com/chrissnell/skyalmanac/pkg/sky"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Server is the almanac HTTP API.
type Server struct {
	ctx       context.Context
	wg        *sync.WaitGroup
	cfg       config.ServerData
	store     store.Store
	years     *store.YearCache
	engine    sky.Engine
	facts     []string
	formatter *responseformat.Formatter

	rndMu sync.Mutex
	rnd   *rand.Rand

	Server http.Server
}

// New builds the server and its routes. Start begins listening.
func New(ctx context.Context, wg *sync.WaitGroup, cfg config.ServerData, st store.Store, engine sky.Engine, facts []string) *Server {
	s := &Server{
		ctx:       ctx,
		wg:        wg,
		cfg:       cfg,
		store:     st,
		years:     store.NewYearCache(st),
		engine:    engine,
		facts:     facts,
		formatter: responseformat.NewFormatter(cfg.EnableCORS),
		rnd:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}

	s.Server = http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler is the complete middleware and route stack.
func (s *Server) Handler() http.Handler {
	router := s.setupRouter()
	h := handlers.CompressHandler(router)
	return handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}), handlers.PrintRecoveryStack(true))(h)
}

func (s *Server) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware)

	// Static year data, in the layout the browser client fetches.
	router.HandleFunc("/data/facts/facts.json", s.GetFacts).Methods("GET")
	router.HandleFunc("/data/{year:[0-9]+}.{ext:json|msgpack}", s.GetYear).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/years", s.GetYears).Methods("GET")
	api.HandleFunc("/fact", s.GetFact).Methods("GET")
	api.HandleFunc("/day/{date}", s.GetDay).Methods("GET")
	api.HandleFunc("/frame/{date}", s.GetFrame).Methods("GET")
	api.HandleFunc("/sweep/{date}", s.GetSweep).Methods("GET")
	api.HandleFunc("/log/http", s.GetHTTPLog).Methods("GET")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// mux skips router.Use middleware for unmatched routes.
	router.NotFoundHandler = requestIDMiddleware(loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.formatter.WriteError(w, r, http.StatusNotFound, "not found")
	})))
	router.MethodNotAllowedHandler = requestIDMiddleware(loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.formatter.WriteError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})))
	return router
}

// Start listens on the configured address and serves until the context is
// cancelled, then shuts down gracefully. Bind errors are returned directly.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Server.Addr, err)
	}
	log.Infof("Almanac API listening on %s", ln.Addr())

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		if err := s.Server.Serve(ln); err != http.ErrServerClosed {
			log.Errorf("HTTP server error: %v", err)
		}
	}()

	go func() {
		defer s.wg.Done()
		<-s.ctx.Done()
		log.Info("Shutting down the HTTP server...")

		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.Server.Shutdown(ctx); err != nil {
			log.Warnf("HTTP server shutdown: %v", err)
		}
	}()

	return nil
}

func (s *Server) pickFact(prev string) string {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return almanac.PickFact(s.facts, prev, s.rnd)
}

// LoadFacts reads a JSON array of trivia from path. An empty path yields
// almanac.DefaultFacts.
func LoadFacts(path string) ([]string, error) {
	if path == "" {
		return almanac.DefaultFacts, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return almanac.DecodeFacts(f)
}

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	log.Errorf("panic in HTTP handler: %v", fmt.Sprint(v...))
}
