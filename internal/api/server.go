package api

import (
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/gorilla/mux"

	"marketplace/infrastructure"
	"marketplace/internal/auth"
)

const requestsPerSecond = 10

type Server struct {
	router *mux.Router
}

func NewServer(authHandler *auth.Handler, gate *auth.Gate) *Server {
	router := mux.NewRouter()
	router.Use(Recover)
	router.Use(RequestLogger)
	router.Use(RateLimit(requestsPerSecond))

	router.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	auth.SetupAuthRoutes(router, authHandler, gate)

	return &Server{router: router}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}
	return server.ListenAndServe()
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	infrastructure.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

var Set = wire.NewSet(NewServer)
