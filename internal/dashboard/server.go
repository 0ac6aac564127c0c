// Package dashboard serves the pre-rendered report artifacts as two
// simple web pages: one for the team charts, one for the per-player
// distributions. No computation happens here; the batch must have run
// first.
package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Server wraps one dashboard page and its asset routes.
type Server struct {
	port   string
	server *http.Server
	log    *logrus.Entry
}

func newServer(port string, router *mux.Router, log *logrus.Entry) *Server {
	router.Use(RecoveryMiddleware(log))
	router.Use(LoggingMiddleware(log))
	return &Server{
		port: port,
		log:  log,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// Start blocks serving the dashboard.
func (s *Server) Start() error {
	s.log.WithField("port", s.port).Info("dashboard listening")
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// RecoveryMiddleware turns handler panics into 500 responses.
func RecoveryMiddleware(log *logrus.Entry) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.WithField("panic", fmt.Sprint(rec)).Error("handler panicked")
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LoggingMiddleware logs each request with its duration.
func LoggingMiddleware(log *logrus.Entry) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start).Round(time.Millisecond).String(),
			}).Debug("request served")
		})
	}
}

// assetRoutes mounts the reports tree under /assets/ so pages can embed
// the generated images and link the CSV/HTML artifacts.
func assetRoutes(router *mux.Router, reportsDir string) {
	fs := http.StripPrefix("/assets/", http.FileServer(http.Dir(reportsDir)))
	router.PathPrefix("/assets/").Handler(fs)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}
