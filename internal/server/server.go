// Package server provides the HTTP REST API for the job application
// assistant.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/laudatorai/laudator/internal/config"
	"github.com/laudatorai/laudator/internal/coverletter"
	"github.com/laudatorai/laudator/internal/db"
	"github.com/laudatorai/laudator/internal/llm"
	"github.com/laudatorai/laudator/internal/render"
	"github.com/laudatorai/laudator/internal/resume"
	"github.com/laudatorai/laudator/internal/scrape"
	"github.com/laudatorai/laudator/internal/server/ratelimit"
	"github.com/laudatorai/laudator/internal/storage"
)

// maxBackgroundWorkers bounds concurrent scrape/normalize/tailor work.
const maxBackgroundWorkers = 4

// Server is the HTTP API server and its collaborators.
type Server struct {
	httpServer *http.Server
	db         *db.DB
	store      storage.Store
	scraper    *scrape.Scraper
	parser     *resume.Parser
	letters    *coverletter.Generator
	registry   *render.Registry
	validate   *validator.Validate
	limiter    *ratelimit.Limiter

	workers *errgroup.Group
	llm     llm.Client
}

// New wires the server from configuration: database, blob store, scraper,
// template registry and, when an API key is configured, the LLM client.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}

	store, err := storage.NewFileStore(cfg.BlobDir)
	if err != nil {
		database.Close()
		return nil, err
	}

	registry, err := render.NewRegistry()
	if err != nil {
		database.Close()
		return nil, err
	}

	var client llm.Client
	if cfg.APIKey != "" {
		client, err = llm.NewGeminiClient(ctx, cfg.APIKey)
		if err != nil {
			database.Close()
			return nil, err
		}
	} else {
		log.Printf("[server] GEMINI_API_KEY not set, cover letters use the template fallback")
	}

	workers := &errgroup.Group{}
	workers.SetLimit(maxBackgroundWorkers)

	s := &Server{
		db:       database,
		store:    store,
		scraper:  scrape.NewScraper(),
		parser:   resume.NewParser(),
		letters:  coverletter.NewGenerator(client),
		registry: registry,
		validate: validator.New(),
		limiter:  ratelimit.NewLimiter(120, time.Minute),
		workers:  workers,
		llm:      client,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/v1/jobs", s.handleCreateJob)
	mux.HandleFunc("GET /api/v1/jobs", s.handleListJobs)
	mux.HandleFunc("GET /api/v1/jobs/{id}", s.handleGetJob)

	mux.HandleFunc("POST /api/v1/resumes", s.handleCreateResume)
	mux.HandleFunc("GET /api/v1/resumes/{id}", s.handleGetResume)

	mux.HandleFunc("POST /api/v1/applications", s.handleCreateApplication)
	mux.HandleFunc("GET /api/v1/applications/{id}", s.handleGetApplication)
	mux.HandleFunc("GET /api/v1/applications/{id}/preview", s.handlePreview)

	return mux
}

// Start listens for requests until interrupted, then drains background work
// and shuts down.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[server] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[server] error: %v", err)
		}
	}()

	<-stop
	log.Println("[server] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Let in-flight background processing finish before closing the pool.
	if err := s.workers.Wait(); err != nil {
		log.Printf("[server] background worker error: %v", err)
	}

	s.limiter.Stop()
	if s.llm != nil {
		_ = s.llm.Close()
	}
	s.db.Close()
	log.Println("[server] stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRateLimit rejects clients that exceed the per-IP limit.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.limiter.Allow(clientIP(r))
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		}
		if !allowed {
			if info.RetryAfter > 0 {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
			}
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// enqueue hands a task to the bounded worker pool without blocking, reporting
// whether a slot was free.
func (s *Server) enqueue(task func()) bool {
	return s.workers.TryGo(func() error {
		task()
		return nil
	})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// decodeAndValidate decodes a JSON request body into dst and runs struct
// validation on it.
func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := s.validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}
