package score

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-jigsaw/internal/config"
	"github.com/vovakirdan/tui-jigsaw/internal/storage"
)

// Ledger is the storage the server needs: uploads plus tag lookups.
type Ledger interface {
	Uploader
	RecordsByTag(ctx context.Context, name, value string, limit int) ([]storage.Record, error)
}

// Server is the scoring HTTP service.
type Server struct {
	cfg    config.ScoreServerConfig
	ledger Ledger
	logger *log.Logger
	srv    *http.Server
}

// NewServer wires the routes:
//
//	POST /score    submit a completion
//	GET  /scores   recent submissions (?nickname=, ?limit=)
//	GET  /healthz  liveness
func NewServer(cfg config.ScoreServerConfig, ledger Ledger, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "score",
		})
	}
	if cfg.App == "" {
		cfg.App = DefaultApp
	}

	s := &Server{cfg: cfg, ledger: ledger, logger: logger}
	s.srv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/score", NewHandler(s.ledger, HandlerConfig{
		App:          s.cfg.App,
		AcceptZero:   s.cfg.AcceptZero,
		MaxBodyBytes: s.cfg.MaxBodyBytes,
	}, s.logger))
	mux.HandleFunc("/scores", s.handleList)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return requestLogger(s.logger, mux)
}

// listEntry is one row of the /scores response.
type listEntry struct {
	TxID      string    `json:"txId"`
	Nickname  string    `json:"nickname"`
	Moves     string    `json:"moves"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		limit = n
	}

	name, value := "app", s.cfg.App
	if nick := r.URL.Query().Get("nickname"); nick != "" {
		name, value = "nickname", nick
	}

	// Over-fetch when filtering by nickname so other apps' records can be dropped.
	fetch := limit
	if name != "app" {
		fetch = limit * 4
	}
	records, err := s.ledger.RecordsByTag(r.Context(), name, value, fetch)
	if err != nil {
		s.logger.Error("list scores failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	out := make([]listEntry, 0, len(records))
	for _, rec := range records {
		if rec.Tag("app") != s.cfg.App {
			continue
		}
		out = append(out, listEntry{
			TxID:      rec.TxID,
			Nickname:  rec.Tag("nickname"),
			Moves:     rec.Tag("moves"),
			Time:      rec.Tag("time"),
			CreatedAt: rec.CreatedAt,
		})
		if len(out) == limit {
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

// ListenAndServe listens on the configured address and blocks until
// SIGINT or SIGTERM.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.logger.Info("starting score server", "address", ln.Addr().String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx, ln)
}

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes and duration.
func requestLogger(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", time.Since(start).Round(time.Millisecond),
		)
	})
}
