// Package score implements the completion scoring endpoint, its HTTP server
// and the fire-and-forget client the game uses to submit runs.
package score

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-jigsaw/internal/storage"
)

// Tag is a queryable label stored with an uploaded record.
type Tag = storage.Tag

// Uploader stores a record with its tags and returns a transaction id.
type Uploader interface {
	Upload(ctx context.Context, data []byte, tags []Tag) (string, error)
}

// DefaultApp is the app tag attached to every record.
const DefaultApp = "irys-jigsaw"

// HandlerConfig tunes validation and limits.
type HandlerConfig struct {
	App          string // Value of the "app" tag
	AcceptZero   bool   // Accept 0 for moves and time
	MaxBodyBytes int64  // Larger bodies are rejected; 0 means 64 KiB
}

// Handler accepts completion submissions.
//
//	POST {"nickname": "alice", "moves": 31, "time": 125}
//	-> 200 {"txId": "..."}
type Handler struct {
	up     Uploader
	cfg    HandlerConfig
	logger *log.Logger
}

// NewHandler creates a submission handler backed by up.
func NewHandler(up Uploader, cfg HandlerConfig, logger *log.Logger) *Handler {
	if cfg.App == "" {
		cfg.App = DefaultApp
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 64 << 10
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handler{up: up, cfg: cfg, logger: logger}
}

type uploadResp struct {
	TxID string `json:"txId"`
}

var errNotObject = errors.New("score: body is not a JSON object")

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	body, fields, err := parseBody(raw)
	if err != nil {
		h.logger.Debug("rejected submission", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	nickname, moves, elapsed := fields["nickname"], fields["moves"], fields["time"]
	if !h.present(nickname, false) || !h.present(moves, true) || !h.present(elapsed, true) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	tags := []Tag{
		{Name: "app", Value: h.cfg.App},
		{Name: "nickname", Value: tagValue(nickname)},
		{Name: "moves", Value: tagValue(moves)},
		{Name: "time", Value: tagValue(elapsed)},
	}

	txID, err := h.up.Upload(r.Context(), body, tags)
	if err != nil {
		h.logger.Error("score upload failed", "error", err)
		http.Error(w, "Upload failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(uploadResp{TxID: txID})
}

// present applies the truthiness check. With AcceptZero, numeric zero
// counts as present for the numeric fields.
func (h *Handler) present(v any, numeric bool) bool {
	if numeric && h.cfg.AcceptZero {
		if _, ok := v.(json.Number); ok {
			return true
		}
	}
	return truthy(v)
}

// parseBody decodes raw as a JSON object. An empty body is {}.
// Returns the compacted body for upload and the decoded fields.
func parseBody(raw []byte) ([]byte, map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, nil, err
	}
	if dec.More() {
		return nil, nil, errors.New("score: trailing data after JSON body")
	}
	fields, ok := v.(map[string]any)
	if !ok {
		return nil, nil, errNotObject
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), fields, nil
}
