package storeindex

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"storefinder/internal/domain"
)

// DefaultPageSize is used when a request omits n
const DefaultPageSize = 3

// Handler serves GET ?q=&start_with=&n= over an Index
type Handler struct {
	index  *Index
	logger *slog.Logger
}

// NewHandler creates the search endpoint handler
func NewHandler(ix *Index, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{index: ix, logger: logger}
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "x-requested-with")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodGet:
	default:
		w.Header().Set("Allow", "GET, OPTIONS")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	offset, err := intParam(r, "start_with", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	n, err := intParam(r, "n", DefaultPageSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// No search: the client shows its "change the search criteria" state
	page := domain.ResultPage{Portion: []domain.Store{}, TotalCount: -1}
	if query != "" && offset >= 0 && n > 0 {
		page = h.index.Search(query, offset, n)
	}

	h.logger.Debug("search",
		slog.String("q", query),
		slog.Int("start_with", offset),
		slog.Int("n", n),
		slog.Int("total", page.TotalCount),
	)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(page); err != nil {
		h.logger.Warn("failed to write response", slog.String("error", err.Error()))
	}
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{name: name, value: raw}
	}
	return v, nil
}

type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return "invalid " + e.name + ": " + strconv.Quote(e.value)
}
