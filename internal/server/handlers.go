package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/reviewdash/internal/analysis"
	"github.com/mesh-intelligence/reviewdash/internal/model"
	"github.com/mesh-intelligence/reviewdash/pkg/types"
)

type errorResponse struct {
	Error  string `json:"error"`
	Column string `json:"column,omitempty"`
	View   string `json:"view,omitempty"`
}

type viewEntry struct {
	analysis.View
	Label     string   `json:"label"`
	Available bool     `json:"available"`
	Missing   []string `json:"missing,omitempty"`
}

type datasetResponse struct {
	SessionID       string         `json:"session_id"`
	Source          string         `json:"source"`
	LoadedAt        time.Time      `json:"loaded_at"`
	Rows            int            `json:"rows"`
	Columns         []string       `json:"columns"`
	SentimentCounts map[string]int `json:"sentiment_counts"`
}

type healthResponse struct {
	Status    string          `json:"status"`
	SessionID string          `json:"session_id"`
	Rows      int             `json:"rows"`
	Model     *model.Artifact `json:"model"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		SessionID: s.session.ID(),
		Rows:      s.session.Len(),
		Model:     s.artifact,
	})
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, datasetResponse{
		SessionID:       s.session.ID(),
		Source:          s.session.Source(),
		LoadedAt:        s.session.LoadedAt(),
		Rows:            s.session.Len(),
		Columns:         s.session.Columns(),
		SentimentCounts: types.CountsByLabel(s.session.SentimentCounts()),
	})
}

func (s *Server) handleViews(w http.ResponseWriter, r *http.Request) {
	entries := make([]viewEntry, 0, len(analysis.Views))
	for _, v := range analysis.Views {
		e := viewEntry{View: v, Label: v.Label(), Available: true}
		for _, c := range v.Columns {
			if !s.session.Has(c) {
				e.Available = false
				e.Missing = append(e.Missing, c)
			}
		}
		entries = append(entries, e)
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	v, err := analysis.Lookup(chi.URLParam(r, "key"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	opts := s.defaults
	q := r.URL.Query()
	if label := q.Get("sentiment"); label != "" {
		opts.Sentiment = label
	}
	if top := q.Get("top"); top != "" {
		n, err := strconv.Atoi(top)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "top must be a non-negative integer", View: v.Slug})
			return
		}
		opts.TopKeywords = n
	}

	res, err := analysis.Run(s.session, v, opts)
	if err != nil {
		s.writeViewError(w, r, v, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) writeViewError(w http.ResponseWriter, r *http.Request, v analysis.View, err error) {
	var ce *types.ColumnError
	switch {
	case errors.As(err, &ce):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Column: ce.Column, View: v.Slug})
	case errors.Is(err, types.ErrUnknownSentiment):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), View: v.Slug})
	default:
		s.logger.Error("view failed", zap.String("view", v.Slug), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", View: v.Slug})
	}
}
