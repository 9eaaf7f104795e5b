package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/shouni/emotive-flow/pkg/controller"
	"github.com/shouni/emotive-flow/pkg/imgutil"
	"github.com/shouni/emotive-flow/pkg/mood"
	"github.com/shouni/emotive-flow/pkg/utils"
)

type generateRequest struct {
	Feeling string `json:"feeling"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	ctl := s.sessions.Get(w, r)
	view := newStateView(ctl.Snapshot())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.page.Execute(w, view); err != nil {
		slog.ErrorContext(r.Context(), "画面の描画に失敗しました", "error", err)
	}
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	ctl := s.sessions.Get(w, r)
	writeJSON(w, http.StatusOK, newStateView(ctl.Snapshot()))
}

func (s *Server) style(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newStyleView(mood.Classify(r.URL.Query().Get("feeling"))))
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctl := s.sessions.Get(w, r)
	if _, err := ctl.Submit(r.Context(), req.Feeling); err != nil {
		switch {
		case errors.Is(err, controller.ErrBusy):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, controller.ErrEmptyFeeling), errors.Is(err, controller.ErrFeelingTooLong):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusAccepted, newStateView(ctl.Snapshot()))
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	ctl := s.sessions.Get(w, r)
	ctl.Reset()
	writeJSON(w, http.StatusOK, newStateView(ctl.Snapshot()))
}

func (s *Server) dismiss(w http.ResponseWriter, r *http.Request) {
	ctl := s.sessions.Get(w, r)
	ctl.Dismiss()
	writeJSON(w, http.StatusOK, newStateView(ctl.Snapshot()))
}

func (s *Server) image(w http.ResponseWriter, r *http.Request) {
	ctl, ok := s.sessions.Lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "no image")
		return
	}
	snap := ctl.Snapshot()
	if snap.Image == nil || len(snap.Image.Data) == 0 {
		writeError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", imgutil.NormalizeMimeType(snap.Image.MimeType))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if r.URL.Query().Get("download") == "1" {
		name := utils.DownloadFilename(snap.Feeling, snap.Image.MimeType)
		disposition := mime.FormatMediaType("attachment", map[string]string{"filename": name})
		if disposition == "" {
			disposition = "attachment"
		}
		w.Header().Set("Content-Disposition", disposition)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(snap.Image.Data)
}
