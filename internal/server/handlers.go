package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"launchdash/internal/dashboard"
	"launchdash/internal/figure"
	"launchdash/internal/render"
)

// maxCallbackBody caps POST /api/callback bodies.
const maxCallbackBody = 64 << 10

var errBadQuery = errors.New("bad query parameter")

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderPage(w, s.cfg.Title); err != nil {
		s.log.Error("render page", slog.Any("err", err))
	}
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.dash.Layout())
}

func (s *Server) handleDependencies(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.dash.Registry().Dependencies())
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	var req dashboard.UpdateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCallbackBody))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode callback request: %w", err))
		return
	}

	resp, err := s.dash.Dispatch(req)
	switch {
	case errors.Is(err, dashboard.ErrUnknownOutput):
		s.writeError(w, http.StatusNotFound, err)
		return
	case errors.Is(err, dashboard.ErrBadInput):
		s.writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.metrics.callbacks.WithLabelValues(req.Output).Inc()
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	fig, err := s.figureFor(r.PathValue("kind"), r.URL.Query())
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, fig)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name, ext, ok := strings.Cut(r.PathValue("file"), ".")
	if !ok {
		http.NotFound(w, r)
		return
	}
	f, err := render.ParseFormat(ext)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	fig, err := s.figureFor(name, r.URL.Query())
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	img, err := render.Bytes(fig, f, s.cfg.Chart)
	if err != nil {
		s.log.Error("render chart", slog.String("chart", name), slog.Any("err", err))
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(img)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": s.dash.Table().Len(),
	})
}

var errUnknownFigure = errors.New("unknown figure")

// figureFor evaluates the named chart for the query's selection. Missing
// parameters fall back to the page defaults.
func (s *Server) figureFor(kind string, q url.Values) (figure.Figure, error) {
	f := dashboard.DefaultFilter(s.dash.Table())
	if site := q.Get("site"); site != "" {
		f.Site = site
	}
	switch figure.Kind(kind) {
	case figure.Pie:
		return s.dash.Pie(f.Site), nil
	case figure.Scatter:
		var err error
		if f.Low, err = floatParam(q, "low", f.Low); err != nil {
			return figure.Figure{}, err
		}
		if f.High, err = floatParam(q, "high", f.High); err != nil {
			return figure.Figure{}, err
		}
		return s.dash.Scatter(f), nil
	}
	return figure.Figure{}, fmt.Errorf("%q: %w", kind, errUnknownFigure)
}

func floatParam(q url.Values, key string, def float64) (float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, raw, errBadQuery)
	}
	return v, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errUnknownFigure):
		return http.StatusNotFound
	case errors.Is(err, errBadQuery):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.log.Error("encode response", slog.String("error", err.Error()))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"encode response"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
