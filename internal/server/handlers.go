package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/timeline/pkg/buildinfo"
	"github.com/matzehuels/timeline/pkg/config"
	"github.com/matzehuels/timeline/pkg/errors"
	tlio "github.com/matzehuels/timeline/pkg/io"
	"github.com/matzehuels/timeline/pkg/pipeline"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// renderRequest is the body of preview and export requests.
type renderRequest struct {
	Events []timeline.Record `json:"events"`
	Config json.RawMessage   `json:"config,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

type eventsResponse struct {
	Events []timeline.Record `json:"events"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Config())
}

func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg, err := config.Parse(data, config.FormatJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.setConfig(cfg); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("configuration updated", "id", RequestIDFromContext(r.Context()))
	s.writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pipeline.FormatPNG, previewDPI, false)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, format, 0, true)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, format string, dpi float64, attachment bool) {
	req, cfg, err := s.decodeRenderRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Records:        req.Events,
		SkipIncomplete: true,
		Config:         &cfg,
		Formats:        []string{format},
		DPI:            dpi,
		Logger:         s.logger.With("id", RequestIDFromContext(r.Context())),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	if attachment {
		w.Header().Set("Content-Disposition",
			mime.FormatMediaType("attachment", map[string]string{"filename": "timeline." + format}))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) decodeRenderRequest(w http.ResponseWriter, r *http.Request) (renderRequest, config.Config, error) {
	var req renderRequest
	data, err := readBody(w, r)
	if err != nil {
		return req, config.Config{}, err
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, config.Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	if req.Events == nil {
		req.Events = []timeline.Record{}
	}

	cfg := s.Config()
	if len(req.Config) > 0 && string(req.Config) != "null" {
		cfg, err = config.Parse(req.Config, config.FormatJSON)
		if err != nil {
			return req, config.Config{}, err
		}
	}
	return req, cfg, nil
}

// handleImportCSV accepts either a multipart upload in field "file" or a
// raw CSV body.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	var src io.Reader
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		file, header, err := r.FormFile("file")
		if err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "missing upload field \"file\""))
			return
		}
		defer file.Close()
		if err := errors.ValidateFilename(header.Filename); err != nil {
			s.writeError(w, r, err)
			return
		}
		src = file
	} else {
		data, err := readBody(w, r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		src = bytes.NewReader(data)
	}

	records, err := tlio.ReadCSV(src)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []timeline.Record{}
	}
	s.writeJSON(w, http.StatusOK, eventsResponse{Events: records})
}

// errBodyTooLarge is reported with status 413.
var errBodyTooLarge = errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", maxBodyBytes)

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	return data, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	id := RequestIDFromContext(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", id, "err", err)
	}
	s.writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCodeOr(err, errors.ErrCodeInternal)),
		RequestID: id,
	})
}

func statusFor(err error) int {
	switch {
	case err == errBodyTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.IsInputError(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
