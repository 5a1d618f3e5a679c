package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/matzehuels/mediagrid/pkg/buildinfo"
	errs "github.com/matzehuels/mediagrid/pkg/errors"
	mio "github.com/matzehuels/mediagrid/pkg/io"
	"github.com/matzehuels/mediagrid/pkg/mediagrid"
	"github.com/matzehuels/mediagrid/pkg/pipeline"
)

// ConstraintsOverride replaces single fields of a preset.
type ConstraintsOverride struct {
	MaxWidth  *float64 `json:"max_width,omitempty"`
	MaxHeight *float64 `json:"max_height,omitempty"`
	MinHeight *float64 `json:"min_height,omitempty"`
	Gap       *float64 `json:"gap,omitempty"`
}

// apply returns c with the set fields of o replaced.
func (o *ConstraintsOverride) apply(c mediagrid.Constraints) mediagrid.Constraints {
	if o == nil {
		return c
	}
	if o.MaxWidth != nil {
		c.MaxWidth = *o.MaxWidth
	}
	if o.MaxHeight != nil {
		c.MaxHeight = *o.MaxHeight
	}
	if o.MinHeight != nil {
		c.MinHeight = *o.MinHeight
	}
	if o.Gap != nil {
		c.Gap = *o.Gap
	}
	return c
}

// LayoutRequest is the body of POST /v1/layout.
type LayoutRequest struct {
	Preset      string               `json:"preset,omitempty"`
	Constraints *ConstraintsOverride `json:"constraints,omitempty"`
	Items       json.RawMessage      `json:"items"`
	Refresh     bool                 `json:"refresh,omitempty"`
}

// LayoutResponse is the body of a successful POST /v1/layout.
type LayoutResponse struct {
	RequestID   string                `json:"request_id"`
	Constraints mediagrid.Constraints `json:"constraints"`
	ItemsHash   string                `json:"items_hash"`
	Cached      bool                  `json:"cached"`
	Layout      *mio.Layout           `json:"layout"`
}

// PresetsResponse is the body of GET /v1/presets.
type PresetsResponse struct {
	Default string                           `json:"default"`
	Presets map[string]mediagrid.Constraints `json:"presets"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// ErrorResponse is the JSON error envelope of every failed request.
type ErrorResponse struct {
	Error string    `json:"error"`
	Code  errs.Code `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Current()})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PresetsResponse{
		Default: s.cfg.DefaultPreset,
		Presets: s.cfg.Presets,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req LayoutRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large", Code: errs.ErrCodeInvalidInput})
			return
		}
		writeError(w, r, errs.Wrap(errs.ErrCodeInvalidFormat, err, "invalid request body"))
		return
	}
	if len(req.Items) == 0 {
		writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "items is required"))
		return
	}

	items, err := mio.ReadItems(bytes.NewReader(req.Items))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if req.Preset != "" {
		if err := errs.ValidatePresetName(req.Preset); err != nil {
			writeError(w, r, err)
			return
		}
	}
	c, err := s.cfg.Preset(req.Preset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	c = req.Constraints.apply(c)

	res, err := s.runner.Execute(r.Context(), items, pipeline.Options{
		Constraints: c,
		Refresh:     req.Refresh,
		Logger:      s.logger,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LayoutResponse{
		RequestID:   RequestID(r.Context()),
		Constraints: c,
		ItemsHash:   res.ItemsHash,
		Cached:      res.CacheHit,
		Layout:      res.Layout,
	})
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case errs.IsInvalid(err):
		return http.StatusBadRequest
	case errs.IsNotFound(err):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err with the status derived from its code. Internal
// errors are reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Error: errs.UserMessage(err), Code: errs.GetCode(err)}
	if status == http.StatusInternalServerError {
		resp = ErrorResponse{Error: "internal error", Code: errs.ErrCodeInternal}
	}
	writeJSON(w, status, resp)
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
