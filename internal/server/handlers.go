package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/umlsvg/pkg/buildinfo"
	errs "github.com/matzehuels/umlsvg/pkg/errors"
	"github.com/matzehuels/umlsvg/pkg/graph"
	"github.com/matzehuels/umlsvg/pkg/pipeline"
	"github.com/matzehuels/umlsvg/pkg/render/diagram"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Short(),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := renderOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := readInput(r, &opts); err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.RenderHit))
	w.Header().Set("X-Skipped-Edges", strconv.Itoa(res.Stats.SkippedEdges))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := readInput(r, &opts); err != nil {
		s.fail(w, r, err)
		return
	}
	if opts.Model == nil {
		s.fail(w, r, errs.New(errs.ErrCodeInvalidInput, "layout expects a YAML class model"))
		return
	}
	opts.Graphviz.RankDir = r.URL.Query().Get("rankdir")
	opts.Graphviz.Engine = r.URL.Query().Get("engine")

	m, err := s.runner.ParseModel(r.Context(), opts.Model)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	l, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), m, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, err := graph.MarshalLayout(l)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// renderOptions reads render settings from the query string.
func renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return pipeline.Options{}, err
	}

	s := diagram.DefaultSettings()
	floats := []struct {
		key string
		dst *float64
	}{
		{"curviness", &s.Curviness},
		{"margin", &s.Margin},
		{"font_size", &s.FontSize},
	}
	for _, f := range floats {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return pipeline.Options{}, errs.New(errs.ErrCodeInvalidInput, "%s: %q is not a number", f.key, v)
		}
		*f.dst = parsed
	}
	s.Bezier = q.Get("bezier") == "true"
	s.Width = q.Get("width")
	s.Height = q.Get("height")

	opts := pipeline.Options{
		Settings: s,
		Formats:  []string{format},
		NoEdges:  q.Get("no_edges") == "true",
	}
	opts.Graphviz.RankDir = q.Get("rankdir")
	opts.Graphviz.Engine = q.Get("engine")
	return opts, nil
}

// readInput stores the body as model or layout depending on Content-Type.
// Bodies without a recognized type are sniffed.
func readInput(r *http.Request, opts *pipeline.Options) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errs.New(errs.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "read body")
	}
	if len(data) == 0 {
		return errs.New(errs.ErrCodeInvalidInput, "request body is empty")
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case mediaType == "application/json":
		return opts.SetInput(data, pipeline.InputLayout)
	case strings.HasSuffix(mediaType, "yaml"):
		return opts.SetInput(data, pipeline.InputModel)
	case mediaType == "" || mediaType == "text/plain" || mediaType == "application/octet-stream":
		return opts.SetInput(data, pipeline.DetectInput(data))
	default:
		return errs.New(errs.ErrCodeUnsupported, "unsupported content type %q", mediaType)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errs.GetCode(err))
	if code == "" {
		code = string(errs.ErrCodeInternal)
	}
	msg := errs.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", RequestID(r.Context()))
	}
	writeError(w, r, status, code, msg)
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch code := errs.GetCode(err); {
	case errs.IsInvalid(err):
		return http.StatusBadRequest
	case code == errs.ErrCodeNotFound || code == errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == errs.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	case code == errs.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, status, errorBody{
		Code:      code,
		Message:   msg,
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
