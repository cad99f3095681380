// Package api serves the placement engine over HTTP.
//
// Routes:
//
//	GET  /healthz          liveness and build version
//	GET  /v1/profiles      resolved widget profiles
//	POST /v1/placements    compute one placement
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/anchor/pkg/buildinfo"
	"github.com/matzehuels/anchor/pkg/config"
	anchorerrors "github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/geom"
	"github.com/matzehuels/anchor/pkg/observability"
	"github.com/matzehuels/anchor/pkg/placement"
)

const (
	maxBodyBytes    = 64 << 10
	shutdownTimeout = 5 * time.Second
	requestIDHeader = "X-Request-ID"
)

// Server holds the profiles the API resolves requests against.
type Server struct {
	profiles map[string]placement.Profile
	logger   *log.Logger
}

// NewServer creates a server. Nil profiles uses the built-ins and a nil
// logger uses log.Default().
func NewServer(profiles map[string]placement.Profile, logger *log.Logger) *Server {
	if profiles == nil {
		profiles = placement.Profiles()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{profiles: profiles, logger: logger}
}

// Handler returns the API's routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/profiles", s.handleProfiles)
		r.Get("/profiles/{name}", s.handleProfile)
		r.Post("/placements", s.handlePlacement)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("serving placement API", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("placement API stopped")
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]placement.Profile, 0, len(names))
	for _, name := range names {
		out = append(out, s.profiles[name])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	p, ok := s.profiles[name]
	if !ok {
		writeError(w, anchorerrors.New(anchorerrors.ErrCodeNotFound, "unknown profile %q", name))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// PlacementRequest is the body of POST /v1/placements. Profile selects the
// base settings (default popover); the optional fields override them.
type PlacementRequest struct {
	Profile  string    `json:"profile,omitempty"`
	Trigger  geom.Rect `json:"trigger"`
	Content  geom.Rect `json:"content"`
	Boundary geom.Rect `json:"boundary"`

	Placement        *string  `json:"placement,omitempty"`
	SideOffset       *float64 `json:"side_offset,omitempty"`
	AlignOffset      *float64 `json:"align_offset,omitempty"`
	CollisionPadding *float64 `json:"collision_padding,omitempty"`
	AvoidCollisions  *bool    `json:"avoid_collisions,omitempty"`
	Priority         []string `json:"priority,omitempty"`
	Round            bool     `json:"round,omitempty"`
}

// PlacementResponse is the answer to POST /v1/placements.
type PlacementResponse struct {
	Profile string            `json:"profile"`
	Result  placement.Result  `json:"result"`
	Content geom.Rect         `json:"content"`
	Request placement.Request `json:"request"`
}

func (s *Server) handlePlacement(w http.ResponseWriter, r *http.Request) {
	var body PlacementRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, anchorerrors.New(anchorerrors.ErrCodeInvalidInput, "decode request body: %v", err))
		return
	}

	req, profile, err := s.buildRequest(body)
	if err != nil {
		writeError(w, err)
		return
	}

	res := placement.Compute(req)
	if body.Round {
		res = res.Rounded()
	}
	s.logger.Debug("computed placement",
		"request_id", w.Header().Get(requestIDHeader),
		"profile", profile,
		"side", res.Side,
		"flipped", res.Flipped,
		"degraded", res.Degraded)

	writeJSON(w, http.StatusOK, PlacementResponse{
		Profile: profile,
		Result:  res,
		Content: res.Rect(req.Content),
		Request: req,
	})
}

func (s *Server) buildRequest(body PlacementRequest) (placement.Request, string, error) {
	name := body.Profile
	if name == "" {
		name = placement.ProfilePopover
	}
	base, ok := s.profiles[name]
	if !ok {
		return placement.Request{}, "", anchorerrors.New(anchorerrors.ErrCodeNotFound, "unknown profile %q", name)
	}

	p, err := config.Apply(base, config.ProfileOverride{
		Placement:        body.Placement,
		SideOffset:       body.SideOffset,
		AlignOffset:      body.AlignOffset,
		CollisionPadding: body.CollisionPadding,
		AvoidCollisions:  body.AvoidCollisions,
		Priority:         body.Priority,
	})
	if err != nil {
		return placement.Request{}, "", err
	}

	req := p.Request(body.Trigger, body.Content, body.Boundary)
	if err := req.Validate(); err != nil {
		return placement.Request{}, "", err
	}
	return req, name, nil
}

// =============================================================================
// Middleware & helpers
// =============================================================================

// requestID tags every request with an id, reusing the caller's when given.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	var body errorBody
	body.Error.Code = string(anchorerrors.GetCode(err))
	if body.Error.Code == "" {
		body.Error.Code = string(anchorerrors.ErrCodeInternal)
	}
	body.Error.Message = anchorerrors.UserMessage(err)
	writeJSON(w, anchorerrors.HTTPStatus(err), body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
