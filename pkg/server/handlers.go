package server

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/glitcher/pkg/buildinfo"
	"github.com/matzehuels/glitcher/pkg/engine"
	"github.com/matzehuels/glitcher/pkg/errors"
	pkgio "github.com/matzehuels/glitcher/pkg/io"
	"github.com/matzehuels/glitcher/pkg/pipeline"
	"github.com/matzehuels/glitcher/pkg/session"
)

// maxSteps bounds how many frames one frame request may advance.
const maxSteps = 600

// =============================================================================
// Static endpoints
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
	})
}

type presetView struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	presets := engine.Presets()
	out := make([]presetView, len(presets))
	for i, p := range presets {
		out[i] = presetView{Name: p.Name, Title: p.Title, Description: p.Description}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleRender renders the uploaded image. Query parameters: frames, fps,
// format (png or gif), preset, seed, width, height, refresh.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	data, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Image = data

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	contentType := "image/gif"
	if res.Format == pipeline.FormatPNG {
		contentType = "image/png"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Glitcher-Source", res.SourceHash)
	w.Header().Set("X-Glitcher-Cache", strconv.FormatBool(res.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifact)
}

func (s *Server) renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Config:  s.base,
		Preset:  q.Get("preset"),
		Format:  q.Get("format"),
		Refresh: q.Get("refresh") == "true",
	}
	if opts.Format == pipeline.FormatFrames {
		return opts, errors.New(errors.ErrCodeInvalidFormat, "frame sequences are not available over HTTP")
	}
	var err error
	if v := q.Get("frames"); v != "" {
		if opts.Frames, err = strconv.Atoi(v); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "frames")
		}
	}
	if v := q.Get("fps"); v != "" {
		if opts.FPS, err = strconv.ParseFloat(v, 64); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "fps")
		}
	}
	for name, dst := range map[string]*int{"width": &opts.Width, "height": &opts.Height} {
		if v := q.Get(name); v != "" {
			if *dst, err = strconv.Atoi(v); err != nil {
				return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", name)
			}
		}
	}
	if v := q.Get("seed"); v != "" {
		if opts.Config.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "seed")
		}
	}
	return opts, nil
}

// =============================================================================
// Sessions
// =============================================================================

type sessionView struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// createRequest is the optional body of POST /sessions.
type createRequest struct {
	Preset string         `json:"preset,omitempty"`
	Config *engine.Config `json:"config,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	cfg := s.base
	if req.Config != nil {
		cfg = *req.Config
	}
	cfg, err := cfg.WithPreset(req.Preset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess := session.New(cfg, s.logger, s.ttl)
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("session created", "id", sess.ID)
	writeJSON(w, http.StatusCreated, sessionView{ID: sess.ID, CreatedAt: sess.CreatedAt, ExpiresAt: sess.ExpiresAt()})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.store.Delete(r.Context(), sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

// session resolves the {id} URL parameter, writing an error response when
// it does not name a live session.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, session.ErrNotFound)
		return nil, false
	}
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleLoadImage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	data, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	buf, err := pkgio.Decode(bytes.NewReader(data))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var info engine.DebugInfo
	err = sess.Do(func(sc *engine.Scheduler) error {
		if err := sc.LoadImage(buf); err != nil {
			return err
		}
		info = sc.DebugInfo()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handleFrame returns the current frame as PNG. With ?steps=N the scheduler
// first processes N frames regardless of pause; otherwise it ticks once,
// which honors pause and the target frame rate.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	steps := -1
	if v := r.URL.Query().Get("steps"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxSteps {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "steps must be between 0 and %d", maxSteps))
			return
		}
		steps = n
	}

	var png bytes.Buffer
	var index uint64
	err := sess.Do(func(sc *engine.Scheduler) error {
		if !sc.Loaded() {
			return errors.New(errors.ErrCodeNoImage, "no image loaded")
		}
		if steps < 0 {
			sc.Tick(r.Context(), time.Now())
		}
		for range max(steps, 0) {
			if _, err := sc.Step(r.Context()); err != nil {
				return err
			}
		}
		f := sc.Current()
		index = f.Index
		return pkgio.EncodePNG(&png, f.Image)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Glitcher-Frame", strconv.FormatUint(index, 10))
	w.WriteHeader(http.StatusOK)
	w.Write(png.Bytes())
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var ev engine.ToolEvent
	if err := decodeJSON(r, &ev); err != nil {
		s.writeError(w, r, err)
		return
	}
	var status any
	err := sess.Do(func(sc *engine.Scheduler) error {
		if err := sc.ApplyToolEvent(ev); err != nil {
			return err
		}
		status = sc.Selection().Status()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var cfg engine.Config
	sess.Do(func(sc *engine.Scheduler) error {
		cfg = sc.Config()
		return nil
	})
	writeJSON(w, http.StatusOK, cfg)
}

// handlePutConfig decodes the body over the current configuration, so
// clients may send only the fields they change. ?preset= applies a preset
// first.
func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var cfg engine.Config
	err := sess.Do(func(sc *engine.Scheduler) error {
		next, err := sc.Config().WithPreset(r.URL.Query().Get("preset"))
		if err != nil {
			return err
		}
		if r.ContentLength != 0 {
			if err := decodeJSON(r, &next); err != nil {
				return err
			}
		}
		if err := sc.SetConfig(next); err != nil {
			return err
		}
		cfg = sc.Config()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

type resizeRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// handleResize resamples the session image; clumps and history are clipped
// to the new bounds.
func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req resizeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	var info engine.DebugInfo
	err := sess.Do(func(sc *engine.Scheduler) error {
		if err := sc.Resize(req.Width, req.Height); err != nil {
			return err
		}
		info = sc.DebugInfo()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var info engine.DebugInfo
	sess.Do(func(sc *engine.Scheduler) error {
		info = sc.DebugInfo()
		return nil
	})
	writeJSON(w, http.StatusOK, info)
}

type playback int

const (
	playbackPlay playback = iota
	playbackPause
	playbackReset
)

func (s *Server) handlePlayback(action playback) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.session(w, r)
		if !ok {
			return
		}
		var info engine.DebugInfo
		sess.Do(func(sc *engine.Scheduler) error {
			switch action {
			case playbackPlay:
				sc.Play()
			case playbackPause:
				sc.Pause()
			case playbackReset:
				sc.Reset()
			}
			info = sc.DebugInfo()
			return nil
		})
		writeJSON(w, http.StatusOK, info)
	}
}

// readBody reads an upload, bounded by the server's size limit.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUpload))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read upload")
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
	}
	return data, nil
}
