package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/fondo/internal/config"
	"github.com/ironsheep/fondo/internal/generate"
	"github.com/ironsheep/fondo/internal/render"
)

const (
	URIGenerate = "/generate"
	URIKinds    = "/kinds"
	URIWS       = "/ws"
)

// HTTPServer serves fondos over plain HTTP and websocket.
type HTTPServer struct {
	router    *way.Router
	upgrader  *websocket.Upgrader
	maxPixels int
}

// NewHTTP creates the HTTP handler with its routes registered.
func NewHTTP() *HTTPServer {
	h := &HTTPServer{
		upgrader:  &websocket.Upgrader{},
		maxPixels: DefaultMaxPixels,
	}
	h.routes()
	return h
}

func (h *HTTPServer) routes() {
	h.router = way.NewRouter()
	h.router.HandleFunc("GET", URIGenerate, h.handleGenerate())
	h.router.HandleFunc("GET", URIKinds, h.handleKinds())
	h.router.HandleFunc("GET", URIWS, h.handleWS())
}

func (h *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// optionsFromQuery reads generation options from URL query parameters.
// Absent parameters get defaults later; present ones are kept as given, so
// delta=0 is rejected rather than defaulted.
func optionsFromQuery(q url.Values) (config.Options, error) {
	o := config.Options{
		Size:      q.Get("size"),
		Positions: q.Get("positions"),
		Colours:   q.Get("colours"),
		Kind:      q.Get("kind"),
	}
	if o.Colours == "" {
		o.Colours = q.Get("colors")
	}

	var err error
	if o.Number, err = queryInt(q, "number"); err != nil {
		return o, err
	}
	if q.Has("delta") {
		d, err := queryInt(q, "delta")
		if err != nil {
			return o, err
		}
		o.Delta = config.Int(d)
	}
	if v := q.Get("seed"); v != "" {
		if o.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return o, fmt.Errorf("invalid seed %q: %w", v, err)
		}
	}
	if q.Has("scale") {
		f, err := queryFloat(q, "scale")
		if err != nil {
			return o, err
		}
		o.Scale = config.Float(f)
	}
	if o.Smooth, err = queryFloat(q, "smooth"); err != nil {
		return o, err
	}
	if v := q.Get("random"); v != "" {
		if o.RandomColours, err = strconv.ParseBool(v); err != nil {
			return o, fmt.Errorf("invalid random %q: %w", v, err)
		}
	}
	return o, nil
}

func queryInt(q url.Values, key string) (int, error) {
	v := q.Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func queryFloat(q url.Values, key string) (float64, error) {
	v := q.Get(key)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

// statusFor maps a generation error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, generate.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, config.ErrInvalidSize),
		errors.Is(err, config.ErrInvalidPoint),
		errors.Is(err, config.ErrInvalidColour),
		errors.Is(err, config.ErrInvalidDelta),
		errors.Is(err, config.ErrInvalidNumber),
		errors.Is(err, config.ErrPositionOutOfBounds),
		errors.Is(err, config.ErrInvalidScale),
		errors.Is(err, config.ErrInvalidSmooth):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *HTTPServer) handleGenerate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := optionsFromQuery(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		format := imaging.PNG
		if f := r.URL.Query().Get("format"); f != "" {
			if format, err = imaging.FormatFromExtension(f); err != nil {
				http.Error(w, fmt.Sprintf("unsupported format %q", f), http.StatusBadRequest)
				return
			}
		}

		res, err := generate.Run(opts, generate.Hooks{MaxPixels: h.maxPixels})
		if err != nil {
			log.WithError(err).Warn("generate request failed")
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		w.Header().Set("Content-Type", render.MimeType(format))
		w.Header().Set("X-Fondo-Seed", strconv.FormatUint(res.Seed, 10))
		if err := render.Write(w, res.Image, format); err != nil {
			log.WithError(err).Error("failed to write image")
		}
	}
}

func (h *HTTPServer) handleKinds() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(config.Kinds()); err != nil {
			log.WithError(err).Error("failed to write kinds")
		}
	}
}

// WSMessage is sent from the server over the websocket.
type WSMessage struct {
	// Type is "progress", "result" or "error".
	Type   string          `json:"type"`
	Done   int             `json:"done,omitempty"`
	Total  int             `json:"total,omitempty"`
	Result *GenerateResult `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// handleWS upgrades the connection, reads one options message, streams
// progress while growing and finishes with the encoded result.
func (h *HTTPServer) handleWS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warnf("websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		var a generateArgs
		if err := conn.ReadJSON(&a); err != nil {
			log.Warnf("websocket read failed: %v", err)
			_ = conn.WriteJSON(WSMessage{Type: "error", Error: err.Error()})
			return
		}

		hooks := generate.Hooks{
			MaxPixels: h.maxPixels,
			Progress: func(done, total int) {
				if err := conn.WriteJSON(WSMessage{Type: "progress", Done: done, Total: total}); err != nil {
					log.Debugf("websocket progress write failed: %v", err)
				}
			},
			ProgressEvery: wsProgressEvery,
		}

		res, err := generate.Run(a.Options, hooks)
		if err == nil {
			var out *GenerateResult
			out, err = buildResult(res, "", a.paletteSize())
			if err == nil {
				if err := conn.WriteJSON(WSMessage{Type: "result", Result: out}); err != nil {
					log.Warnf("websocket result write failed: %v", err)
				}
				return
			}
		}
		_ = conn.WriteJSON(WSMessage{Type: "error", Error: err.Error()})
	}
}

// wsProgressEvery is the number of pixels between websocket progress messages.
const wsProgressEvery = 10_000
