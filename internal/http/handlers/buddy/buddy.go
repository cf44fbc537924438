// Package buddy contains all HTTP handlers related to the buddy list.
//
// HANDLER PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN
// ────────────────────────────────────────────────────────────
// Each exported function receives its dependencies once, at route
// registration, and returns the http.HandlerFunc the router calls on
// every request:
//
//	router.HandleFunc("POST /api/buddies", buddy.New(svc))
//
// Positions in paths are 0-based indexes into the stored list.
package buddy

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aanand-mishra/timezone-buddy/internal/buddies"
	"github.com/aanand-mishra/timezone-buddy/internal/types"
	"github.com/aanand-mishra/timezone-buddy/internal/utils/response"
	"github.com/aanand-mishra/timezone-buddy/internal/view"
	"github.com/aanand-mishra/timezone-buddy/internal/zone"
)

// Service is the subset of *buddies.Service the handlers need.
type Service interface {
	List(ctx context.Context) ([]types.Buddy, error)
	Get(ctx context.Context, index int) (types.Buddy, error)
	Create(ctx context.Context, in buddies.Input) (types.Buddy, int, error)
	Update(ctx context.Context, index int, in buddies.Input) (types.Buddy, error)
	Delete(ctx context.Context, index int) (types.Buddy, error)
}

// Clock supplies the instant and clock style the views are computed for.
type Clock struct {
	Now    func() time.Time
	Use24h bool
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Register maps every route onto router.
//
// Route table:
//
//	GET    /health               → liveness
//	POST   /api/buddies          → create a buddy
//	GET    /api/buddies          → list view
//	GET    /api/buddies/{index}  → one list row
//	PUT    /api/buddies/{index}  → update a buddy
//	DELETE /api/buddies/{index}  → delete a buddy
//	GET    /api/menubar          → menu-bar summary
//	GET    /api/zones            → supported timezones
func Register(router *http.ServeMux, svc Service, clock Clock, zones func() ([]string, error)) {
	router.HandleFunc("GET /health", Health)
	router.HandleFunc("POST /api/buddies", New(svc))
	router.HandleFunc("GET /api/buddies", GetList(svc, clock))
	router.HandleFunc("GET /api/buddies/{index}", GetByIndex(svc, clock))
	router.HandleFunc("PUT /api/buddies/{index}", Update(svc))
	router.HandleFunc("DELETE /api/buddies/{index}", Delete(svc))
	router.HandleFunc("GET /api/menubar", MenuBar(svc, clock))
	router.HandleFunc("GET /api/zones", Zones(zones))
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/buddies
//
// Request body (JSON):
//
//	{ "name": "Ada", "twitter_handle": "ada", "tz": "Europe/London" }
//
// Success response (201 Created):
//
//	{ "index": 0, "buddy": { "name": "Ada", ... } }
//
// Error responses:
//
//	400 Bad Request  empty body, malformed JSON, or failed validation
//	500 Internal     storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a buddy")

		in, ok := decodeInput(w, r)
		if !ok {
			return
		}

		b, index, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, "error creating buddy", err)
			return
		}

		response.WriteJSON(w, http.StatusCreated, map[string]any{"index": index, "buddy": b})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/buddies
// Returns the list view: every buddy with its local time, offset, zone
// name and tooltip. An empty list is returned as [] (not null).
// ─────────────────────────────────────────────────────────────────────────────
func GetList(svc Service, clock Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all buddies")

		list, err := svc.List(r.Context())
		if err != nil {
			writeError(w, "error getting buddies", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, view.ListRows(list, clock.now(), clock.Use24h))
	}
}

// GetByIndex handles GET /api/buddies/{index}
func GetByIndex(svc Service, clock Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := pathIndex(w, r)
		if !ok {
			return
		}
		slog.Info("getting a buddy", slog.Int("index", index))

		b, err := svc.Get(r.Context(), index)
		if err != nil {
			writeError(w, "error getting buddy", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, view.NewRow(index, b, clock.now(), clock.Use24h))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/buddies/{index}
// Replaces ALL fields of an existing buddy; the avatar is derived again.
//
// Error responses:
//
//	400 Bad Request  invalid index, empty body, or validation failure
//	404 Not Found    no buddy at that position
//	500 Internal     storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := pathIndex(w, r)
		if !ok {
			return
		}
		slog.Info("updating a buddy", slog.Int("index", index))

		in, ok := decodeInput(w, r)
		if !ok {
			return
		}

		b, err := svc.Update(r.Context(), index, in)
		if err != nil {
			writeError(w, "error updating buddy", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]any{"index": index, "buddy": b})
	}
}

// Delete handles DELETE /api/buddies/{index}
// Confirmation is up to the client; the call removes the record at once.
func Delete(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := pathIndex(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a buddy", slog.Int("index", index))

		b, err := svc.Delete(r.Context(), index)
		if err != nil {
			writeError(w, "error deleting buddy", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]any{"status": "deleted", "buddy": b})
	}
}

// MenuBar handles GET /api/menubar
func MenuBar(svc Service, clock Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			writeError(w, "error getting buddies", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, view.BuildMenuBar(list, clock.now(), clock.Use24h))
	}
}

// zoneEntry is one option of the timezone picker.
type zoneEntry struct {
	Value string `json:"value"`
	Title string `json:"title"`
}

// Zones handles GET /api/zones, listing the timezones a buddy may use.
func Zones(list func() ([]string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := list()
		if err != nil {
			slog.Error("error listing zones", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		out := make([]zoneEntry, 0, len(names))
		for _, n := range names {
			out = append(out, zoneEntry{Value: n, Title: zone.DisplayName(n)})
		}
		response.WriteJSON(w, http.StatusOK, out)
	}
}

// Health handles GET /health
func Health(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusOK, response.OK())
}

func decodeInput(w http.ResponseWriter, r *http.Request) (buddies.Input, bool) {
	var in buddies.Input

	err := json.NewDecoder(r.Body).Decode(&in)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return in, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return in, false
	}
	return in, true
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("invalid index: must be a non-negative integer")))
		return 0, false
	}
	return index, true
}

// writeError maps service errors to status codes.
func writeError(w http.ResponseWriter, msg string, err error) {
	var verr *buddies.ValidationError

	switch {
	case errors.As(err, &verr):
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
	case errors.Is(err, buddies.ErrNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
	default:
		slog.Error(msg, slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
	}
}
