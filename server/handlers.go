package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"musicbridge/core/bridge"
	"musicbridge/core/snapshot"
	"musicbridge/logger"
	"musicbridge/model"

	"github.com/gorilla/mux"
)

// maxQueryBody bounds POST /api/query bodies.
const maxQueryBody = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to write response", logger.ErrorField(err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor maps builder and bridge errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, snapshot.ErrUnknownRequest),
		errors.Is(err, snapshot.ErrMissingID),
		errors.Is(err, snapshot.ErrMissingQuery),
		errors.Is(err, snapshot.ErrInvalidStrategy):
		return http.StatusBadRequest
	case errors.Is(err, bridge.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, snapshot.ErrUnreadable),
		errors.Is(err, bridge.ErrUnsupported),
		errors.Is(err, bridge.ErrScriptFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// serve runs req and writes the snapshot. ?strategy= overrides the request's
// strategy and ?pretty=1 indents the output.
func (s *Server) serve(w http.ResponseWriter, r *http.Request, req model.Request) {
	if strategy := r.URL.Query().Get("strategy"); strategy != "" {
		req.Strategy = strategy
	}

	v, err := s.builder.Build(r.Context(), req)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	pretty, _ := strconv.ParseBool(r.URL.Query().Get("pretty"))
	data, err := snapshot.Encode(v, pretty)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Warn("failed to write snapshot", logger.ErrorField(err))
	}
}

func (s *Server) withID(r *http.Request, t model.ParamType) model.Request {
	return model.Request{ParamType: t, ID: json.Number(mux.Vars(r)["id"])}
}

// QueryHandler accepts a raw dispatcher request.
func (s *Server) QueryHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxQueryBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req, err := model.ParseRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.serve(w, r, req)
}

func (s *Server) AllTracksHandler(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, model.Request{ParamType: model.ParamAllTracks})
}

func (s *Server) CurrentTrackHandler(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, model.Request{ParamType: model.ParamCurrentTrack})
}

func (s *Server) TrackHandler(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, s.withID(r, model.ParamTrackByID))
}

func (s *Server) ArtworksHandler(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, s.withID(r, model.ParamArtworks))
}

func (s *Server) PlaylistHandler(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, s.withID(r, model.ParamPlaylistByID))
}

func (s *Server) PlaylistTracksHandler(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, s.withID(r, model.ParamPlaylistTracks))
}

// SearchHandler runs the player's search over a playlist, ?q= is required.
func (s *Server) SearchHandler(w http.ResponseWriter, r *http.Request) {
	req := s.withID(r, model.ParamSearchInPlaylist)
	req.Query = r.URL.Query().Get("q")
	s.serve(w, r, req)
}

func (s *Server) ApplicationHandler(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, model.Request{ParamType: model.ParamApplicationData})
}

func (s *Server) PlayerHandler(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, model.Request{ParamType: model.ParamPlayerState})
}

type statusResponse struct {
	Status           string          `json:"status"`
	Strategy         string          `json:"strategy"`
	AllowListVersion int             `json:"allow_list_version"`
	Subscribers      int             `json:"subscribers"`
	LastEvent        json.RawMessage `json:"last_event,omitempty"`
}

// StatusHandler reports liveness without touching the player.
func (s *Server) StatusHandler(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status:           "ok",
		Strategy:         s.builder.Engine().Strategy().String(),
		AllowListVersion: snapshot.AllowListVersion,
	}
	if s.hub != nil {
		resp.Subscribers = s.hub.Count()
	}
	if s.redis != nil {
		last, err := s.redis.Last(r.Context())
		if err != nil {
			logger.Warn("failed to read last event", logger.ErrorField(err))
		} else if last != nil {
			resp.LastEvent = last
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
