package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spacesedan/tubepulse/internal/clients"
	"github.com/spacesedan/tubepulse/internal/models"
	"github.com/spacesedan/tubepulse/internal/processing"
)

const (
	videoFailureMessage = "Failed to process video ID"
	themeFailureMessage = "Failed to process theme"
	maxRequestBodyBytes = 1 << 16
)

type videoRequest struct {
	VideoID string `json:"videoId"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type VideoResponse struct {
	Comments []models.EnrichedComment `json:"comments"`
	Summary  string                   `json:"summary"`
	Keywords []string                 `json:"keywords"`
}

type ThemeResponse struct {
	VideoResponse
	VideosUsed []models.VideoLink `json:"videosUsed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalyzeVideo(w http.ResponseWriter, r *http.Request) {
	var req videoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	videoID := processing.ParseVideoID(req.VideoID)
	if videoID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "videoId is required"})
		return
	}

	result, err := s.analyzer.AnalyzeVideo(r.Context(), videoID)
	if err != nil {
		slog.Error("[Server] Video analysis failed",
			slog.String("video_id", videoID),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: videoFailureMessage})
		return
	}

	writeJSON(w, http.StatusOK, NewVideoResponse(result))
}

func (s *Server) handleAnalyzeTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	theme := strings.TrimSpace(req.Theme)
	if theme == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "theme is required"})
		return
	}

	result, err := s.analyzer.AnalyzeTheme(r.Context(), theme)
	if err != nil {
		slog.Error("[Server] Theme analysis failed",
			slog.String("theme", theme),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: themeFailureMessage})
		return
	}

	writeJSON(w, http.StatusOK, NewThemeResponse(result))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	summarizerHealthy := true
	if s.opts.SummarizerHealthy != nil {
		summarizerHealthy = s.opts.SummarizerHealthy.Load()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"summarizer": summarizerHealthy,
	})
}

func (s *Server) handleQuota(w http.ResponseWriter, r *http.Request) {
	var used int64
	if s.opts.Quota != nil {
		var err error
		used, err = s.opts.Quota.QuotaUsage(r.Context(), clients.YOUTUBE_API_NAME)
		if err != nil {
			slog.Error("[Server] Failed to read quota usage", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to read quota"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"api":        clients.YOUTUBE_API_NAME,
		"units_used": used,
	})
}

// NewVideoResponse shapes a single-video result; empty lists encode as [].
func NewVideoResponse(result *models.AnalysisResult) VideoResponse {
	resp := VideoResponse{
		Comments: result.Comments,
		Summary:  result.Summary,
		Keywords: result.Keywords,
	}
	if resp.Comments == nil {
		resp.Comments = []models.EnrichedComment{}
	}
	if resp.Keywords == nil {
		resp.Keywords = []string{}
	}
	return resp
}

// NewThemeResponse shapes a theme result; videosUsed is always present.
func NewThemeResponse(result *models.AnalysisResult) ThemeResponse {
	videosUsed := result.VideosUsed
	if videosUsed == nil {
		videosUsed = []models.VideoLink{}
	}
	return ThemeResponse{
		VideoResponse: NewVideoResponse(result),
		VideosUsed:    videosUsed,
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("[Server] Failed to write response", slog.String("error", err.Error()))
	}
}
