package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/aloud/internal/assist"
	"github.com/abhisek/aloud/internal/catalog"
	"github.com/abhisek/aloud/internal/llm"
)

// assistResponse is the body of POST /api/assist.
type assistResponse struct {
	Segments []assist.Segment `json:"segments,omitempty"`
	HTML     string           `json:"html"`
	Error    string           `json:"error,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, assist.SolveResponse{Error: message})
}

func (s *Server) decodeSolve(w http.ResponseWriter, r *http.Request) (assist.SolveRequest, bool) {
	var req assist.SolveRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return req, false
	}
	return req, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	body, ok := s.decodeSolve(w, r)
	if !ok {
		return
	}

	req := assist.RequestFromSolve(body)
	req.Challenge = strings.TrimSpace(req.Challenge)
	req.SuggestedSolution = strings.TrimSpace(req.SuggestedSolution)
	if req.Challenge == "" {
		s.respondError(w, http.StatusBadRequest, assist.EmptyInputMessage)
		return
	}
	if req.Style == catalog.StyleMeta {
		s.respondJSON(w, http.StatusOK, assist.SolveResponse{Solution: assist.MetaMessage})
		return
	}

	ctx := llm.WithPurpose(r.Context(), string(req.Style))
	solution, err := s.completer.Complete(ctx, req)
	if err != nil {
		s.log.Error("failed to generate solution",
			zap.String("task", req.TaskName),
			zap.String("style", string(req.Style)),
			zap.String("request_id", requestID(r)),
			zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, assist.DefaultErrorMessage)
		return
	}

	s.respondJSON(w, http.StatusOK, assist.SolveResponse{Solution: solution})
}

func (s *Server) handleAssist(w http.ResponseWriter, r *http.Request) {
	body, ok := s.decodeSolve(w, r)
	if !ok {
		return
	}

	task := catalog.Task{Name: body.TaskName, Style: catalog.Style(body.TaskStyle)}
	reply, err := s.dispatcher.Dispatch(r.Context(), task, body.ChallengeQuestion, body.SuggestedSolution)
	if err != nil {
		s.respondJSON(w, assistStatus(err), assistResponse{
			HTML:  assist.RenderErrorHTML(err),
			Error: assist.UserMessage(err),
		})
		return
	}

	s.respondJSON(w, http.StatusOK, assistResponse{
		Segments: reply.Segments,
		HTML:     assist.RenderHTML(*reply),
	})
}

func assistStatus(err error) int {
	var re *assist.RequestError
	if !errors.As(err, &re) {
		return http.StatusInternalServerError
	}
	switch re.Kind {
	case assist.KindEmptyInput:
		return http.StatusBadRequest
	case assist.KindMalformedReply:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
