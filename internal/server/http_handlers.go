package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/kg"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/metrics"
)

func (s *Server) registerHTTPHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /question", s.handleQuestion)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /graph/{entity}", s.handleNeighborhood)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleQuestion runs the query pipeline for one question and optionally
// asks the LLM for a prose answer over the returned facts.
//
// Status mapping: resolver rejections (unresolved entity, ambiguous
// intent) are the caller's problem and map to 400; malformed plans and
// infrastructure faults are ours and map to 500.
func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	var req QuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.Question == "" {
		s.writeHTTPError(w, http.StatusBadRequest, "question must not be empty")
		return
	}

	result := s.engine.Ask(req.Question)
	metrics.QuestionsTotal.WithLabelValues(outcomeOf(result)).Inc()

	resp := QuestionResponse{
		QueryID:   uuid.NewString(),
		Question:  req.Question,
		Success:   result.Success,
		QueryType: result.QueryType,
		Results:   result.Results,
		Note:      result.Note,
		Error:     result.Error,
		ErrorKind: result.ErrorKind,
	}

	if !result.Success {
		status := http.StatusInternalServerError
		switch result.ErrorKind {
		case kg.FailUnresolvedEntity, kg.FailAmbiguousIntent:
			status = http.StatusBadRequest
		}
		s.writeJSON(w, status, resp)
		return
	}

	plan := result.Plan
	resp.Plan = &plan

	if req.Narrative && s.generator != nil {
		answer, err := s.generator.Generate(r.Context(), req.Question, result)
		if err != nil {
			// The facts stand on their own; report the degradation
			// instead of failing the whole request.
			slog.Warn("narrative generation failed", "question", req.Question, "err", err)
			resp.Note = "narrative answer unavailable"
		} else {
			resp.Answer = answer
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.Graph().Stats())
}

// handleNeighborhood returns an entity's direct connections in both
// directions, mainly for dataset inspection.
func (s *Server) handleNeighborhood(w http.ResponseWriter, r *http.Request) {
	entity := r.PathValue("entity")
	g := s.engine.Graph()

	typ, ok := g.TypeOf(entity)
	if !ok {
		s.writeHTTPError(w, http.StatusNotFound, "unknown entity: "+entity)
		return
	}
	canonical, _ := g.CanonicalName(entity)

	resp := NeighborhoodResponse{
		Entity:   canonical,
		Type:     string(typ),
		Outgoing: toNeighborJSON(g.OutEdges(entity)),
		Incoming: toNeighborJSON(g.InEdges(entity)),
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func toNeighborJSON(edges []kg.Edge) []NeighborJSON {
	out := make([]NeighborJSON, 0, len(edges))
	for _, e := range edges {
		out = append(out, NeighborJSON{
			Relation: string(e.Label),
			Entity:   e.Peer,
			Type:     string(e.Type),
		})
	}
	return out
}

// outcomeOf labels a result for the questions counter.
func outcomeOf(result kg.QueryResult) string {
	if !result.Success {
		return string(result.ErrorKind)
	}
	if len(result.Results) == 0 {
		return "empty"
	}
	return "answered"
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

func (s *Server) writeHTTPError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}
