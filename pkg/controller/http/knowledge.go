package http

import (
	"net/http"

	"github.com/mweegram/tickful/pkg/domain/types"
)

type knowledgeMapRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (s *Server) handleListMaps(w http.ResponseWriter, r *http.Request) {
	maps, err := s.uc.Knowledge.ListMaps(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, maps)
}

func (s *Server) handleCreateMap(w http.ResponseWriter, r *http.Request) {
	var req knowledgeMapRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	km, err := s.uc.Knowledge.CreateMap(r.Context(), req.Title, req.Body)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusCreated, km)
}

func (s *Server) handleGetMap(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "mapID")
	if err != nil {
		http.Error(w, "invalid knowledge map ID", http.StatusBadRequest)
		return
	}

	km, err := s.uc.Knowledge.GetMap(r.Context(), types.KnowledgeMapID(id))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, km)
}

func (s *Server) handleUpdateMap(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "mapID")
	if err != nil {
		http.Error(w, "invalid knowledge map ID", http.StatusBadRequest)
		return
	}

	var req knowledgeMapRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.uc.Knowledge.UpdateMap(r.Context(), types.KnowledgeMapID(id), req.Title, req.Body); err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleDeleteMap(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "mapID")
	if err != nil {
		http.Error(w, "invalid knowledge map ID", http.StatusBadRequest)
		return
	}

	if err := s.uc.Knowledge.DeleteMap(r.Context(), types.KnowledgeMapID(id)); err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleMappingStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "mapID")
	if err != nil {
		http.Error(w, "invalid knowledge map ID", http.StatusBadRequest)
		return
	}

	stats, err := s.uc.Knowledge.StatsForMapping(r.Context(), types.KnowledgeMapID(id))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, stats)
}

type guidanceRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (s *Server) handleListGuidance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "mapID")
	if err != nil {
		http.Error(w, "invalid knowledge map ID", http.StatusBadRequest)
		return
	}

	guidance, err := s.uc.Knowledge.ListGuidance(r.Context(), types.KnowledgeMapID(id))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, guidance)
}

func (s *Server) handleAddGuidance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "mapID")
	if err != nil {
		http.Error(w, "invalid knowledge map ID", http.StatusBadRequest)
		return
	}

	var req guidanceRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	guidance, err := s.uc.Knowledge.AddGuidance(r.Context(), types.KnowledgeMapID(id), req.Title, req.Body)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusCreated, guidance)
}

func (s *Server) handleUpdateGuidance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "guidanceID")
	if err != nil {
		http.Error(w, "invalid guidance ID", http.StatusBadRequest)
		return
	}

	var req guidanceRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.uc.Knowledge.UpdateGuidance(r.Context(), types.GuidanceID(id), req.Title, req.Body); err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleRemoveGuidance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "guidanceID")
	if err != nil {
		http.Error(w, "invalid guidance ID", http.StatusBadRequest)
		return
	}

	if err := s.uc.Knowledge.RemoveGuidance(r.Context(), types.GuidanceID(id)); err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}
