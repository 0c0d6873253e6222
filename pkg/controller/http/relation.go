package http

import (
	"net/http"

	"github.com/mweegram/tickful/pkg/domain/types"
)

func (s *Server) handleListRelations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "ticketID")
	if err != nil {
		http.Error(w, "invalid ticket ID", http.StatusBadRequest)
		return
	}

	relations, err := s.uc.Relation.ListByTicket(r.Context(), types.TicketID(id))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, relations)
}

type linkRequest struct {
	OtherTicketID int64 `json:"other_ticket_id"`
}

type linkResponse struct {
	Created bool `json:"created"`
}

func (s *Server) handleLink(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "ticketID")
	if err != nil {
		http.Error(w, "invalid ticket ID", http.StatusBadRequest)
		return
	}

	var req linkRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := s.uc.Relation.Link(r.Context(),
		types.TicketID(id), types.TicketID(req.OtherTicketID))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, linkResponse{Created: created})
}

type bulkLinkRequest struct {
	TicketIDs []int64 `json:"ticket_ids"`
}

type linkCountResponse struct {
	Linked int `json:"linked"`
}

func (s *Server) handleBulkLink(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "ticketID")
	if err != nil {
		http.Error(w, "invalid ticket ID", http.StatusBadRequest)
		return
	}

	var req bulkLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	candidates := make([]types.TicketID, 0, len(req.TicketIDs))
	for _, tid := range req.TicketIDs {
		candidates = append(candidates, types.TicketID(tid))
	}

	linked, err := s.uc.Relation.BulkLinkToRoot(r.Context(), candidates, types.TicketID(id))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, linkCountResponse{Linked: linked})
}

func (s *Server) handleCliqueLink(w http.ResponseWriter, r *http.Request) {
	var req bulkLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ids := make([]types.TicketID, 0, len(req.TicketIDs))
	for _, tid := range req.TicketIDs {
		ids = append(ids, types.TicketID(tid))
	}

	linked, err := s.uc.Relation.CliqueLink(r.Context(), ids)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, linkCountResponse{Linked: linked})
}

type closeLinkedResponse struct {
	Closed int `json:"closed"`
}

func (s *Server) handleCloseLinked(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r, "ticketID")
	if err != nil {
		http.Error(w, "invalid ticket ID", http.StatusBadRequest)
		return
	}

	closed, err := s.uc.Relation.CloseLinked(r.Context(), types.TicketID(id), actor)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, closeLinkedResponse{Closed: closed})
}

func (s *Server) handleUnlink(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "relationshipID")
	if err != nil {
		http.Error(w, "invalid relationship ID", http.StatusBadRequest)
		return
	}

	if err := s.uc.Relation.Unlink(r.Context(), types.RelationshipID(id)); err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}
