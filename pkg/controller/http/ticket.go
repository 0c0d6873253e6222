package http

import (
	"net/http"
	"time"

	"github.com/mweegram/tickful/pkg/domain/model/auth"
	"github.com/mweegram/tickful/pkg/domain/types"
)

func actorID(r *http.Request) (types.UserID, bool) {
	token, err := auth.TokenFromContext(r.Context())
	if err != nil {
		return 0, false
	}
	return token.UserID, true
}

type ingestRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ticket, err := s.uc.Ticket.Ingest(r.Context(), req.Subject, req.Body)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusCreated, ticket)
}

type createTicketRequest struct {
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	QueueID   int64      `json:"queue_id"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (s *Server) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req createTicketRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var createdAt time.Time
	if req.CreatedAt != nil {
		createdAt = *req.CreatedAt
	}

	ticket, err := s.uc.Ticket.CreateManual(r.Context(),
		req.Title, req.Content, types.QueueID(req.QueueID), actor, createdAt)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusCreated, ticket)
}

func (s *Server) handleTicketDetail(w http.ResponseWriter, r *http.Request) {
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

	detail, err := s.uc.Ticket.Detail(r.Context(), types.TicketID(id), actor)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, detail)
}

type updateTicketRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	QueueID int64  `json:"queue_id"`
	Status  string `json:"status"`
}

func (s *Server) handleUpdateTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "ticketID")
	if err != nil {
		http.Error(w, "invalid ticket ID", http.StatusBadRequest)
		return
	}

	var req updateTicketRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	status, err := types.ParseTicketStatus(req.Status)
	if err != nil {
		http.Error(w, "invalid ticket status", http.StatusBadRequest)
		return
	}

	if err := s.uc.Ticket.Update(r.Context(),
		types.TicketID(id), req.Title, req.Content, types.QueueID(req.QueueID), status); err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

type claimResponse struct {
	Outcome string `json:"outcome"`
}

func (s *Server) handleClaimTicket(w http.ResponseWriter, r *http.Request) {
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

	outcome, err := s.uc.Ticket.Claim(r.Context(), types.TicketID(id), actor)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, claimResponse{Outcome: outcome.String()})
}

type resolveTicketRequest struct {
	Determination string `json:"determination"`
}

func (s *Server) handleResolveTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "ticketID")
	if err != nil {
		http.Error(w, "invalid ticket ID", http.StatusBadRequest)
		return
	}

	var req resolveTicketRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	determination, err := types.ParseDetermination(req.Determination)
	if err != nil {
		http.Error(w, "invalid determination", http.StatusBadRequest)
		return
	}

	if err := s.uc.Ticket.Resolve(r.Context(), types.TicketID(id), determination); err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleReopenTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "ticketID")
	if err != nil {
		http.Error(w, "invalid ticket ID", http.StatusBadRequest)
		return
	}

	if err := s.uc.Ticket.Reopen(r.Context(), types.TicketID(id)); err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleSummarizeTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "ticketID")
	if err != nil {
		http.Error(w, "invalid ticket ID", http.StatusBadRequest)
		return
	}

	summary, err := s.uc.Ticket.Summarize(r.Context(), types.TicketID(id))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if summary == nil {
		respondJSON(r.Context(), w, http.StatusNoContent, nil)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, summary)
}

type addCommentRequest struct {
	Text  string `json:"text"`
	Stage int    `json:"stage"`
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
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

	var req addCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	stage, err := types.ParseStage(req.Stage)
	if err != nil {
		http.Error(w, "invalid stage", http.StatusBadRequest)
		return
	}

	comment, err := s.uc.Comment.Add(r.Context(), types.TicketID(id), actor, req.Text, stage)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusCreated, comment)
}

type updateCommentRequest struct {
	Text  string `json:"text"`
	Stage int    `json:"stage"`
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "commentID")
	if err != nil {
		http.Error(w, "invalid comment ID", http.StatusBadRequest)
		return
	}

	var req updateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	stage, err := types.ParseStage(req.Stage)
	if err != nil {
		http.Error(w, "invalid stage", http.StatusBadRequest)
		return
	}

	if err := s.uc.Comment.Update(r.Context(), types.CommentID(id), req.Text, stage); err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleRemoveComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "commentID")
	if err != nil {
		http.Error(w, "invalid comment ID", http.StatusBadRequest)
		return
	}

	if err := s.uc.Comment.Remove(r.Context(), types.CommentID(id)); err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

type keyInfoRequest struct {
	Value string `json:"value"`
	Tag   string `json:"tag"`
}

func (s *Server) handleUpsertKeyInfo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "ticketID")
	if err != nil {
		http.Error(w, "invalid ticket ID", http.StatusBadRequest)
		return
	}

	var req keyInfoRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	info, err := s.uc.Evidence.Upsert(r.Context(), types.TicketID(id), req.Value, req.Tag)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, info)
}

type updateKeyInfoResponse struct {
	Updated bool `json:"updated"`
}

func (s *Server) handleUpdateKeyInfo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "keyInfoID")
	if err != nil {
		http.Error(w, "invalid key info ID", http.StatusBadRequest)
		return
	}

	var req keyInfoRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := s.uc.Evidence.Update(r.Context(), types.KeyInfoID(id), req.Value, req.Tag)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, updateKeyInfoResponse{Updated: updated})
}

func (s *Server) handleRemoveKeyInfo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "keyInfoID")
	if err != nil {
		http.Error(w, "invalid key info ID", http.StatusBadRequest)
		return
	}

	if err := s.uc.Evidence.Remove(r.Context(), types.KeyInfoID(id)); err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleKeyInfoStats(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")
	if value == "" {
		http.Error(w, "value query parameter is required", http.StatusBadRequest)
		return
	}

	stats, err := s.uc.Evidence.Stats(r.Context(), value)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, stats)
}
