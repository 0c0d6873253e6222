package http

import (
	"net/http"

	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// userResponse exposes an account without its credential hash.
type userResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	QueueID int64  `json:"queue_id"`
}

func newUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:      int64(u.ID),
		Name:    u.Name,
		Email:   u.Email,
		QueueID: int64(u.QueueID),
	}
}

func (s *Server) handleListQueues(w http.ResponseWriter, r *http.Request) {
	queues, err := s.uc.Directory.ListQueues(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, queues)
}

type createQueueRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateQueue(w http.ResponseWriter, r *http.Request) {
	var req createQueueRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	queue, err := s.uc.Directory.CreateQueue(r.Context(), req.Name)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusCreated, queue)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "queueID")
	if err != nil {
		http.Error(w, "invalid queue ID", http.StatusBadRequest)
		return
	}

	board, err := s.uc.Ticket.Board(r.Context(), types.QueueID(id))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, board)
}

type registerUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Email    string `json:"email"`
	QueueID  int64  `json:"queue_id"`
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := s.uc.Directory.Register(r.Context(),
		req.Name, req.Password, req.Email, types.QueueID(req.QueueID))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusCreated, newUserResponse(user))
}

func (s *Server) handleUserTickets(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userID")
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	tickets, err := s.uc.Ticket.ListByOwner(r.Context(), types.UserID(id))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, tickets)
}

type updateUserQueueRequest struct {
	QueueID int64 `json:"queue_id"`
}

func (s *Server) handleUpdateUserQueue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userID")
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	var req updateUserQueueRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := s.uc.Directory.UpdateUserQueue(r.Context(),
		types.UserID(id), types.QueueID(req.QueueID))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, newUserResponse(user))
}
