package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/usecase"
	"github.com/mweegram/tickful/pkg/utils/errutil"
	"github.com/mweegram/tickful/pkg/utils/logging"
	"github.com/mweegram/tickful/pkg/utils/safe"
)

// Server is the JSON API over the ticketing engine. It stays thin: handlers
// parse the request, call one usecase, and encode the result. Domain rules
// never live here.
type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()
	s := &Server{
		router: r,
		uc:     uc,
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.With(s.authMiddleware).Get("/me", s.handleMe)
	})

	// Ingestion endpoint is unauthenticated: it is the programmatic intake
	// fed by the mail pipeline.
	r.Post("/api/ingest", s.handleIngest)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Route("/tickets", func(r chi.Router) {
			r.Post("/", s.handleCreateTicket)
			r.Get("/{ticketID}", s.handleTicketDetail)
			r.Put("/{ticketID}", s.handleUpdateTicket)
			r.Post("/{ticketID}/claim", s.handleClaimTicket)
			r.Post("/{ticketID}/resolve", s.handleResolveTicket)
			r.Post("/{ticketID}/reopen", s.handleReopenTicket)
			r.Get("/{ticketID}/summary", s.handleSummarizeTicket)

			r.Post("/{ticketID}/comments", s.handleAddComment)
			r.Post("/{ticketID}/keyinfo", s.handleUpsertKeyInfo)

			r.Get("/{ticketID}/relations", s.handleListRelations)
			r.Post("/{ticketID}/relations", s.handleLink)
			r.Post("/{ticketID}/relations/bulk", s.handleBulkLink)
			r.Post("/{ticketID}/close-linked", s.handleCloseLinked)
		})
		r.Post("/relations/clique", s.handleCliqueLink)
		r.Delete("/relations/{relationshipID}", s.handleUnlink)

		r.Put("/comments/{commentID}", s.handleUpdateComment)
		r.Delete("/comments/{commentID}", s.handleRemoveComment)

		r.Put("/keyinfo/{keyInfoID}", s.handleUpdateKeyInfo)
		r.Delete("/keyinfo/{keyInfoID}", s.handleRemoveKeyInfo)
		r.Get("/keyinfo/stats", s.handleKeyInfoStats)

		r.Route("/knowledge", func(r chi.Router) {
			r.Get("/", s.handleListMaps)
			r.Post("/", s.handleCreateMap)
			r.Get("/{mapID}", s.handleGetMap)
			r.Put("/{mapID}", s.handleUpdateMap)
			r.Delete("/{mapID}", s.handleDeleteMap)
			r.Get("/{mapID}/stats", s.handleMappingStats)
			r.Get("/{mapID}/guidance", s.handleListGuidance)
			r.Post("/{mapID}/guidance", s.handleAddGuidance)
		})
		r.Put("/guidance/{guidanceID}", s.handleUpdateGuidance)
		r.Delete("/guidance/{guidanceID}", s.handleRemoveGuidance)

		r.Route("/queues", func(r chi.Router) {
			r.Get("/", s.handleListQueues)
			r.Post("/", s.handleCreateQueue)
			r.Get("/{queueID}/board", s.handleBoard)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", s.handleRegisterUser)
			r.Get("/{userID}/tickets", s.handleUserTickets)
			r.Put("/{userID}/queue", s.handleUpdateUserQueue)
		})

		r.Get("/dashboard", s.handleDashboard)
		r.Get("/dashboard/overdue", s.handleUntakenOverdue)
		r.Get("/dashboard/queues", s.handleBusiestQueues)
		r.Get("/search", s.handleSearch)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	if body == nil {
		w.WriteHeader(status)
		return
	}

	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to encode response"), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// handleError maps domain sentinels to HTTP statuses; anything else is a
// server error.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrTicketNotFound),
		errors.Is(err, usecase.ErrCommentNotFound),
		errors.Is(err, usecase.ErrKeyInfoNotFound),
		errors.Is(err, usecase.ErrQueueNotFound),
		errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrKnowledgeMapNotFound),
		errors.Is(err, usecase.ErrGuidanceNotFound),
		errors.Is(err, usecase.ErrRelationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrDuplicateName),
		errors.Is(err, usecase.ErrDuplicateTitle):
		status = http.StatusConflict
	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, usecase.ErrNoLinksCreated):
		status = http.StatusBadRequest
	}

	errutil.HandleHTTP(r.Context(), w, err, status)
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}
