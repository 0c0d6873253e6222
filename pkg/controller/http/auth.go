package http

import (
	"net/http"

	"github.com/mweegram/tickful/pkg/domain/model/auth"
)

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type meResponse struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// authMiddleware resolves the session cookies to a token and stores it in
// the request context. Requests without a valid session are rejected.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idCookie, err := r.Cookie("token_id")
		if err != nil {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		secretCookie, err := r.Cookie("token_secret")
		if err != nil {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		token, err := s.uc.Auth.Validate(r.Context(),
			auth.TokenID(idCookie.Value), auth.TokenSecret(secretCookie.Value))
		if err != nil {
			http.Error(w, "Invalid authentication token", http.StatusUnauthorized)
			return
		}

		ctx := auth.ContextWithToken(r.Context(), token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, err := s.uc.Auth.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	secure := r.TLS != nil
	http.SetCookie(w, &http.Cookie{
		Name:     "token_id",
		Value:    string(token.ID),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  token.ExpiresAt,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "token_secret",
		Value:    string(token.Secret),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  token.ExpiresAt,
	})

	respondJSON(r.Context(), w, http.StatusOK, meResponse{
		UserID:   int64(token.UserID),
		UserName: token.UserName,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if idCookie, err := r.Cookie("token_id"); err == nil {
		if err := s.uc.Auth.Logout(r.Context(), auth.TokenID(idCookie.Value)); err != nil {
			s.handleError(w, r, err)
			return
		}
	}

	// Expire the cookies regardless of whether the session was known.
	for _, name := range []string{"token_id", "token_secret"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		})
	}

	respondJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	token, err := auth.TokenFromContext(r.Context())
	if err != nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, meResponse{
		UserID:   int64(token.UserID),
		UserName: token.UserName,
	})
}
