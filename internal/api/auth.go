package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/lifeforge/lifeforge/internal/domain"
	"github.com/lifeforge/lifeforge/internal/infra/metrics"
	"github.com/lifeforge/lifeforge/internal/security"
)

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "lifeforge_session"

// SessionTTL is how long a login lasts.
const SessionTTL = 30 * 24 * time.Hour

type ctxKey int

const userKey ctxKey = 0

// userFrom pulls the authenticated user out of the request context.
// Only valid below requireSession.
func userFrom(r *http.Request) *domain.User {
	u, _ := r.Context().Value(userKey).(*domain.User)
	return u
}

// requireSession resolves the session cookie to a user, or 401s.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not logged in")
			return
		}

		sess, err := s.db.GetSession(cookie.Value)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if sess == nil || sess.Expired(s.now()) {
			writeError(w, http.StatusUnauthorized, domain.ErrSessionExpired.Error())
			return
		}

		user, err := s.db.GetUser(sess.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if user == nil {
			writeError(w, http.StatusUnauthorized, domain.ErrUserNotFound.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// --- /api/auth/login ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, hash, err := s.db.GetUserByUsername(req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil || !security.VerifyPassword(hash, req.Password) {
		metrics.Logins.WithLabelValues("failure").Inc()
		writeError(w, http.StatusUnauthorized, domain.ErrBadCredentials.Error())
		return
	}

	token, err := security.NewSessionToken()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sess := domain.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(SessionTTL),
	}
	if err := s.db.CreateSession(sess); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	metrics.Logins.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, user)
}

// --- /api/auth/logout ---

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if err := s.db.DeleteSession(cookie.Value); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// --- /api/me ---

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFrom(r))
}
