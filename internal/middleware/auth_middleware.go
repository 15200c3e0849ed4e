package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"pinboard/internal/auth"
	"pinboard/internal/model"
	"pinboard/internal/repository"
	"pinboard/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	UserIDKey     = "user_id"
	UserKey       = "user"
	SessionKey    = "session"
	SessionCookie = "session_token"
	LoginPath     = "/login/"
)

// SessionAuth resolves the requester from the session cookie (or a Bearer
// token) and stores the user in the context. Requests without a valid session
// continue anonymously.
func SessionAuth(tokens *auth.Manager, users repository.UserRepositoryInterface, revoked session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := sessionToken(c)
		if tokenStr == "" {
			c.Next()
			return
		}

		sess, err := tokens.ParseToken(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		isRevoked, err := revoked.IsRevoked(c.Request.Context(), sess.TokenID)
		if err != nil {
			log.Error().Err(err).Msg("session revocation lookup failed")
			c.Next()
			return
		}
		if isRevoked {
			c.Next()
			return
		}

		user, err := users.GetByID(c.Request.Context(), sess.UserID)
		if err != nil {
			log.Error().Err(err).Str("user_id", sess.UserID.String()).Msg("session user lookup failed")
			c.Next()
			return
		}
		if user == nil {
			c.Next()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserKey, user)
		c.Set(SessionKey, sess)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// LoginRequired sends anonymous requesters to the login page, remembering where
// they were going.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// CurrentUser returns the authenticated requester, nil for anonymous requests.
func CurrentUser(c *gin.Context) *model.User {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

func CurrentSession(c *gin.Context) *auth.Session {
	v, exists := c.Get(SessionKey)
	if !exists {
		return nil
	}
	sess, _ := v.(*auth.Session)
	return sess
}
