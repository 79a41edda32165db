package http

import (
	"vidstream/internal/usecase"
	"vidstream/pkg/config"
	"vidstream/pkg/middleware"
	"vidstream/pkg/token"

	"github.com/gin-gonic/gin"
)

// SessionWriter maps a token pair onto the two session cookies. Both
// cookies are HttpOnly; Secure is set only in production so local
// development over plain HTTP keeps working.
type SessionWriter struct {
	secure        bool
	accessMaxAge  int
	refreshMaxAge int
}

func NewSessionWriter(cfg *config.Config, tokenService *token.Service) *SessionWriter {
	return &SessionWriter{
		secure:        cfg.IsProduction(),
		accessMaxAge:  int(tokenService.AccessExpiry().Seconds()),
		refreshMaxAge: int(tokenService.RefreshExpiry().Seconds()),
	}
}

func (s *SessionWriter) SetSession(c *gin.Context, pair *usecase.TokenPair) {
	c.SetCookie(middleware.AccessTokenCookie, pair.AccessToken, s.accessMaxAge, "/", "", s.secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, pair.RefreshToken, s.refreshMaxAge, "/", "", s.secure, true)
}

func (s *SessionWriter) ClearSession(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", s.secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", s.secure, true)
}

// refreshTokenFromRequest reads the refresh token from the session
// cookie first, then from the JSON body.
func refreshTokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(middleware.RefreshTokenCookie); err == nil && cookie != "" {
		return cookie
	}

	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&body); err == nil {
		return body.RefreshToken
	}
	return ""
}
