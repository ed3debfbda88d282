package pages

import (
	"net/http"

	"EduPortal/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "eduportal_session"
	sessionUser   = "session_user"
)

// SessionMiddleware resolves the signed session cookie, if any, into the
// logged-in user. It never aborts; pages that need a login check the
// context themselves.
func (h *PagesHandler) SessionMiddleware(c *gin.Context) {
	raw, err := c.Cookie(sessionCookie)
	if err != nil || raw == "" {
		c.Next()
		return
	}

	userID, err := h.auth.ParseSession(raw)
	if err != nil {
		h.clearSession(c)
		c.Next()
		return
	}
	user, err := h.auth.User(c.Request.Context(), userID)
	if err != nil {
		h.clearSession(c)
		c.Next()
		return
	}

	c.Set(sessionUser, user)
	c.Next()
}

// RequireLogin redirects anonymous visitors to the login page.
func (h *PagesHandler) RequireLogin(c *gin.Context) {
	if _, ok := sessionUserFrom(c); !ok {
		c.Redirect(http.StatusFound, "/login/")
		c.Abort()
		return
	}
	c.Next()
}

func sessionUserFrom(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get(sessionUser)
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}

func (h *PagesHandler) setSession(c *gin.Context, value string) {
	c.SetCookie(sessionCookie, value, int(h.sessionTTL.Seconds()), "/", "", false, true)
}

func (h *PagesHandler) clearSession(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}
