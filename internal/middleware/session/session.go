// Package session provides middleware attaching a dashboard view to each request
package session

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/hotelops-dashboard/internal/dashboard"
	"github.com/gravadigital/hotelops-dashboard/internal/logger"
	"github.com/gravadigital/hotelops-dashboard/internal/response"
	"github.com/gravadigital/hotelops-dashboard/internal/session"
)

const viewKey = "dashboard_view"

// Start resolves the caller's session, creating and mounting a new one when
// the cookie is missing, invalid or expired. Only the dashboard page uses it.
func Start(manager *session.Manager, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(session.CookieName)

		sid, view, ok := manager.Lookup(token)
		if !ok {
			var err error
			sid, view, err = manager.Create(c.Request.Context())
			if errors.Is(err, session.ErrSessionLimit) {
				c.AbortWithStatus(http.StatusServiceUnavailable)
				return
			}
			if err != nil {
				logger.HTTP().Error("Failed to start session", "error", err)
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
		}

		attach(c, manager, secure, sid, view)
	}
}

// Require resolves the caller's session without ever creating one. Requests
// without a live session are answered by missing and go no further.
func Require(manager *session.Manager, secure bool, missing gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(session.CookieName)

		sid, view, ok := manager.Lookup(token)
		if !ok {
			missing(c)
			c.Abort()
			return
		}

		attach(c, manager, secure, sid, view)
	}
}

// RedirectHome sends callers without a session to the dashboard page
func RedirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// NotFound answers callers without a session with a 404
func NotFound(c *gin.Context) {
	response.NotFoundError(c, "Session not found")
}

func attach(c *gin.Context, manager *session.Manager, secure bool, sid string, view *dashboard.View) {
	signed, err := manager.Sign(sid)
	if err != nil {
		logger.HTTP().Error("Failed to sign session", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, signed, int(manager.TTL().Seconds()), "/", "", secure, true)
	c.Set(viewKey, view)
	c.Next()
}

// View returns the dashboard view attached by Start or Require
func View(c *gin.Context) *dashboard.View {
	value, ok := c.Get(viewKey)
	if !ok {
		return nil
	}
	return value.(*dashboard.View)
}
