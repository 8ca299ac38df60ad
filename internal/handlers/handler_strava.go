package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/athlog/training_log_app/internal/core/ports/services"
	"github.com/athlog/training_log_app/internal/dto"
	"github.com/athlog/training_log_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// stateCookieName holds the CSRF state between the authorize redirect and
// the provider callback.
const stateCookieName = "strava_oauth_state"

// stateCookieMaxAge bounds how long an authorization round-trip may take.
const stateCookieMaxAge = 600

// stravaHandler handles the provider OAuth flow and activity sync.
type stravaHandler struct {
	stravaService portssvc.StravaSvcFacade
	secureCookies bool
}

func newStravaHandler(ss portssvc.StravaSvcFacade, secureCookies bool) *stravaHandler {
	return &stravaHandler{
		stravaService: ss,
		secureCookies: secureCookies,
	}
}

// registerStravaRoutes registers the provider integration routes.
func registerStravaRoutes(rg *gin.RouterGroup, stravaService portssvc.StravaSvcFacade, secureCookies bool) {
	h := newStravaHandler(stravaService, secureCookies)

	strava := rg.Group("/strava")
	{
		strava.GET("/authorize", h.authorize)
		strava.GET("/callback", h.callback)
		strava.POST("/sync", h.sync)
	}
}

// authorize sends the user to the provider's consent screen. The CSRF
// state travels in a short-lived cookie and must echo back on the
// callback. Clients that cannot follow a redirect may pass redirect=false
// to receive the URL as JSON instead.
func (h *stravaHandler) authorize(c *gin.Context) {
	url, state, err := h.stravaService.AuthorizationURL(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to build authorization URL")
		return
	}

	c.SetCookie(stateCookieName, state, stateCookieMaxAge, "/", "", h.secureCookies, true)

	if c.Query("redirect") == "false" {
		c.JSON(http.StatusOK, dto.AuthorizeRedirectResponse{AuthorizeURL: url, State: state})
		return
	}
	c.Redirect(http.StatusFound, url)
}

// callback completes the OAuth exchange: the state must match the cookie
// set by authorize, then the code is exchanged and both token rows stored.
func (h *stravaHandler) callback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "must provide an authorization code"})
		return
	}

	expectedState, err := c.Cookie(stateCookieName)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch on callback", slog.String("user_id", userID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "state mismatch, please restart the authorization"})
		return
	}
	// One-shot: clear the state cookie whatever happens next
	c.SetCookie(stateCookieName, "", -1, "/", "", h.secureCookies, true)

	if err := h.stravaService.CompleteAuthorization(c.Request.Context(), userID, code); err != nil {
		respondServiceError(c, err, "Failed to complete Strava authorization")
		return
	}

	logger.Info("Strava account connected", slog.String("user_id", userID))
	c.JSON(http.StatusOK, gin.H{"message": "Strava account connected"})
}

// sync imports the user's provider activities as workout rows.
func (h *stravaHandler) sync(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	imported, err := h.stravaService.SyncActivities(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to sync Strava activities")
		return
	}

	c.JSON(http.StatusOK, dto.SyncActivitiesResponse{Imported: imported})
}
