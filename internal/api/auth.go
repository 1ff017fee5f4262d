package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/forkful/recipebook/internal/service"
	"github.com/forkful/recipebook/internal/session"
)

const (
	stateCookie   = "oauth_state"
	stateTTL      = 10 * time.Minute
	failurePath   = "/auth/google/failure"
	postLoginPath = "/api-docs"

	// GoogleUserInfoURL is the profile endpoint queried after the code
	// exchange. Overridable in tests.
	GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// AuthHandler drives the Google OAuth login flow and session lifecycle.
type AuthHandler struct {
	oauth         *oauth2.Config
	userInfoURL   string
	auth          *service.AuthService
	sessions      session.Store
	sessionTTL    time.Duration
	secureCookies bool
	logger        zerolog.Logger
}

// AuthHandlerConfig configures an AuthHandler.
type AuthHandlerConfig struct {
	OAuth         *oauth2.Config
	UserInfoURL   string
	SessionTTL    time.Duration
	SecureCookies bool
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(cfg AuthHandlerConfig, auth *service.AuthService, sessions session.Store, logger zerolog.Logger) *AuthHandler {
	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = GoogleUserInfoURL
	}
	return &AuthHandler{
		oauth:         cfg.OAuth,
		userInfoURL:   userInfoURL,
		auth:          auth,
		sessions:      sessions,
		sessionTTL:    cfg.SessionTTL,
		secureCookies: cfg.SecureCookies,
		logger:        logger,
	}
}

// RegisterRoutes mounts the auth routes.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/google", h.GoogleLogin)
	router.GET("/google/callback", h.GoogleCallback)
	router.GET("/google/failure", h.GoogleFailure)
	router.POST("/logout", h.Logout)
}

// GoogleLogin starts the OAuth flow: it stores a state nonce in a
// short-lived cookie and redirects to the provider's consent page.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, int(stateTTL.Seconds()), "/", "", h.secureCookies, true)
	c.Redirect(http.StatusFound, h.oauth.AuthCodeURL(state))
}

// googleProfile is the subset of the provider userinfo payload we use.
type googleProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleCallback completes the flow: verifies state, exchanges the code,
// fetches the profile, resolves the user, and opens a session. Any
// provider-side failure redirects to the failure endpoint.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		h.logger.Warn().Str("provider_error", errParam).Msg("oauth callback rejected")
		c.Redirect(http.StatusFound, failurePath)
		return
	}

	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		h.logger.Warn().Msg("oauth state mismatch")
		c.Redirect(http.StatusFound, failurePath)
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", h.secureCookies, true)

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, failurePath)
		return
	}

	ctx := c.Request.Context()
	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		h.logger.Warn().Err(err).Msg("oauth code exchange failed")
		c.Redirect(http.StatusFound, failurePath)
		return
	}

	profile, err := h.fetchProfile(c, token)
	if err != nil {
		h.logger.Warn().Err(err).Msg("oauth profile fetch failed")
		c.Redirect(http.StatusFound, failurePath)
		return
	}

	user, err := h.auth.ResolveUser(ctx, service.Profile{
		Provider:   "google",
		ProviderID: profile.ID,
		Name:       profile.Name,
		Email:      profile.Email,
	})
	if err != nil {
		fail(c, err)
		return
	}

	sid, err := h.sessions.Create(ctx, user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, sid, int(h.sessionTTL.Seconds()), "/", "", h.secureCookies, true)
	c.Redirect(http.StatusFound, postLoginPath)
}

func (h *AuthHandler) fetchProfile(c *gin.Context, token *oauth2.Token) (*googleProfile, error) {
	client := h.oauth.Client(c.Request.Context(), token)
	resp, err := client.Get(h.userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("userinfo payload missing subject id")
	}
	return &profile, nil
}

// GoogleFailure reports a failed provider login.
func (h *AuthHandler) GoogleFailure(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{"message": "Authentication failed"},
	})
}

// Logout destroys the current session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid, err := c.Cookie(session.CookieName); err == nil && sid != "" {
		if err := h.sessions.Destroy(c.Request.Context(), sid); err != nil {
			fail(c, err)
			return
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
