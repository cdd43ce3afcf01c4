package http

import (
	"fmt"
	"net/http"
	"net/url"

	"omnipost/domain/dto"
	"omnipost/infrastructure/cache"
	"omnipost/infrastructure/configuration"
	"omnipost/infrastructure/logger"
	"omnipost/usecase"

	"github.com/gin-gonic/gin"
)

// IOAuthHandler serves the authorization entry points and provider callbacks
// for one platform.
type IOAuthHandler interface {
	GetAuthURL(c *gin.Context)
	HandleCallback(c *gin.Context)
}

// OAuthHandler is parameterized over the platform; the usecase dispatch
// functions carry the platform-specific behavior.
type OAuthHandler struct {
	platform string
	states   cache.IStateStore
	authURL  func(c *gin.Context, userID string) (string, error)
	connect  func(c *gin.Context, userID, code string) error
}

func NewYouTubeOAuthHandler(accountUsecase usecase.IAccountUsecase, states cache.IStateStore) IOAuthHandler {
	return &OAuthHandler{
		platform: "youtube",
		states:   states,
		authURL: func(c *gin.Context, userID string) (string, error) {
			return accountUsecase.YouTubeAuthURL(c.Request.Context(), userID)
		},
		connect: func(c *gin.Context, userID, code string) error {
			return accountUsecase.ConnectYouTube(c.Request.Context(), userID, code)
		},
	}
}

func NewInstagramOAuthHandler(accountUsecase usecase.IAccountUsecase, states cache.IStateStore) IOAuthHandler {
	return &OAuthHandler{
		platform: "instagram",
		states:   states,
		authURL: func(c *gin.Context, userID string) (string, error) {
			return accountUsecase.InstagramAuthURL(c.Request.Context(), userID)
		},
		connect: func(c *gin.Context, userID, code string) error {
			return accountUsecase.ConnectInstagram(c.Request.Context(), userID, code)
		},
	}
}

// GetAuthURL handles GET /api/auth/{platform}. Requires an authenticated
// caller so the state nonce can be bound to their user id.
func (h *OAuthHandler) GetAuthURL(c *gin.Context) {
	userID := c.GetString("user_id")
	authURL, err := h.authURL(c, userID)
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("platform", h.platform).
			Error("failed to build authorization url")
		c.JSON(http.StatusBadRequest, dto.Res{
			ResponseCode:    "400",
			ResponseMessage: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"auth_url": authURL})
}

// HandleCallback handles GET /auth/{platform}/callback. The provider calls
// this without our auth header, so identity comes from the consumed state.
// All outcomes end in a redirect back to the UI.
func (h *OAuthHandler) HandleCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		description := c.Query("error_description")
		if description == "" {
			description = errParam
		}
		h.redirectError(c, description)
		return
	}

	userID, err := h.states.ConsumeState(c.Request.Context(), c.Query("state"))
	if err != nil {
		h.redirectError(c, "invalid or expired state, start the connection again")
		return
	}

	code := c.Query("code")
	if code == "" {
		h.redirectError(c, "authorization code missing")
		return
	}

	if err := h.connect(c, userID, code); err != nil {
		logger.GetLogger().WithField("error", err).WithField("platform", h.platform).
			Error("oauth connect failed")
		h.redirectError(c, err.Error())
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s?connected=%s",
		configuration.C.UI.ConnectedAccountsURL, h.platform))
}

func (h *OAuthHandler) redirectError(c *gin.Context, message string) {
	c.Redirect(http.StatusFound, fmt.Sprintf("%s?platform=%s&error=%s",
		configuration.C.UI.ConfigurationURL, h.platform, url.QueryEscape(message)))
}
