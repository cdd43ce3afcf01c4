package http

import (
	"net/http"

	"omnipost/domain/dto"
	"omnipost/infrastructure/logger"
	"omnipost/usecase"

	"github.com/gin-gonic/gin"
)

type IAccountHandler interface {
	SaveCredentials(c *gin.Context)
	GetCredentials(c *gin.Context)
	ListAccounts(c *gin.Context)
	Disconnect(c *gin.Context)
	ConnectTwitter(c *gin.Context)
}

type AccountHandler struct {
	accountUsecase usecase.IAccountUsecase
}

func NewAccountHandler(accountUsecase usecase.IAccountUsecase) IAccountHandler {
	return &AccountHandler{accountUsecase: accountUsecase}
}

// SaveCredentials handles PUT /api/credentials/:platform.
func (h *AccountHandler) SaveCredentials(c *gin.Context) {
	var req dto.ReqSaveCredentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	userID := c.GetString("user_id")
	platform := c.Param("platform")
	if err := h.accountUsecase.SaveCredentials(c.Request.Context(), userID, platform, req); err != nil {
		logger.GetLogger().WithField("error", err).Error("failed to save credentials")
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

// GetCredentials handles GET /api/credentials/:platform. The secret is never
// echoed back.
func (h *AccountHandler) GetCredentials(c *gin.Context) {
	userID := c.GetString("user_id")
	platform := c.Param("platform")
	status, err := h.accountUsecase.GetCredentials(c.Request.Context(), userID, platform)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: status})
}

// ListAccounts handles GET /api/accounts.
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	userID := c.GetString("user_id")
	accounts, err := h.accountUsecase.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("failed to list accounts")
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: "General error"})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: accounts})
}

// Disconnect handles DELETE /api/accounts/:accountId.
func (h *AccountHandler) Disconnect(c *gin.Context) {
	userID := c.GetString("user_id")
	accountID := c.Param("accountId")
	if err := h.accountUsecase.Disconnect(c.Request.Context(), userID, accountID); err != nil {
		c.JSON(http.StatusNotFound, dto.Res{ResponseCode: "404", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

// ConnectTwitter handles POST /api/accounts/twitter. Twitter access tokens
// are user generated, there is no redirect flow.
func (h *AccountHandler) ConnectTwitter(c *gin.Context) {
	var req dto.ReqConnectTwitter
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	userID := c.GetString("user_id")
	if err := h.accountUsecase.ConnectTwitter(c.Request.Context(), userID, req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success"})
}
