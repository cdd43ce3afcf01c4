package http

import (
	"errors"
	"net/http"
	"strconv"

	"omnipost/domain/dto"
	"omnipost/infrastructure/logger"
	"omnipost/usecase"

	"github.com/gin-gonic/gin"
)

type IPublishHandler interface {
	Publish(c *gin.Context)
	History(c *gin.Context)
}

type PublishHandler struct {
	publishUsecase usecase.IPublishUsecase
}

func NewPublishHandler(publishUsecase usecase.IPublishUsecase) IPublishHandler {
	return &PublishHandler{publishUsecase: publishUsecase}
}

// Publish handles POST /api/publish/:platform.
func (h *PublishHandler) Publish(c *gin.Context) {
	var req dto.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	userID := c.GetString("user_id")
	platform := c.Param("platform")

	result, err := h.publishUsecase.Publish(c.Request.Context(), userID, platform, &req)
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("platform", platform).
			Error("publish failed")
		c.JSON(http.StatusBadGateway, dto.Res{ResponseCode: "502", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: result})
}

// History handles GET /api/publish/history.
func (h *PublishHandler) History(c *gin.Context) {
	userID := c.GetString("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := h.publishUsecase.History(c.Request.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, usecase.ErrHistoryUnavailable) {
			c.JSON(http.StatusServiceUnavailable, dto.Res{ResponseCode: "503", ResponseMessage: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: "General error"})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: records})
}
