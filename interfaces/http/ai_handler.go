package http

import (
	"net/http"

	"omnipost/domain/dto"
	"omnipost/usecase"

	"github.com/gin-gonic/gin"
)

type IAIHandler interface {
	Caption(c *gin.Context)
	Script(c *gin.Context)
	Hashtags(c *gin.Context)
	CampaignIdeas(c *gin.Context)
}

type AIHandler struct {
	aiUsecase usecase.IAIUsecase
}

func NewAIHandler(aiUsecase usecase.IAIUsecase) IAIHandler {
	return &AIHandler{aiUsecase: aiUsecase}
}

func (h *AIHandler) Caption(c *gin.Context) {
	var req dto.CaptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	result, err := h.aiUsecase.Caption(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.Res{ResponseCode: "502", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: result})
}

func (h *AIHandler) Script(c *gin.Context) {
	var req dto.ScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	result, err := h.aiUsecase.Script(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.Res{ResponseCode: "502", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: result})
}

func (h *AIHandler) Hashtags(c *gin.Context) {
	var req dto.HashtagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	result, err := h.aiUsecase.Hashtags(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.Res{ResponseCode: "502", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: result})
}

func (h *AIHandler) CampaignIdeas(c *gin.Context) {
	var req dto.CampaignIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	result, err := h.aiUsecase.CampaignIdeas(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.Res{ResponseCode: "502", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: result})
}
