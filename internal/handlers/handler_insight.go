package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/neobank_backend/internal/core/ports/services"
	"github.com/SscSPs/neobank_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type insightHandler struct {
	insightService portssvc.InsightSvcFacade
	showDetails    bool
}

func registerInsightRoutes(rg *gin.RouterGroup, is portssvc.InsightSvcFacade, showDetails bool) {
	h := &insightHandler{insightService: is, showDetails: showDetails}
	rg.GET("/insights", h.getInsights)
}

// getInsights godoc
// @Summary Spending insights
// @Description Compares this month's spending to last month and returns prioritised suggestions.
// @Tags insights
// @Produce json
// @Param accountId query string false "Only consider debits from this account"
// @Success 200 {object} dto.InsightsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /insights [get]
func (h *insightHandler) getInsights(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.InsightsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, err, "insights query")
		return
	}

	report, err := h.insightService.GetInsights(c.Request.Context(), userID, params.AccountID)
	if err != nil {
		respondError(c, err, h.showDetails)
		return
	}
	c.JSON(http.StatusOK, dto.ToInsightsResponse(report))
}
