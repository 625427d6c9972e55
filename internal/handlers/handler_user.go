package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/neobank_backend/internal/core/ports/services"
	"github.com/SscSPs/neobank_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type userHandler struct {
	userService portssvc.UserSvcFacade
	resolver    portssvc.RecipientResolverSvc
	showDetails bool
}

func registerUserRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade, showDetails bool) {
	h := &userHandler{userService: us, showDetails: showDetails}
	rg.GET("/users/me", h.getMe)
}

func registerDirectoryRoutes(rg *gin.RouterGroup, resolver portssvc.RecipientResolverSvc, showDetails bool) {
	h := &userHandler{resolver: resolver, showDetails: showDetails}
	rg.GET("/find-user/:identifier", h.findUser)
}

// getMe godoc
// @Summary Current user
// @Description Returns the authenticated user's profile.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.FindUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, h.showDetails)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// findUser godoc
// @Summary Find a recipient
// @Description Looks a user up by customer ID, profile link, mobile number or account number.
// @Tags users
// @Produce json
// @Param identifier path string true "Customer ID, profile ID, mobile or account number"
// @Success 200 {object} dto.PublicProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /find-user/{identifier} [get]
func (h *userHandler) findUser(c *gin.Context) {
	profile, err := h.resolver.Lookup(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		respondError(c, err, h.showDetails)
		return
	}
	c.JSON(http.StatusOK, dto.ToPublicProfileResponse(profile))
}
