package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/neobank_backend/internal/core/ports/services"
	"github.com/SscSPs/neobank_backend/internal/dto"
	"github.com/SscSPs/neobank_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles registration, login and the transaction PIN.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	showDetails  bool
}

func registerAuthRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, showDetails bool) {
	h := &authHandler{userService: us, tokenService: ts, showDetails: showDetails}

	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

func registerPINRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade, showDetails bool) {
	h := &authHandler{userService: us, showDetails: showDetails}
	rg.POST("/auth/set-pin", h.setPIN)
}

// register godoc
// @Summary Register a new customer
// @Description Creates a customer profile with a generated customer ID and profile URL.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err, "register request")
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, h.showDetails)
		return
	}

	middleware.GetLoggerFromContext(c).Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary User login
// @Description Authenticates a user by email and password and returns a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err, "login request")
		return
	}

	resp, err := h.tokenService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, h.showDetails)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// setPIN godoc
// @Summary Set the transaction PIN
// @Description Sets or replaces the 4-digit PIN required for transfers.
// @Tags auth
// @Accept json
// @Produce json
// @Param pin body dto.SetPINRequest true "New PIN"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/set-pin [post]
func (h *authHandler) setPIN(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.SetPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err, "set-pin request")
		return
	}

	if err := h.userService.SetPIN(c.Request.Context(), userID, req.PIN); err != nil {
		respondError(c, err, h.showDetails)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "PIN set successfully"})
}
