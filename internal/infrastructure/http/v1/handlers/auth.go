package handlers

import (
	"github.com/gin-gonic/gin"

	"creamery/internal/core/apperror"
	"creamery/internal/core/id"
	"creamery/internal/core/security"
	"creamery/internal/domain/auth"
	"creamery/internal/infrastructure/http/v1/dto"
	"creamery/internal/infrastructure/http/v1/middleware"
)

// AuthHandler handles authentication and user administration.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: base, service: service}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.ToAuthRequest())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(user))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tokens, user, err := h.service.Login(c.Request.Context(), req.ToCredentials())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.LoginResponse{
		Tokens: dto.FromTokenPair(tokens),
		User:   dto.FromUser(user),
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tokens, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromTokenPair(tokens))
}

// Logout handles POST /auth/logout. Revokes all refresh tokens of the caller.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "logged out")
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	user, err := h.service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(user))
}

// ChangeRole handles POST /auth/users/role.
func (h *AuthHandler) ChangeRole(c *gin.Context) {
	var req dto.ChangeRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	userID, err := id.Parse(req.UserID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid user id").WithDetail("field", "userId"))
		return
	}

	user, err := h.service.ChangeRole(c.Request.Context(), userID, security.Role(req.Role))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(user))
}

// AssignLocations handles POST /auth/users/locations.
func (h *AuthHandler) AssignLocations(c *gin.Context) {
	var req dto.AssignLocationsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	userID, err := id.Parse(req.UserID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid user id").WithDetail("field", "userId"))
		return
	}

	locationIDs := make([]id.ID, 0, len(req.LocationIDs))
	for _, raw := range req.LocationIDs {
		locID, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid location id").WithDetail("value", raw))
			return
		}
		locationIDs = append(locationIDs, locID)
	}

	if err := h.service.AssignLocations(c.Request.Context(), userID, locationIDs); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "locations assigned")
}

// ListUsers handles GET /auth/users.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	filter := auth.UserFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}
	if isActive := c.Query("isActive"); isActive != "" {
		val := isActive == "true"
		filter.IsActive = &val
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.FromUser(&users[i]))
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: int64(total),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// RegisterRoutes registers auth routes. Public routes skip the auth
// middleware; admin routes additionally require the user admin permission.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/auth/register", h.Register)
	public.POST("/auth/login", h.Login)
	public.POST("/auth/refresh", h.Refresh)

	protected.POST("/auth/logout", h.Logout)
	protected.GET("/auth/me", h.Me)

	protected.POST("/auth/users/role",
		middleware.RequirePermission(security.ScopeAdminUser, security.AccessReadWrite), h.ChangeRole)
	protected.POST("/auth/users/locations",
		middleware.RequirePermission(security.ScopeAdminUser, security.AccessReadWrite), h.AssignLocations)
	protected.GET("/auth/users",
		middleware.RequirePermission(security.ScopeAdminUser, security.AccessRead), h.ListUsers)
}
