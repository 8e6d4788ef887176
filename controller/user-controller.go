package controller

import (
	"carwash/app_error"
	"carwash/config"
	"carwash/repository"
	"carwash/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// matches the token lifetime
const authCookieMaxAge = 7 * 24 * 60 * 60

type UserController struct {
	userService *service.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		userService: service.NewUserService(db),
	}
}

func setupUserController(db *gorm.DB) []RouteInfo {
	e := NewUserController(db)
	return []RouteInfo{
		{Method: "POST", Path: "/auth/login", HandlerFunc: e.loginHandler()},
		{Method: "POST", Path: "/auth/logout", HandlerFunc: e.logoutHandler()},
		{Method: "GET", Path: "/users/self", HandlerFunc: e.getUserHandler(), Authenticated: true},
	}
}

// @id Login
// @Description Logs a dashboard user in and sets the auth cookie
// @Tags user
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Email and password"
// @Success 200 {object} UserResponse
// @Router /auth/login [post]
func (e *UserController) loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var login LoginRequest
		if err := c.BindJSON(&login); err != nil {
			return
		}
		user, token, err := e.userService.Authenticate(login.Email, login.Password)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie("auth", token, authCookieMaxAge, "/", "", config.IsProduction(), true)
		c.JSON(200, toUserResponse(user))
	}
}

// @id Logout
// @Description Removes the auth cookie
// @Tags user
// @Success 204
// @Router /auth/logout [post]
func (e *UserController) logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie("auth", "", -1, "/", "", config.IsProduction(), true)
		c.Status(204)
	}
}

// @id GetUser
// @Description Fetches the logged in user
// @Tags user
// @Produce json
// @Success 200 {object} UserResponse
// @Security BearerAuth
// @Router /users/self [get]
func (e *UserController) getUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		if claims == nil {
			c.JSON(401, gin.H{"error": "Unauthenticated"})
			return
		}
		user, err := e.userService.GetUserById(claims.UserId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toUserResponse(user))
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID          int                     `json:"id" binding:"required"`
	Email       string                  `json:"email" binding:"required"`
	DisplayName string                  `json:"display_name" binding:"required"`
	Permissions []repository.Permission `json:"permissions" binding:"required"`
}

func toUserResponse(user *repository.User) *UserResponse {
	permissions := make([]repository.Permission, 0, len(user.Permissions))
	for _, permission := range user.Permissions {
		permissions = append(permissions, repository.Permission(permission))
	}
	return &UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Permissions: permissions,
	}
}
