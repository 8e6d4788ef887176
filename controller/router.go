package controller

import (
	"carwash/auth"
	"carwash/repository"
	"carwash/service"
	"strings"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const claimsKey = "claims"

type RouteInfo struct {
	Method        string
	Path          string
	HandlerFunc   gin.HandlerFunc
	Authenticated bool
	RequiredRoles []repository.Permission
}

func SetRoutes(r *gin.Engine, db *gorm.DB, cacheStore persistence.CacheStore, publisher service.ShiftEventPublisher, notifier service.Notifier) {
	shiftService := service.NewShiftService(db, publisher, notifier)
	hub := NewShiftHub()
	shiftService.OnGraded(hub.Broadcast)

	routes := make([]RouteInfo, 0)
	routes = append(routes, setupCategoryController(db, cacheStore)...)
	routes = append(routes, setupGradingController(db)...)
	routes = append(routes, setupShiftController(shiftService, hub)...)
	routes = append(routes, setupUserController(db)...)

	api := r.Group("/api")
	for _, route := range routes {
		handlerfuncs := make([]gin.HandlerFunc, 0)
		if route.Authenticated {
			handlerfuncs = append(handlerfuncs, AuthMiddleware(route.RequiredRoles))
		}
		handlerfuncs = append(handlerfuncs, route.HandlerFunc)
		api.Handle(route.Method, route.Path, handlerfuncs...)
	}
}

// tokenFromRequest reads the jwt from the auth cookie, a bearer header or,
// for websocket upgrades, the token query parameter.
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("auth"); err == nil && cookie != "" {
		return cookie
	}
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

// AuthMiddleware rejects requests without a valid token. With roles given the user
// needs at least one of them; admins pass every role check.
func AuthMiddleware(roles []repository.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "Unauthenticated"})
			return
		}
		claims, err := auth.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "Unauthenticated"})
			return
		}
		c.Set(claimsKey, claims)
		if len(roles) == 0 || claims.HasAny(repository.PermissionAdmin) || claims.HasAny(roles...) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(403, gin.H{"error": "Unauthorized"})
	}
}

func getClaims(c *gin.Context) *auth.Claims {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*auth.Claims)
	return claims
}

func prefixRoutes(basePath string, routes []RouteInfo) []RouteInfo {
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}
