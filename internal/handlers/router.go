package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iotlab-kiit/registration-service/internal/auth"
	"github.com/iotlab-kiit/registration-service/internal/services"
	"github.com/iotlab-kiit/registration-service/internal/utils"
	"github.com/iotlab-kiit/registration-service/internal/validator"
)

type HandlerManager struct {
	registrationHandler *RegistrationHandler
	adminHandler        *AdminHandler
	authMiddleware      *AdminAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	credentials auth.Credentials,
	tokens *auth.TokenService,
	sessionTTL time.Duration,
	v *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		registrationHandler: NewRegistrationHandler(serviceManager.Registration(), logger),
		adminHandler: NewAdminHandler(
			serviceManager.Admin(),
			serviceManager.Export(),
			credentials,
			tokens,
			v,
			sessionTTL,
			logger,
		),
		authMiddleware: NewAdminAuthMiddleware(tokens),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	// Public registration endpoint
	router.POST("/register", hm.registrationHandler.Register)

	admin := router.Group("/admin")
	{
		// Session endpoints stay outside the auth guard: login creates the
		// session and logout only drops a cookie.
		admin.POST("/login", hm.adminHandler.Login)
		admin.POST("/logout", hm.adminHandler.Logout)

		authed := admin.Group("")
		authed.Use(hm.authMiddleware.RequireSession())
		{
			authed.GET("/permissions", hm.adminHandler.Permissions)

			authed.GET("/users", hm.adminHandler.ListUsers)
			authed.GET("/users/export", hm.adminHandler.ExportUsers)
			authed.PATCH("/users/:roll/approve", hm.adminHandler.ApproveParticipant)
			authed.PATCH("/users/:roll/remove", hm.adminHandler.RemoveParticipant)

			authed.GET("/organizers", hm.adminHandler.ListOrganizers)
			authed.PATCH("/organizers/:roll/approve", hm.adminHandler.ApproveOrganizer)
			authed.PATCH("/organizers/:roll/remove", hm.adminHandler.RemoveOrganizer)
		}
	}
}

// HealthCheck endpoint
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "registration-service",
	})
}
