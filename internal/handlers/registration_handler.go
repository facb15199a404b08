package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iotlab-kiit/registration-service/internal/services"
	"github.com/iotlab-kiit/registration-service/internal/utils"
)

type RegistrationHandler struct {
	BaseHandler
	service services.RegistrationService
}

func NewRegistrationHandler(service services.RegistrationService, logger utils.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Register accepts a public registration and returns the issued ticket ID
// @Summary Register for the event
// @Tags registration
// @Accept json
// @Produce json
// @Success 201 {object} registrationResponse
// @Failure 400 {object} ErrorResponse "Invalid payload"
// @Failure 409 {object} ErrorResponse "Email or ticket ID already registered"
// @Router /register [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	h.LogRequest(c, "Registering participant")

	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, registrationResponse{
		Success:        true,
		Message:        "Registration successful",
		UniqueID:       resp.UniqueID,
		RegistrationID: resp.RegistrationID,
	})
}

type registrationResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	UniqueID       string `json:"uniqueId"`
	RegistrationID string `json:"registrationId"`
}
