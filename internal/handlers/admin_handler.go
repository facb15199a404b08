package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iotlab-kiit/registration-service/internal/auth"
	"github.com/iotlab-kiit/registration-service/internal/services"
	"github.com/iotlab-kiit/registration-service/internal/utils"
	"github.com/iotlab-kiit/registration-service/internal/validator"
)

type AdminHandler struct {
	BaseHandler
	admin       services.AdminService
	export      services.ExportService
	credentials auth.Credentials
	tokens      *auth.TokenService
	validator   *validator.Validator
	sessionTTL  time.Duration
}

func NewAdminHandler(
	admin services.AdminService,
	export services.ExportService,
	credentials auth.Credentials,
	tokens *auth.TokenService,
	v *validator.Validator,
	sessionTTL time.Duration,
	logger utils.Logger,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler: NewBaseHandler(logger),
		admin:       admin,
		export:      export,
		credentials: credentials,
		tokens:      tokens,
		validator:   v,
		sessionTTL:  sessionTTL,
	}
}

// ===== SESSION ENDPOINTS =====

// Login checks dashboard credentials and starts a cookie session
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Failure 401 {object} ErrorResponse "Unknown username or password"
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req validator.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request", Details: err.Error()})
		return
	}

	account, ok := h.credentials.Authenticate(req.Username, req.Password)
	if !ok {
		// Same body for unknown user and wrong password.
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid credentials"})
		return
	}

	token, err := h.tokens.Issue(account.Username, account.Role)
	if err != nil {
		h.LogError(c, "session token issue failed", err, "username", account.Username)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
		return
	}

	h.setSessionCookie(c, token, int(h.sessionTTL.Seconds()))
	utils.FromContext(c, h.logger).Info("admin login", "username", account.Username, "role", account.Role)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"admin": gin.H{
			"username": account.Username,
			"role":     account.Role,
		},
	})
}

// Logout drops the session cookie
// @Summary Admin logout
// @Tags admin
// @Router /admin/logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Permissions reports what the current session is allowed to do
// @Summary Session permissions
// @Tags admin
// @Produce json
// @Failure 401 {object} ErrorResponse "No valid session"
// @Router /admin/permissions [get]
func (h *AdminHandler) Permissions(c *gin.Context) {
	claims, ok := adminClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"username":   claims.Username,
		"role":       claims.Role,
		"canApprove": auth.ApprovePermissions(claims),
	})
}

func (h *AdminHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, maxAge, "/", "", false, true)
}

// ===== LISTING ENDPOINTS =====

// ListUsers returns the participant dashboard snapshot
// @Summary List registrants with participant buckets
// @Tags admin
// @Produce json
// @Param q query string false "Substring filter over roll number, name and email"
// @Success 200 {object} services.DashboardResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	resp, err := h.admin.ListUsers(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListOrganizers returns the organizer dashboard snapshot
// @Summary List registrants with organizer buckets
// @Tags admin
// @Produce json
// @Param q query string false "Substring filter over roll number, name and email"
// @Success 200 {object} services.OrganizerBoardResponse
// @Router /admin/organizers [get]
func (h *AdminHandler) ListOrganizers(c *gin.Context) {
	h.LogRequest(c, "Listing organizers")

	resp, err := h.admin.ListOrganizers(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ===== MUTATION ENDPOINTS =====

// ApproveParticipant marks a registrant's payment as verified
// @Summary Approve a participant
// @Tags admin
// @Produce json
// @Param roll path string true "Roll number"
// @Success 200 {object} services.UserSummary
// @Failure 404 {object} ErrorResponse "Unknown roll number"
// @Router /admin/users/{roll}/approve [patch]
func (h *AdminHandler) ApproveParticipant(c *gin.Context) {
	h.mutate(c, func(roll, actor string) (*services.UserSummary, error) {
		return h.admin.ApproveParticipant(c.Request.Context(), roll, actor)
	})
}

// RemoveParticipant reverts a registrant to unpaid
// @Summary Remove a participant's approval
// @Tags admin
// @Produce json
// @Param roll path string true "Roll number"
// @Failure 403 {object} ErrorResponse "Registrant holds the organizer role"
// @Router /admin/users/{roll}/remove [patch]
func (h *AdminHandler) RemoveParticipant(c *gin.Context) {
	h.mutate(c, func(roll, _ string) (*services.UserSummary, error) {
		return h.admin.RemoveParticipant(c.Request.Context(), roll)
	})
}

// ApproveOrganizer grants the organizer role
// @Summary Make a registrant an organizer
// @Tags admin
// @Produce json
// @Param roll path string true "Roll number"
// @Router /admin/organizers/{roll}/approve [patch]
func (h *AdminHandler) ApproveOrganizer(c *gin.Context) {
	h.mutate(c, func(roll, actor string) (*services.UserSummary, error) {
		return h.admin.ApproveOrganizer(c.Request.Context(), roll, actor)
	})
}

// RemoveOrganizer revokes the organizer role
// @Summary Revoke a registrant's organizer role
// @Tags admin
// @Produce json
// @Param roll path string true "Roll number"
// @Router /admin/organizers/{roll}/remove [patch]
func (h *AdminHandler) RemoveOrganizer(c *gin.Context) {
	h.mutate(c, func(roll, _ string) (*services.UserSummary, error) {
		return h.admin.RemoveOrganizer(c.Request.Context(), roll)
	})
}

func (h *AdminHandler) mutate(c *gin.Context, fn func(roll, actor string) (*services.UserSummary, error)) {
	roll := c.Param("roll")
	if roll == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Roll number required"})
		return
	}
	claims, ok := adminClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
		return
	}

	h.LogRequest(c, "Admin mutation", "roll", roll, "admin", claims.Username)

	summary, err := fn(roll, claims.Username)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated", "user": summary})
}

// ===== EXPORT ENDPOINT =====

// ExportUsers streams the registrant list as an xlsx workbook
// @Summary Export registrants
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /admin/users/export [get]
func (h *AdminHandler) ExportUsers(c *gin.Context) {
	h.LogRequest(c, "Exporting users")

	data, err := h.export.ExportUsers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("registrations-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
