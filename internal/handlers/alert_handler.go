package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneyflow/internal/errors"
	"moneyflow/internal/services"
)

// AlertHandler handles alert-related requests.
type AlertHandler struct {
	alertService services.AlertServicer
	auditService services.AuditServicer
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertService services.AlertServicer, auditService services.AuditServicer) *AlertHandler {
	return &AlertHandler{alertService: alertService, auditService: auditService}
}

// MarkMultipleRequest represents the payload for marking several alerts as read.
type MarkMultipleRequest struct {
	AlertIDs []uint `json:"alert_ids" binding:"required,min=1"`
}

// CleanAlertsRequest represents the payload for cleaning old read alerts.
// days_old is optional; the retention window defaults to 30 days.
type CleanAlertsRequest struct {
	DaysOld int `json:"days_old" binding:"omitempty,min=1"`
}

// GetAlerts handles listing the user's active alerts.
// @Summary     Get alerts
// @Description Get active alerts, most severe first, optionally filtered by read state
// @Tags        alerts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       read query bool false "Filter by read state"
// @Success     200 {array} models.Alert "Alerts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /alerts [get]
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var read *bool
	if v := c.Query("read"); v != "" {
		switch v {
		case "true":
			b := true
			read = &b
		case "false":
			b := false
			read = &b
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "read must be 'true' or 'false'"))
			return
		}
	}

	alerts, err := h.alertService.ListAlerts(userID, read)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// GetUnreadCount handles counting unread alerts.
// @Summary     Get unread alert count
// @Description Number of active unread alerts for the authenticated user
// @Tags        alerts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]int64 "Unread count"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /alerts/unread-count [get]
func (h *AlertHandler) GetUnreadCount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	count, err := h.alertService.UnreadCount(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// GetAlert handles retrieving a specific alert.
// @Summary     Get alert by ID
// @Description Get a specific alert by ID
// @Tags        alerts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Alert ID"
// @Success     200 {object} models.Alert "Alert details"
// @Failure     400 {object} ErrorResponse "Invalid alert ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Alert not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /alerts/{id} [get]
func (h *AlertHandler) GetAlert(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	alertID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	alert, err := h.alertService.GetAlertByID(userID, alertID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alert": alert})
}

// MarkAsRead handles marking one alert as read.
// @Summary     Mark alert as read
// @Description Mark a single alert as read
// @Tags        alerts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Alert ID"
// @Success     200 {object} models.Alert "Updated alert"
// @Failure     400 {object} ErrorResponse "Invalid alert ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Alert not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /alerts/{id}/read [patch]
func (h *AlertHandler) MarkAsRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	alertID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	alert, err := h.alertService.MarkAsRead(userID, alertID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alert": alert})
}

// MarkAllAsRead handles marking every unread alert as read.
// @Summary     Mark all alerts as read
// @Description Mark every unread alert of the authenticated user as read
// @Tags        alerts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]int64 "Number of alerts marked"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /alerts/read-all [patch]
func (h *AlertHandler) MarkAllAsRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	affected, err := h.alertService.MarkAllAsRead(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked": affected})
}

// MarkMultipleAsRead handles marking a batch of alerts as read.
// @Summary     Mark multiple alerts as read
// @Description Mark the given alerts as read; rejects the whole batch if any alert is not the user's
// @Tags        alerts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body MarkMultipleRequest true "Alert IDs"
// @Success     200 {object} map[string]int64 "Number of alerts marked"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Batch contains another user's alert"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /alerts/read [patch]
func (h *AlertHandler) MarkMultipleAsRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MarkMultipleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	affected, err := h.alertService.MarkMultipleAsRead(userID, req.AlertIDs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked": affected})
}

// DeleteAlert handles dismissing an alert.
// @Summary     Delete alert
// @Description Dismiss an alert by ID (soft delete)
// @Tags        alerts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Alert ID"
// @Success     200 {object} MessageResponse "Alert deleted"
// @Failure     400 {object} ErrorResponse "Invalid alert ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Alert not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /alerts/{id} [delete]
func (h *AlertHandler) DeleteAlert(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	alertID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.alertService.DeleteAlert(userID, alertID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ALERT", "alert", alertID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Alert deleted successfully"})
}

// CleanOldAlerts handles permanently removing old read alerts.
// @Summary     Clean old read alerts
// @Description Permanently remove read alerts older than the given number of days
// @Tags        alerts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CleanAlertsRequest false "Retention in days (default 30)"
// @Success     200 {object} map[string]int64 "Number of alerts removed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /alerts/clean [post]
func (h *AlertHandler) CleanOldAlerts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// An absent body means the default retention window.
	var req CleanAlertsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	removed, err := h.alertService.CleanOldReadAlerts(userID, req.DaysOld)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CLEAN_ALERTS", "alert", 0, c.ClientIP(),
		map[string]interface{}{"days_old": req.DaysOld, "removed": removed})

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
