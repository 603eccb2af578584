package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartmail/internal/service"
)

type EmailHandler struct {
	emailService *service.EmailService
}

func NewEmailHandler(emailService *service.EmailService) *EmailHandler {
	return &EmailHandler{
		emailService: emailService,
	}
}

// GetEmails handles GET /emails/:type
func (h *EmailHandler) GetEmails(c *gin.Context) {
	emails, err := h.emailService.GetEmails(c.Request.Context(), c.Param("type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emails)
}

// SaveEmail handles POST /save and POST /save-draft
func (h *EmailHandler) SaveEmail(c *gin.Context) {
	var req service.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	if err := h.emailService.Save(c.Request.Context(), &req); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"message": verr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, "Email saved successfully")
}

// ToggleStarred handles POST /starred
func (h *EmailHandler) ToggleStarred(c *gin.Context) {
	var req struct {
		ID    int64 `json:"id"`
		Value bool  `json:"value"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	if err := h.emailService.ToggleStarred(c.Request.Context(), req.ID, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, "Value is updated")
}

// DeleteEmails handles DELETE /delete
func (h *EmailHandler) DeleteEmails(c *gin.Context) {
	var ids []int64
	if err := c.ShouldBindJSON(&ids); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	if err := h.emailService.Delete(c.Request.Context(), ids); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, "Emails deleted successfully")
}

// MoveToBin handles POST /bin
func (h *EmailHandler) MoveToBin(c *gin.Context) {
	var ids []int64
	if err := c.ShouldBindJSON(&ids); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	if err := h.emailService.MoveToBin(c.Request.Context(), ids); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, "Emails moved to bin")
}
