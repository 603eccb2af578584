package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartmail/internal/mailer"
)

type SendHandler struct {
	mailer *mailer.Mailer
}

func NewSendHandler(m *mailer.Mailer) *SendHandler {
	return &SendHandler{
		mailer: m,
	}
}

// SendEmail handles POST /send
func (h *SendHandler) SendEmail(c *gin.Context) {
	var req struct {
		To          string `json:"to"`
		Subject     string `json:"subject"`
		MailContent string `json:"mailContent"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	if err := h.mailer.Send(req.To, req.Subject, req.MailContent); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error sending email", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}
