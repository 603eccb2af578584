package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartmail/internal/genai"
)

type GenerateHandler struct {
	client *genai.Client
}

func NewGenerateHandler(client *genai.Client) *GenerateHandler {
	return &GenerateHandler{
		client: client,
	}
}

// Generate handles POST /generate
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}

	text, err := h.client.GenerateText(c.Request.Context(), req.Prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"generatedText": text})
}
