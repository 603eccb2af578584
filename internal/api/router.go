package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smartmail/internal/cache"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	emailHandler *EmailHandler,
	sendHandler *SendHandler,
	generateHandler *GenerateHandler,
	c *cache.Cache,
) *Router {
	r := gin.Default()
	r.Use(MetricsMiddleware())

	r.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "Server is running")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/emails/:type", CacheMiddleware(c), emailHandler.GetEmails)

	r.POST("/save", emailHandler.SaveEmail)
	r.POST("/save-draft", emailHandler.SaveEmail)
	r.POST("/starred", emailHandler.ToggleStarred)
	r.DELETE("/delete", emailHandler.DeleteEmails)
	r.POST("/bin", emailHandler.MoveToBin)

	r.POST("/send", sendHandler.SendEmail)
	r.POST("/generate", generateHandler.Generate)

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
