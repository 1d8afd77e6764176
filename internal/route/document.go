package route

import (
	"github.com/SeakMengs/DocSign/internal/controller"
	"github.com/SeakMengs/DocSign/internal/middleware"
	"github.com/gin-gonic/gin"
)

func documentRoutes(r gin.IRouter, dc *controller.DocumentController, middleware *middleware.Middleware) {
	r.POST("/convert", middleware.BodyLimitMiddleware, dc.Convert)
	r.POST("/sign", middleware.BodyLimitMiddleware, dc.Sign)
	r.GET("/view/:pdfId", dc.View)
}

// Documents serves the document routes at the root, where existing clients call them.
func Documents(r *gin.Engine, dc *controller.DocumentController, middleware *middleware.Middleware) {
	documentRoutes(r, dc, middleware)
}

func V1_Documents(r *gin.RouterGroup, dc *controller.DocumentController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/documents")
	{
		documentRoutes(v1, dc, middleware)
	}
}
