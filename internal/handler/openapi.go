package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/staffpoints/backend/docs"
	"github.com/swaggo/swag"
)

// OpenAPIDoc serves the swagger document registered by the docs package.
func OpenAPIDoc(c *gin.Context) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}
