// Package web serves the embedded single-page form UI.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/index.tmpl
var templatesFS embed.FS

func Register(r *gin.Engine) {
	tmpl := template.Must(template.ParseFS(templatesFS, "templates/index.tmpl"))
	r.SetHTMLTemplate(tmpl)
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.tmpl", nil)
	})
}
