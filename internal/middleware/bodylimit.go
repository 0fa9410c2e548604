package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxBodyBytes = 16 << 10 // 16 KB for JSON and form bodies

// BodyLimit caps JSON and URL-encoded request bodies. Multipart uploads
// (avatars, blog images) are exempt; the media store enforces its own
// per-file limit.
func BodyLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ct := c.ContentType()
		if ct == gin.MIMEJSON || strings.HasPrefix(ct, gin.MIMEPOSTForm) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		}
		c.Next()
	}
}
