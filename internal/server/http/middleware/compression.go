package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxInflatedBody caps what a gzip request body may expand to.
const maxInflatedBody = 1 << 20

// DecompressRequest inflates gzip request bodies before handlers bind them.
// Responses are compressed separately by gin-contrib/gzip in the router.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isGzipEncoded(c.GetHeader("Content-Encoding")) {
			c.Next()
			return
		}

		compressed := c.Request.Body
		defer compressed.Close()

		inflated, err := gzip.NewReader(compressed)
		if err != nil {
			Abort(c, http.StatusBadRequest, CodeInvalidInput, "malformed gzip body")
			return
		}
		defer inflated.Close()

		c.Request.Body = http.MaxBytesReader(c.Writer, inflated, maxInflatedBody)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}

func isGzipEncoded(header string) bool {
	for _, enc := range strings.Split(header, ",") {
		if strings.EqualFold(strings.TrimSpace(enc), "gzip") {
			return true
		}
	}
	return false
}
