package api

import (
	"net/http/httputil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RequestID tags every request with an id so rejection log lines can be
// correlated in the audit trail.
func (s *Server) RequestID(c *gin.Context) {
	id := c.GetHeader("X-Request-Id")
	if id == "" {
		id = uuid.New().String()
	}
	c.Set("request_id", id)
	c.Header("X-Request-Id", id)

	c.Next()
}

// DumpRequest is a middleware to dump incoming http requests if the
// trace mode is enabled.
func (s *Server) DumpRequest(c *gin.Context) {
	if s.traceMode {
		dump, err := httputil.DumpRequest(c.Request, false)
		if err != nil {
			log.WithFields(log.Fields{
				"prefix": "gin",
				"status": c.Writer.Status(),
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
			}).Error("fail to dump request")
		}

		log.WithFields(log.Fields{
			"prefix":     "gin",
			"request_id": c.GetString("request_id"),
			"req":        string(dump),
		}).Debug("incoming request")
	}

	c.Next()
}
