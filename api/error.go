package api

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	errorInternalServer     = errorResponse{Code: 1000, Message: "internal server error"}
	errorInvalidParameters  = errorResponse{Code: 1001, Message: "invalid parameters"}
	errorServiceUnavailable = errorResponse{Code: 1002, Message: "consent service unavailable"}
)

func abortWithEncoding(c *gin.Context, code int, resp errorResponse, errs ...error) {
	for _, err := range errs {
		if err != nil {
			log.WithFields(log.Fields{
				"prefix": "api",
				"code":   resp.Code,
				"path":   c.Request.URL.Path,
			}).WithError(err).Warn("request aborted")
			c.Error(err)
		}
	}
	c.AbortWithStatusJSON(code, resp)
}
