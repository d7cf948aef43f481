package middleware

import (
	"errors"
	"net"
	"net/http"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/utils"
)

var sensitiveHeaders = []string{"Authorization", "Apikey", "Cookie"}

// Recovery turns a handler panic into a 500 APIResponse. Broken client
// connections are only logged.
func Recovery(log logger.Interface) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if isBrokenConnection(recovered) {
			log.Warnw("connection broken during request",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", recovered)
			c.Abort()
			return
		}

		dump, _ := httputil.DumpRequest(c.Request, false)
		headers := strings.Split(string(dump), "\r\n")
		for i, header := range headers {
			name, _, found := strings.Cut(header, ":")
			if !found {
				continue
			}
			for _, s := range sensitiveHeaders {
				if strings.EqualFold(name, s) {
					headers[i] = name + ": *"
				}
			}
		}

		log.Errorw("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", GetRequestID(c),
			"headers", headers,
			"error", recovered,
			"stack", string(debug.Stack()))

		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error occurred")
		c.Abort()
	})
}

func isBrokenConnection(recovered any) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if !errors.As(opErr.Err, &sysErr) {
		return false
	}
	msg := strings.ToLower(sysErr.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
