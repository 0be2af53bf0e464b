package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"filevault-api/internal/infrastructure/metrics"
)

const maxLogBodySize = 1 << 12 // 4 KB

// RequestLogGin logs every request. Bodies of multipart uploads and of
// routes under omitBodyPrefix are never read.
func RequestLogGin(logger *zap.Logger, mCounter *prometheus.CounterVec, omitBodyPrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions ||
			c.Request.URL.Path == "/favicon.ico" ||
			strings.HasSuffix(c.Request.URL.Path, "/metrics") {
			c.Next()
			return
		}

		start := time.Now()

		var body string
		if c.Request.Body != nil && c.Request.Body != http.NoBody {
			switch {
			case strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data"):
				body = "<multipart/form-data omitted>"
			case omitBodyPrefix != "" && strings.HasPrefix(c.Request.URL.Path, omitBodyPrefix):
				body = "<credentials omitted>"
			default:
				var buf bytes.Buffer
				limited := io.LimitReader(c.Request.Body, maxLogBodySize)
				_, _ = io.Copy(&buf, limited)
				body = buf.String()
				c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(buf.Bytes()), c.Request.Body))
			}
		}

		c.Next()

		if mCounter != nil {
			mCounter.WithLabelValues(metrics.AppRequestsTotal).Inc()
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("url", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("body", body),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if username := c.GetString(CtxUsername); username != "" {
			fields = append(fields, zap.String("username", username))
		}
		if roles := c.GetStringSlice(CtxUserRoles); len(roles) > 0 {
			fields = append(fields, zap.Strings("roles", roles))
		}

		logger.Info("HTTP request", fields...)
	}
}
