package middleware

import (
	"bytes"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// 初始化日志配置
func init() {
	// 设置输出到标准输出
	log.SetOutput(os.Stdout)
	// 设置日志格式为JSON格式
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})

	// 根据环境变量设置日志级别
	if os.Getenv("DEBUG") == "true" {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
}

// Logger 日志中间件
// 记录请求信息和响应时间
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)

		log.WithFields(logrus.Fields{
			FieldStatus:   c.Writer.Status(),
			FieldLatency:  latency.String(),
			FieldClientIP: c.ClientIP(),
			FieldMethod:   c.Request.Method,
			FieldPath:     path,
			"user_agent":  c.Request.UserAgent(),
		}).Info("HTTP request")
	}
}

// 请求体日志的最大记录长度，文件上传的请求体可能有数MB
const maxLoggedBodyBytes = 4096

// RequestBodyLog 请求体日志中间件
// 在DEBUG模式下记录请求体内容，multipart上传只记录长度
func RequestBodyLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		if log.Level >= logrus.DebugLevel {
			contentType := c.ContentType()
			if strings.HasPrefix(contentType, "multipart/") {
				log.WithFields(logrus.Fields{
					FieldMethod:    c.Request.Method,
					FieldPath:      c.Request.URL.Path,
					"content_type": contentType,
					"body_size":    c.Request.ContentLength,
				}).Debug("Request body (multipart, not logged)")
			} else {
				var buf bytes.Buffer
				tee := io.TeeReader(c.Request.Body, &buf)
				body, _ := io.ReadAll(tee)
				c.Request.Body = io.NopCloser(&buf)

				if len(body) > 0 {
					logged := body
					if len(logged) > maxLoggedBodyBytes {
						logged = logged[:maxLoggedBodyBytes]
					}
					log.WithFields(logrus.Fields{
						FieldMethod: c.Request.Method,
						FieldPath:   c.Request.URL.Path,
						"body":      string(logged),
					}).Debug("Request body")
				}
			}
		}

		c.Next()
	}
}

// SetTraceID 将追踪ID设置到上下文和响应头中
func SetTraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 从请求头中获取追踪ID
		traceID := c.GetHeader("X-Trace-ID")

		// 如果没有，则生成一个新的
		if traceID == "" {
			traceID = uuid.New().String()
		}

		// 设置到上下文
		c.Set("TraceID", traceID)

		// 设置到响应头
		c.Header("X-Trace-ID", traceID)

		c.Next()
	}
}

// 常用日志字段
const (
	FieldTraceID  = "trace_id"    // 追踪ID
	FieldPath     = "path"        // 请求路径
	FieldMethod   = "method"      // 请求方法
	FieldStatus   = "status_code" // 状态码
	FieldLatency  = "latency"     // 延迟时间
	FieldClientIP = "client_ip"   // 客户端IP
	FieldError    = "error"       // 错误信息
)

// GetLogger 获取中间件共享的日志记录器
func GetLogger() *logrus.Logger {
	return log
}
