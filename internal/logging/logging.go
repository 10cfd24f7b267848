package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/workspace-tasks/internal/config"
	"github.com/yukikurage/workspace-tasks/internal/constants"
	gormlogger "gorm.io/gorm/logger"
)

// New builds a logger from the log section of the configuration.
func New(cfg config.LogConfig, out io.Writer) (*logrus.Logger, error) {
	log := logrus.New()

	if out == nil {
		out = os.Stdout
	}
	log.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	return log, nil
}

// RequestLogger logs one entry per handled request.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := logrus.Fields{
			"method":    c.Request.Method,
			"path":      path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		}
		if userID, ok := c.Get(constants.ContextKeyUserID); ok {
			fields["user_id"] = userID
		}

		entry := log.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}

// GormLogger routes GORM's SQL logging through logrus.
func GormLogger(log logrus.FieldLogger, level logrus.Level) gormlogger.Interface {
	gormLevel := gormlogger.Warn
	switch {
	case level >= logrus.DebugLevel:
		gormLevel = gormlogger.Info
	case level <= logrus.ErrorLevel:
		gormLevel = gormlogger.Error
	}

	return gormlogger.New(log, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormLevel,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
