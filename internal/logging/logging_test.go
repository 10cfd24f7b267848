package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workspace-tasks/internal/config"
	"github.com/yukikurage/workspace-tasks/internal/constants"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log.Info("dropped")
	log.Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud", Format: "text"}, nil)
	require.Error(t, err)

	_, err = New(config.LogConfig{Level: "info", Format: "xml"}, nil)
	require.Error(t, err)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, uint64(7))
		c.Next()
	})
	r.Use(RequestLogger(log))
	r.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/missing", entry["path"])
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
	assert.Equal(t, float64(7), entry["user_id"])
	assert.Equal(t, "warning", entry["level"])
}

func TestGormLogger(t *testing.T) {
	log := logrus.New()

	assert.NotNil(t, GormLogger(log, logrus.DebugLevel))
	assert.NotNil(t, GormLogger(log, logrus.ErrorLevel))
	assert.Implements(t, (*gormlogger.Interface)(nil), GormLogger(log, logrus.InfoLevel))
}
