package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// RegisterRoutes registers the health probes at the engine root; some
// platforms expect /health, others /healthz.
func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Healthz)
	r.GET("/health", h.Healthz)
}

// Healthz reports whether the database answers a ping. Degraded is still a
// 200: the process is alive even when the database is not.
func (h *HealthHandler) Healthz(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "degraded", "db": "down"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "up"})
}
