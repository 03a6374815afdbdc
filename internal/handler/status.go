package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/MatyCastillo/cashdesk-webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Status returns a JSON health check response.
// Checks SQLite and Redis connectivity plus the physical ledger row count
// (soft-deleted rows included) so unbounded retention stays observable.
func Status(db *gorm.DB, rdb *redis.Client, pagos service.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		// -1 marks the count as unavailable; a fabricated 0 would read as
		// an empty ledger.
		filas := int64(-1)
		if dbStatus == "connected" {
			var err error
			if filas, err = pagos.Auditoria(ctx); err != nil {
				log.Warn().Err(err).Msg("no se pudo leer el total de filas del ledger")
				filas = -1
			}
		}

		status := http.StatusOK
		if dbStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":          status == http.StatusOK,
			"db":          dbStatus,
			"redis":       redisStatus,
			"total_filas": filas,
		})
	}
}
