package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	// IdempotencyKeyHeader is the request header clients set to make a POST replay-safe.
	IdempotencyKeyHeader = "Idempotency-Key"

	// IdempotentReplayHeader marks a response served from the idempotency store.
	IdempotentReplayHeader = "Idempotent-Replayed"

	idempotencyPrefix    = "idempotency:v1:"
	inProgressMarker     = "__in_progress__"
	maxIdempotencyKeyLen = 255
	idempotencyTimeout   = 2 * time.Second
)

type storedResponse struct {
	Status      int    `json:"status"`
	Body        string `json:"body"`
	ContentType string `json:"content_type"`
}

// bodyCaptureWriter tees the response body so it can be stored after the handler runs.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response for a repeated Idempotency-Key and
// rejects a repeat that arrives while the first is still running. Requests
// without the header pass straight through. Keys are scoped to the
// authenticated user; 5xx responses are not stored so the client may retry.
func Idempotency(cache redis.Cmdable, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		logger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("idempotency_key", key))

		if len(key) > maxIdempotencyKeyLen {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Idempotency-Key too long"})
			return
		}

		userID, _ := GetUserIDFromContext(c)
		cacheKey := idempotencyPrefix + userID + ":" + key

		ctx, cancel := context.WithTimeout(c.Request.Context(), idempotencyTimeout)
		defer cancel()

		reserved, err := cache.SetNX(ctx, cacheKey, inProgressMarker, ttl).Result()
		if err != nil {
			logger.Error("idempotency reservation failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "idempotency store failure"})
			return
		}

		if !reserved {
			replay(c, cache, ctx, cacheKey, logger)
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		persistCtx, persistCancel := context.WithTimeout(context.Background(), idempotencyTimeout)
		defer persistCancel()

		status := writer.Status()
		if status >= http.StatusInternalServerError {
			cache.Del(persistCtx, cacheKey)
			return
		}

		payload, err := json.Marshal(storedResponse{
			Status:      status,
			Body:        writer.body.String(),
			ContentType: writer.Header().Get("Content-Type"),
		})
		if err != nil {
			logger.Error("failed to encode idempotent response", slog.String("error", err.Error()))
			cache.Del(persistCtx, cacheKey)
			return
		}

		if err := cache.Set(persistCtx, cacheKey, payload, ttl).Err(); err != nil {
			logger.Error("failed to persist idempotent response", slog.String("error", err.Error()))
			cache.Del(persistCtx, cacheKey)
		}
	}
}

func replay(c *gin.Context, cache redis.Cmdable, ctx context.Context, cacheKey string, logger *slog.Logger) {
	cached, err := cache.Get(ctx, cacheKey).Result()
	if err != nil && err != redis.Nil {
		logger.Error("idempotency lookup failed", slog.String("error", err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "idempotency store failure"})
		return
	}
	if err == redis.Nil || cached == inProgressMarker {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "duplicate request currently processing"})
		return
	}

	var stored storedResponse
	if err := json.Unmarshal([]byte(cached), &stored); err != nil {
		logger.Warn("failed to decode stored idempotent response", slog.String("error", err.Error()))
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "duplicate request"})
		return
	}

	logger.Info("replaying stored response", slog.Int("status", stored.Status))
	c.Header(IdempotentReplayHeader, "true")
	c.Data(stored.Status, stored.ContentType, []byte(stored.Body))
	c.Abort()
}
