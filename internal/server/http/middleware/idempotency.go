package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Lonewolf123457499/CarWashApp/internal/adapter/lock"
)

const (
	// IdempotencyHeader names the client supplied deduplication key.
	IdempotencyHeader = "Idempotency-Key"
	// ReplayedHeader marks responses served from the idempotency store.
	ReplayedHeader = "Idempotent-Replayed"

	maxIdempotencyKeyLength = 255
	idempotencyLockTTL      = 30 * time.Second
)

type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response of an earlier request that carried
// the same Idempotency-Key for the same caller and route. Only successful
// responses are stored. A concurrent duplicate gets 409.
func Idempotency(store lock.Store, locker lock.Locker, ttl time.Duration, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyHeader))
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			Abort(c, http.StatusBadRequest, CodeInvalidInput, "idempotency key is too long")
			return
		}

		identity, _ := CurrentIdentity(c)
		scope := fmt.Sprintf("%d:%s:%s:%s", identity.UserID, c.Request.Method, c.FullPath(), key)
		ctx := c.Request.Context()

		if replay(c, store, scope, logger) {
			return
		}

		held, err := locker.Acquire(ctx, scope, idempotencyLockTTL)
		if err != nil {
			if errors.Is(err, lock.ErrNotAcquired) {
				Abort(c, http.StatusConflict, CodeConflict, "a request with this idempotency key is in progress")
				return
			}
			_ = c.Error(err)
			Abort(c, http.StatusServiceUnavailable, CodeUnavailable, "idempotency store unavailable")
			return
		}
		defer func() {
			if err := held.Release(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("release idempotency lock", slog.String("error", err.Error()))
			}
		}()

		// the first request may have completed between the lookup and the lock
		if replay(c, store, scope, logger) {
			return
		}

		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}
		payload, err := json.Marshal(storedResponse{
			Status:      status,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		})
		if err != nil {
			logger.Warn("encode idempotent response", slog.String("error", err.Error()))
			return
		}
		if err := store.Set(context.WithoutCancel(ctx), scope, payload, ttl); err != nil {
			logger.Warn("store idempotent response", slog.String("error", err.Error()))
		}
	}
}

// replay writes the stored response for scope, if any. Store failures are
// logged and the request proceeds.
func replay(c *gin.Context, store lock.Store, scope string, logger *slog.Logger) bool {
	data, ok, err := store.Get(c.Request.Context(), scope)
	if err != nil {
		logger.Warn("load idempotent response", slog.String("error", err.Error()))
		return false
	}
	if !ok {
		return false
	}
	var stored storedResponse
	if err := json.Unmarshal(data, &stored); err != nil {
		logger.Warn("decode idempotent response", slog.String("error", err.Error()))
		return false
	}
	c.Header(ReplayedHeader, "true")
	c.Data(stored.Status, stored.ContentType, stored.Body)
	c.Abort()
	return true
}
