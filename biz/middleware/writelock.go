package middleware

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/yi-nology/envprofile/pkg/lock"
)

// WriteLock returns a middleware slice that serializes profile writes through
// l. A nil locker (Redis disabled) yields no middleware, so requests pass
// through without any locking overhead.
func WriteLock(l lock.Locker) []app.HandlerFunc {
	if l == nil {
		return nil
	}
	return []app.HandlerFunc{writeLockHandler(l)}
}

func writeLockHandler(l lock.Locker) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		lockID, err := l.Acquire(ctx)
		if err != nil {
			hlog.CtxWarnf(ctx, "[WriteLock] failed to acquire lock: %v", err)
			c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"code": http.StatusServiceUnavailable,
				"msg":  "service busy, please retry later",
			})
			c.Abort()
			return
		}
		defer func() {
			if releaseErr := l.Release(ctx, lockID); releaseErr != nil {
				hlog.CtxErrorf(ctx, "[WriteLock] failed to release lock: %v", releaseErr)
			}
		}()
		c.Next(ctx)
	}
}
