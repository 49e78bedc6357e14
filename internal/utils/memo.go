package utils

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
)

// requestMemo caches computed values for the lifetime of one request.
type requestMemo struct {
	mu     sync.Mutex
	values map[string]any
}

type memoCtxKey struct{}

// WithRequestMemo returns a context carrying a fresh per-request memo
func WithRequestMemo(ctx context.Context) context.Context {
	return context.WithValue(ctx, memoCtxKey{}, &requestMemo{values: make(map[string]any)})
}

// Memoize returns the value cached under key for this request, computing it with fn
// on first use. Errors are not cached. Without a memo in ctx, fn runs every time.
func Memoize[T any](ctx context.Context, key string, fn func() (T, error)) (T, error) {
	memo, ok := ctx.Value(memoCtxKey{}).(*requestMemo)
	if !ok {
		return fn()
	}

	memo.mu.Lock()
	if v, found := memo.values[key]; found {
		memo.mu.Unlock()
		return v.(T), nil
	}
	memo.mu.Unlock()

	v, err := fn()
	if err != nil {
		return v, err
	}

	memo.mu.Lock()
	memo.values[key] = v
	memo.mu.Unlock()
	return v, nil
}

// RequestMemoMiddleware gives every request its own memo
func RequestMemoMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithRequestMemo(c.Request.Context()))
		c.Next()
	}
}
