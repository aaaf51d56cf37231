package common

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strconv"
)

// CommonResponse is a lightweight response wrapper used by HTTP handlers.
type CommonResponse struct {
	Code  int         `json:"code"`
	Msg   string      `json:"msg,omitempty"`
	Error string      `json:"error,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

// ReturnOK creates a HTTP 200 response.
func (CommonResponse) ReturnOK() CommonResponse {
	return CommonResponse{Code: 200}
}

// ETag returns a quoted entity tag for an encoded profile.
func ETag(data []byte) string {
	sum := md5.Sum(data)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

type contextKey string

const userIDKey contextKey = "user_id"

// ProfileKeyAttr is the request context key handlers set to the profile they served.
const ProfileKeyAttr = "profile_key"

// ContextWithUserID stores user ID into context.
func ContextWithUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// GetUserID retrieves the user ID from context.
func GetUserID(ctx context.Context) (int, bool) {
	v := ctx.Value(userIDKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case string:
		id, err := strconv.Atoi(val)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}
