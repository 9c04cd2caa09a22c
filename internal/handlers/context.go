// Package handlers はHTTPハンドラーを提供します。
package handlers

import "github.com/gin-gonic/gin"

// gin.Context に保存するキー
const (
	UserIDKey    = "user_id"
	RequestIDKey = "request_id"
)

// currentUserID は認証ミドルウェアが設定したユーザーIDを取り出します。
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// RequestIDFrom はリクエストIDを返します。未設定の場合は空文字です。
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
