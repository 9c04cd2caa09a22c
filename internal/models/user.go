// Package models はUserとTaskを定義します。
package models

import "time"

// User はユーザーのデータベース構造体を表します。
// 所有する Task は tasks.user_id の外部キー (ON DELETE CASCADE) で紐づきます。
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"` // JSONに出さない
	CreatedAt    time.Time `json:"-"`
}

// UserCredentialsRequest は登録・ログイン共通のリクエストです。
type UserCredentialsRequest struct {
	Username string `json:"username" binding:"required,max=80"`
	Password string `json:"password" binding:"required"` // 生パスワード
}

// UserResponse はクライアントに返すユーザー情報です。
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// NewUserResponse は User からレスポンスを作成します。
func NewUserResponse(u *User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username}
}
