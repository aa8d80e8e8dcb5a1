package model

import (
	"time"
)

// Role 用户角色（闭集）
type Role string

const (
	RoleUser     Role = "user"
	RoleMerchant Role = "merchant"
	RoleAdmin    Role = "admin"
)

// ParseRole 解析角色字符串，未知值返回 false
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleMerchant, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// User 用户模型
// OpenID 由微信云托管网关注入，是对外唯一身份标识
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OpenID    string    `json:"openid" gorm:"uniqueIndex;size:64;not null"`
	Nickname  string    `json:"nickname" gorm:"size:64"`
	AvatarURL string    `json:"avatarUrl" gorm:"size:255"`
	Phone     string    `json:"phone" gorm:"index;size:20"`
	Role      Role      `json:"role" gorm:"size:16;not null;default:user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
