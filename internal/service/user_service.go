package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/petmall-backend/internal/model"
	"github.com/d60-Lab/petmall-backend/internal/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")
	ErrInvalidToken = errors.New("invalid token")
)

// UserService 用户服务：身份查询、登录注册、角色变更、会话令牌
type UserService interface {
	// GetUserByOpenID 身份查询，未注册返回 (nil, nil)
	GetUserByOpenID(ctx context.Context, openid string) (*model.User, error)

	// LoginWithPhone 手机号登录，首次登录自动注册（默认 user 角色），返回用户与会话令牌
	LoginWithPhone(ctx context.Context, phone string) (*model.User, string, error)

	// RegisterUser 幂等注册：openid 已存在时返回既有用户
	RegisterUser(ctx context.Context, user *model.User) (*model.User, error)

	// UpdateUserRole 角色变更，只接受闭集内的角色
	UpdateUserRole(ctx context.Context, openid string, role string) error

	// ParseToken 解析会话令牌，返回其中的 openid
	ParseToken(token string) (string, error)
}

type userService struct {
	repo      repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository, jwtSecret string, tokenTTL time.Duration) UserService {
	return &userService{repo: repo, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

func (s *userService) GetUserByOpenID(ctx context.Context, openid string) (*model.User, error) {
	return s.repo.GetByOpenID(ctx, openid)
}

// LoginWithPhone 演示登录流程：短信验证码由前端 mock，
// 真实微信登录走 wx.login -> code -> openid，这里用手机号推导确定性 openid
func (s *userService) LoginWithPhone(ctx context.Context, phone string) (*model.User, string, error) {
	openid := "openid_" + phone
	user, err := s.RegisterUser(ctx, &model.User{
		OpenID:    openid,
		Phone:     phone,
		Nickname:  "User " + tail(phone, 4),
		AvatarURL: "https://placehold.co/100x100/png?text=U",
		Role:      model.RoleUser,
	})
	if err != nil {
		return nil, "", err
	}
	token, err := s.issueToken(user.OpenID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) RegisterUser(ctx context.Context, user *model.User) (*model.User, error) {
	existing, err := s.repo.GetByOpenID(ctx, user.OpenID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUserRole(ctx context.Context, openid string, role string) error {
	r, ok := model.ParseRole(role)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	user, err := s.repo.GetByOpenID(ctx, openid)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.repo.UpdateRole(ctx, openid, r)
}

func (s *userService) issueToken(openid string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   openid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *userService) ParseToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
