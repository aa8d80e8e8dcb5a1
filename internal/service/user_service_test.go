package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/petmall-backend/internal/model"
	"github.com/d60-Lab/petmall-backend/internal/repository"
)

func newUserService(t *testing.T) (UserService, repository.UserRepository) {
	t.Helper()
	db := setupOrderDB(t)
	require.NoError(t, db.AutoMigrate(&model.User{}))
	repo := repository.NewUserRepository(db)
	return NewUserService(repo, "test-secret", time.Hour), repo
}

func TestLoginWithPhone_RegistersOnce(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user, token, err := svc.LoginWithPhone(ctx, "13800138000")
	require.NoError(t, err)
	assert.Equal(t, "openid_13800138000", user.OpenID)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEmpty(t, token)

	// 二次登录不重复注册
	again, _, err := svc.LoginWithPhone(ctx, "13800138000")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestParseToken(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, token, err := svc.LoginWithPhone(ctx, "13800138000")
	require.NoError(t, err)

	openid, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "openid_13800138000", openid)

	_, err = svc.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 其他密钥签出的令牌不可用
	other := NewUserService(nil, "other-secret", time.Hour)
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdateUserRole(t *testing.T) {
	svc, repo := newUserService(t)
	ctx := context.Background()

	user, _, err := svc.LoginWithPhone(ctx, "13800138000")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateUserRole(ctx, user.OpenID, "merchant"))
	fresh, err := repo.GetByOpenID(ctx, user.OpenID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMerchant, fresh.Role)

	// 角色闭集外的值被拒绝
	err = svc.UpdateUserRole(ctx, user.OpenID, "superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)

	err = svc.UpdateUserRole(ctx, "openid_unknown", "admin")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserByOpenID_Unregistered(t *testing.T) {
	svc, _ := newUserService(t)
	user, err := svc.GetUserByOpenID(context.Background(), "openid_ghost")
	require.NoError(t, err)
	assert.Nil(t, user)
}
