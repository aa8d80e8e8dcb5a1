package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/petmall-backend/internal/model"
	"github.com/d60-Lab/petmall-backend/internal/repository"
	"github.com/d60-Lab/petmall-backend/internal/service"
	"github.com/d60-Lab/petmall-backend/pkg/response"
)

func setupUsers(t *testing.T) service.UserService {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	repo := repository.NewUserRepository(db)
	ctx := context.Background()
	for _, u := range []model.User{
		{OpenID: "openid_user", Role: model.RoleUser},
		{OpenID: "openid_merchant", Role: model.RoleMerchant},
		{OpenID: "openid_admin", Role: model.RoleAdmin},
	} {
		require.NoError(t, repo.Create(ctx, &u))
	}
	return service.NewUserService(repo, "test-secret", time.Hour)
}

func protectedRouter(t *testing.T, allowDebugHeader bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	users := setupUsers(t)
	merchant := r.Group("/api/merchant")
	merchant.Use(RequireMerchant(users, allowDebugHeader))
	merchant.GET("/order/list", func(c *gin.Context) {
		response.Success(c, gin.H{"openid": c.GetString(CtxOpenID)})
	})

	admin := merchant.Group("")
	admin.Use(RequireAdmin())
	admin.POST("/user/role", func(c *gin.Context) {
		response.Success(c, nil)
	})

	// 受保护前缀之外的路径不经过鉴权门
	r.GET("/api/product/list", func(c *gin.Context) {
		response.Success(c, nil)
	})
	return r
}

func doGet(r *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireMerchant_MissingIdentity(t *testing.T) {
	r := protectedRouter(t, false)
	w := doGet(r, "/api/merchant/order/list", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":401`)
	assert.Contains(t, w.Body.String(), "Missing Identity")
}

func TestRequireMerchant_UnregisteredUser(t *testing.T) {
	r := protectedRouter(t, false)
	w := doGet(r, "/api/merchant/order/list", map[string]string{HeaderOpenID: "openid_ghost"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"code":403`)
	assert.Contains(t, w.Body.String(), "not registered")
}

func TestRequireMerchant_InsufficientRole(t *testing.T) {
	r := protectedRouter(t, false)
	w := doGet(r, "/api/merchant/order/list", map[string]string{HeaderOpenID: "openid_user"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"code":403`)
	assert.Contains(t, w.Body.String(), "Insufficient Permissions")
}

func TestRequireMerchant_Allowed(t *testing.T) {
	for _, openid := range []string{"openid_merchant", "openid_admin"} {
		t.Run(openid, func(t *testing.T) {
			r := protectedRouter(t, false)
			w := doGet(r, "/api/merchant/order/list", map[string]string{HeaderOpenID: openid})
			assert.Equal(t, http.StatusOK, w.Code)
			// 鉴权结果传递给了下游 handler
			assert.Contains(t, w.Body.String(), openid)
		})
	}
}

func TestRequireMerchant_DebugHeader(t *testing.T) {
	// 默认关闭：调试头不生效
	r := protectedRouter(t, false)
	w := doGet(r, "/api/merchant/order/list", map[string]string{HeaderDebugOpenID: "openid_merchant"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 显式放行后生效，且正式身份头优先
	r = protectedRouter(t, true)
	w = doGet(r, "/api/merchant/order/list", map[string]string{HeaderDebugOpenID: "openid_merchant"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGet(r, "/api/merchant/order/list", map[string]string{
		HeaderOpenID:      "openid_admin",
		HeaderDebugOpenID: "openid_ghost",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openid_admin")
}

func TestRequireAdmin(t *testing.T) {
	r := protectedRouter(t, false)

	req := httptest.NewRequest(http.MethodPost, "/api/merchant/user/role", nil)
	req.Header.Set(HeaderOpenID, "openid_merchant")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/merchant/user/role", nil)
	req.Header.Set(HeaderOpenID, "openid_admin")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnprotectedPathBypassesGate(t *testing.T) {
	r := protectedRouter(t, false)
	w := doGet(r, "/api/product/list", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
