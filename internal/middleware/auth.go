package middleware

import (
	"strings"

	"Campus_Hub/internal/model"
	"Campus_Hub/internal/pkg"
	"Campus_Hub/internal/repository/mysql"
	"Campus_Hub/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const ContextIdentityKey = "identity"

// Authenticator 身份解析入口。两种部署模式各一个实现，整个服务只选其一，
// 不允许按接口混用。
type Authenticator interface {
	Authenticate(c *gin.Context) (model.Identity, error)
}

// TokenAuthenticator 持久化模式：Bearer token -> redis 白名单 -> 用户表。
// 角色和审批状态以库里为准。
type TokenAuthenticator struct {
	Users  *mysql.UserRepository
	Tokens *redis.TokenRepository
}

func NewTokenAuthenticator() *TokenAuthenticator {
	return &TokenAuthenticator{
		Users:  mysql.NewUserRepository(),
		Tokens: &redis.TokenRepository{},
	}
}

func (a *TokenAuthenticator) Authenticate(c *gin.Context) (model.Identity, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return model.Identity{}, pkg.Unauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return model.Identity{}, pkg.Unauthenticated("invalid authorization format")
	}

	claims, err := pkg.ParseAccess(parts[1])
	if err != nil {
		return model.Identity{}, pkg.Unauthenticated("invalid or expired token")
	}

	// 白名单校验：同一账号新登录会顶掉旧 token
	stored, err := a.Tokens.Get(claims.UserID)
	if err != nil || stored != parts[1] {
		return model.Identity{}, pkg.Unauthenticated("account has logged in elsewhere")
	}
	if err := a.Tokens.Extend(claims.UserID); err != nil {
		return model.Identity{}, pkg.Internal("token extend failed", err)
	}

	user, err := a.Users.FindByID(claims.UserID)
	if err != nil {
		return model.Identity{}, pkg.Unauthenticated("user not found")
	}
	return model.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		Approved: user.IsApproved,
	}, nil
}

// HeaderAuthenticator 轻量模式：信任调用方在请求头里直接给出身份，
// 用于演示环境和测试，不查库。
type HeaderAuthenticator struct{}

func (a *HeaderAuthenticator) Authenticate(c *gin.Context) (model.Identity, error) {
	email := strings.ToLower(strings.TrimSpace(c.GetHeader("X-User-Email")))
	if email == "" {
		return model.Identity{}, pkg.Unauthenticated("user header missing")
	}

	role := strings.TrimSpace(c.GetHeader("X-User-Role"))
	if role == "" {
		role = model.RoleStudent
	}
	if !model.ValidRole(role) {
		return model.Identity{}, pkg.Invalid("invalid role value")
	}

	approved := true
	if v := c.GetHeader("X-User-Approved"); v != "" {
		approved = v == "true" || v == "1"
	}

	return model.Identity{
		Email:    email,
		Role:     role,
		Approved: approved,
	}, nil
}

// AuthMiddleware 解析身份并注入上下文，失败直接按错误码返回
func AuthMiddleware(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := a.Authenticate(c)
		if err != nil {
			c.AbortWithStatusJSON(pkg.HTTPStatus(err), gin.H{"msg": err.Error()})
			return
		}
		c.Set(ContextIdentityKey, identity)
		c.Next()
	}
}
