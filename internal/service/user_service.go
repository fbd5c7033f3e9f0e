package service

import (
	"strings"

	"Campus_Hub/internal/model"
	"Campus_Hub/internal/pkg"
	"Campus_Hub/internal/repository/mysql"
	"Campus_Hub/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo   *mysql.UserRepository
	tokens *redis.TokenRepository
	authz  *AuthzService
}

func NewUserService() *UserService {
	return &UserService{
		repo:   mysql.NewUserRepository(),
		tokens: &redis.TokenRepository{},
		authz:  NewAuthzService(),
	}
}

// Register 注册：学生直接生效，leader 处于待审批；不接受自助注册 admin
func (s *UserService) Register(username, password, email, desiredRole string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	desiredRole = strings.ToLower(strings.TrimSpace(desiredRole))
	if desiredRole == "" {
		desiredRole = model.RoleStudent
	}

	if username == "" || email == "" || password == "" {
		return nil, pkg.Invalid("username, email and password required")
	}
	if desiredRole != model.RoleStudent && desiredRole != model.RoleLeader {
		return nil, pkg.Invalid("role must be student or leader")
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, pkg.Invalid("username or email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:   username,
		Password:   string(hash),
		Email:      email,
		Role:       desiredRole,
		IsApproved: desiredRole == model.RoleStudent,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 用户名或邮箱登录，成功后把 access token 写入 redis 白名单
func (s *UserService) Login(identifier, password string) (*model.User, *pkg.Pair, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	user, err := s.repo.FindByIdentifier(identifier)
	if err != nil {
		return nil, nil, pkg.Unauthenticated("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil, pkg.Unauthenticated("invalid credentials")
	}

	pair, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.tokens.Add(user.ID, pair.AccessToken); err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *UserService) Logout(userID uint64) error {
	return s.tokens.Delete(userID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	pair, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, pkg.Unauthenticated("invalid refresh token")
	}
	return pair, nil
}

// ListPendingLeaders 管理员查看待审批的 leader 账号
func (s *UserService) ListPendingLeaders(actor model.Identity) ([]model.User, error) {
	if err := s.authz.EnsureAdmin(actor); err != nil {
		return nil, err
	}
	return s.repo.ListPendingLeaders()
}

// ApproveLeader 管理员审批 leader 账号，目标不是 leader 按不存在处理
func (s *UserService) ApproveLeader(actor model.Identity, userID uint64) (*model.User, error) {
	if err := s.authz.EnsureAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(userID)
	if err != nil || user.Role != model.RoleLeader {
		return nil, pkg.NotFound("leader not found")
	}
	if err := s.repo.Approve(user); err != nil {
		return nil, err
	}
	user.IsApproved = true
	return user, nil
}
