package operator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openfleet/openfleet/internal/common/auth"
	"github.com/openfleet/openfleet/internal/common/config"
)

// Service 操作员账号的核心用例：注册 / 登录 / 查询。
type Service struct {
	repo    *Repo
	authCfg config.AuthConfig
}

func NewService(repo *Repo, authCfg config.AuthConfig) *Service {
	return &Service{repo: repo, authCfg: authCfg}
}

// RegisterInput 注册入参。
type RegisterInput struct {
	Username    string
	Password    string
	DisplayName string
	Email       string
	Roles       []string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Operator, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, fmt.Errorf("username required")
	}
	if in.Password == "" {
		return nil, fmt.Errorf("password required")
	}

	salt, err := GenerateSaltHex()
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.Password, salt)
	if err != nil {
		return nil, err
	}

	roles := in.Roles
	if len(roles) == 0 {
		roles = []string{"operator"}
	}

	o := &Operator{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		PasswordSalt: salt,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Email:        strings.TrimSpace(in.Email),
		Roles:        RolesJoin(roles),
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// LoginResult 登录结果：JWT access token + 过期时间。
type LoginResult struct {
	Operator  *Operator
	Token     string
	ExpiresAt time.Time
}

// Login 校验口令并签发 access token。
// 用户名不存在与口令错误返回同一个错误，不给探测余地。
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password required")
	}

	o, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if !VerifyPassword(password, o.PasswordSalt, o.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, expiresAt, err := auth.GenerateAccessToken(s.authCfg, o.ID, o.RolesSlice(), 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &LoginResult{Operator: o, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Operator, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("id required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]Operator, int64, error) {
	if s == nil || s.repo == nil {
		return nil, 0, fmt.Errorf("service not initialized")
	}
	return s.repo.List(ctx, offset, limit)
}
