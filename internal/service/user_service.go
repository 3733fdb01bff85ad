package service

import (
    "context"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/google/uuid"
    "golang.org/x/crypto/bcrypt"

    "github.com/xiangyu-lab/discover-feed/config"
    "github.com/xiangyu-lab/discover-feed/internal/model"
    "github.com/xiangyu-lab/discover-feed/internal/repository"
    "github.com/xiangyu-lab/discover-feed/pkg/errs"
)

// UserService 最小身份服务：注册/登录，给 API 层解析 viewer 用
type UserService interface {
    Register(ctx context.Context, username, password, nickname string) (*model.User, error)
    Login(ctx context.Context, username, password string) (token string, err error)
}

type userService struct {
    users repository.UserRepository
    jwt   config.JWTConfig
}

func NewUserService(users repository.UserRepository, jwtCfg config.JWTConfig) UserService {
    return &userService{users: users, jwt: jwtCfg}
}

func (s *userService) Register(ctx context.Context, username, password, nickname string) (*model.User, error) {
    if username == "" || password == "" {
        return nil, errs.InvalidArgumentf("username and password are required")
    }
    hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
    if err != nil {
        return nil, err
    }
    u := &model.User{
        ID:       uuid.New().String(),
        Username: username,
        Password: string(hash),
        Nickname: nickname,
    }
    if err := s.users.Create(ctx, u); err != nil {
        return nil, err
    }
    return u, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (string, error) {
    u, err := s.users.GetByUsername(ctx, username)
    if err != nil {
        if errs.IsNotFound(err) {
            return "", errs.InvalidArgumentf("invalid username or password")
        }
        return "", err
    }
    if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
        return "", errs.InvalidArgumentf("invalid username or password")
    }

    expire := time.Duration(s.jwt.ExpireHours) * time.Hour
    if expire <= 0 {
        expire = 72 * time.Hour
    }
    claims := jwt.RegisteredClaims{
        Subject:   u.ID,
        IssuedAt:  jwt.NewNumericDate(time.Now()),
        ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
    }
    token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return token.SignedString([]byte(s.jwt.Secret))
}
