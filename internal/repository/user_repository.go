package repository

import (
    "context"
    "errors"

    "gorm.io/gorm"

    "github.com/xiangyu-lab/discover-feed/internal/model"
    "github.com/xiangyu-lab/discover-feed/pkg/errs"
)

type UserRepository interface {
    Create(ctx context.Context, user *model.User) error
    GetByID(ctx context.Context, id string) (*model.User, error)
    // GetByIDs 批量装配作者摘要，单次 IN 查询
    GetByIDs(ctx context.Context, ids []string) ([]*model.User, error)
    GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type userRepository struct {
    db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
    if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
        if errors.Is(err, gorm.ErrDuplicatedKey) {
            return errs.InvalidArgumentf("username %s already taken", user.Username)
        }
        return errs.Unavailablef(err)
    }
    return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
    var u model.User
    err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, errs.NotFoundf("user %s", id)
        }
        return nil, errs.Unavailablef(err)
    }
    return &u, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
    if len(ids) == 0 {
        return nil, nil
    }
    var users []*model.User
    if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
        return nil, errs.Unavailablef(err)
    }
    return users, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
    var u model.User
    err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, errs.NotFoundf("user %s", username)
        }
        return nil, errs.Unavailablef(err)
    }
    return &u, nil
}
