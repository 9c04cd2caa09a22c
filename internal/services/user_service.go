package services

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"go-task-manager/internal/models"
	"go-task-manager/internal/repositories"
)

// ErrInvalidCredentials はユーザーが存在しないかパスワードが誤っていることを示します。
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService はユーザー関連のビジネスロジックを扱います。
type UserService struct {
	db       *gorm.DB
	userRepo *repositories.UserRepository
	hasher   *PasswordHasher
	logger   *slog.Logger
}

// NewUserService は新しいUserServiceを作成します。
func NewUserService(db *gorm.DB, userRepo *repositories.UserRepository, hasher *PasswordHasher, logger *slog.Logger) *UserService {
	return &UserService{db: db, userRepo: userRepo, hasher: hasher, logger: logger}
}

// RegisterUser はユーザーを登録します。
// ユーザー名が既に存在する場合は repositories.ErrDuplicateUsername を返します。
func (s *UserService) RegisterUser(ctx context.Context, req models.UserCredentialsRequest) (*models.User, error) {
	newUser := &models.User{Username: req.Username}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.userRepo.WithTx(tx)
		exists, err := users.ExistsByUsername(ctx, req.Username)
		if err != nil {
			return err
		}
		if exists {
			return repositories.ErrDuplicateUsername
		}

		// 重複エラーをパスワード長のエラーより優先する
		newUser.PasswordHash, err = s.hasher.Hash(req.Password)
		if err != nil {
			return err
		}
		return users.Create(ctx, newUser)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", slog.Uint64("user_id", uint64(newUser.ID)))
	return newUser, nil
}

// AuthenticateUser はユーザーを認証し、成功したらユーザーを返します。
// ユーザー不在とパスワード不一致はどちらも ErrInvalidCredentials になります。
func (s *UserService) AuthenticateUser(ctx context.Context, req models.UserCredentialsRequest) (*models.User, error) {
	foundUser, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Verify(foundUser.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return foundUser, nil
}

// DeleteUser はユーザーと所有するすべてのタスクを削除します。
func (s *UserService) DeleteUser(ctx context.Context, userID uint) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user deleted", slog.Uint64("user_id", uint64(userID)))
	return nil
}
