package usecase

import (
	"errors"
	"fmt"

	"github.com/therealrustam/yamdb-final/internal/apperr"
	"github.com/therealrustam/yamdb-final/internal/entity"
	"github.com/therealrustam/yamdb-final/internal/repo/persistent"
	"github.com/therealrustam/yamdb-final/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInput is the admin create payload.
type UserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

type UserUseCase interface {
	List(search string, limit, offset int) ([]*entity.User, int64, error)
	Create(input UserInput) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(username string, patch UserPatch) (*entity.User, error)
	Delete(username string) error
	UpdateMe(actor *entity.User, patch UserPatch) (*entity.User, error)
}

type userUseCase struct {
	userRepo persistent.UserRepository
	logger   *logger.Logger
}

func NewUserUseCase(userRepo persistent.UserRepository, logger *logger.Logger) UserUseCase {
	return &userUseCase{userRepo: userRepo, logger: logger}
}

func (uc *userUseCase) List(search string, limit, offset int) ([]*entity.User, int64, error) {
	return uc.userRepo.List(search, limit, offset)
}

func (uc *userUseCase) Create(input UserInput) (*entity.User, error) {
	if err := validateUsername(input.Username); err != nil {
		return nil, err
	}
	if input.Email == "" {
		return nil, apperr.ValidationField("email", "this field is required")
	}

	role := entity.Role(input.Role)
	if input.Role == "" {
		role = entity.RoleUser
	} else if !role.Valid() {
		return nil, apperr.ValidationField("role", "must be one of: user, moderator, admin")
	}

	// Admin-created accounts still get a confirmation code so the owner
	// can complete the token exchange later; no mail goes out here.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to generate confirmation code: %w", err)
	}

	user := &entity.User{
		Username:         input.Username,
		Email:            input.Email,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Bio:              input.Bio,
		Role:             role,
		ConfirmationCode: string(hash),
	}
	if err := uc.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ValidationField("username", "this username or email is already taken")
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, err
	}
	return user, nil
}

func (uc *userUseCase) GetByUsername(username string) (*entity.User, error) {
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %q not found", username)
		}
		return nil, err
	}
	return user, nil
}

func (uc *userUseCase) Update(username string, patch UserPatch) (*entity.User, error) {
	user, err := uc.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	return uc.apply(user, patch)
}

func (uc *userUseCase) Delete(username string) error {
	user, err := uc.GetByUsername(username)
	if err != nil {
		return err
	}
	return uc.userRepo.Delete(user.ID)
}

// UpdateMe is the self-service profile update. Two fields are guarded for
// the owner: a user-role account asking for the admin role is silently
// rewritten back to user (policy substitution, not an error), and a
// verified email address cannot be changed.
func (uc *userUseCase) UpdateMe(actor *entity.User, patch UserPatch) (*entity.User, error) {
	if patch.Role != nil && entity.Role(*patch.Role) == entity.RoleAdmin && actor.Role == entity.RoleUser {
		downgraded := string(entity.RoleUser)
		patch.Role = &downgraded
	}

	if patch.Email != nil && *patch.Email != actor.Email && actor.EmailVerified {
		return nil, apperr.ValidationField("email", "cannot change a verified email address")
	}

	return uc.apply(actor, patch)
}

func (uc *userUseCase) apply(user *entity.User, patch UserPatch) (*entity.User, error) {
	if patch.Username != nil && *patch.Username != user.Username {
		if err := validateUsername(*patch.Username); err != nil {
			return nil, err
		}
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		if *patch.Email == "" {
			return nil, apperr.ValidationField("email", "this field is required")
		}
		user.Email = *patch.Email
	}
	if patch.Role != nil {
		role := entity.Role(*patch.Role)
		if !role.Valid() {
			return nil, apperr.ValidationField("role", "must be one of: user, moderator, admin")
		}
		user.Role = role
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}

	if err := uc.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ValidationField("username", "this username or email is already taken")
		}
		uc.logger.Error("Failed to update user: %v", err)
		return nil, err
	}
	return user, nil
}
