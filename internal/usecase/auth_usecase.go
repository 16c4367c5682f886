package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/therealrustam/yamdb-final/internal/apperr"
	"github.com/therealrustam/yamdb-final/internal/entity"
	"github.com/therealrustam/yamdb-final/internal/repo/persistent"
	"github.com/therealrustam/yamdb-final/pkg/logger"
	"github.com/therealrustam/yamdb-final/pkg/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	mailSubject = "Confirmation code"
	mailBody    = "Please do not share this code with anyone. Your code: %s"
)

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

// Mailer is the external notifier contract; failures must surface to the
// caller, never be swallowed.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type AuthUseCase interface {
	SignUp(ctx context.Context, username, email string) (*entity.User, error)
	IssueToken(username, confirmationCode string) (*token.Pair, error)
	Refresh(refreshToken string) (*token.Pair, error)
}

type authUseCase struct {
	userRepo persistent.UserRepository
	tokens   *token.Service
	mailer   Mailer
	logger   *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	tokens *token.Service,
	mailer Mailer,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
		logger:   logger,
	}
}

// SignUp registers an identity (or re-registers an existing one, matched
// on both username and email), rotates its confirmation code and mails
// the plaintext code out. Only the bcrypt hash of the code is stored.
func (uc *authUseCase) SignUp(ctx context.Context, username, email string) (*entity.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	byUsername, err := uc.userRepo.GetByUsername(username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	byEmail, err := uc.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var user *entity.User
	switch {
	case byUsername != nil && byEmail != nil && byUsername.ID == byEmail.ID:
		// Repeat signup by the same identity rotates the code.
		user = byUsername
	case byUsername != nil:
		return nil, apperr.ValidationField("username", "this username is already taken")
	case byEmail != nil:
		return nil, apperr.ValidationField("email", "this email is already registered")
	}

	code := uuid.New().String()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash confirmation code: %v", err)
		return nil, fmt.Errorf("failed to process registration: %w", err)
	}

	if user == nil {
		user = &entity.User{
			Username:         username,
			Email:            email,
			Role:             entity.RoleUser,
			ConfirmationCode: string(hash),
		}
		if err := uc.userRepo.Create(user); err != nil {
			// Two concurrent signups can both pass the lookups above;
			// the unique constraint is the authority.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.ValidationField("username", "this username or email is already taken")
			}
			uc.logger.Error("Failed to create user: %v", err)
			return nil, err
		}
	} else {
		user.ConfirmationCode = string(hash)
		if err := uc.userRepo.Update(user); err != nil {
			uc.logger.Error("Failed to rotate confirmation code: %v", err)
			return nil, err
		}
	}

	if err := uc.mailer.Send(ctx, email, mailSubject, fmt.Sprintf(mailBody, code)); err != nil {
		uc.logger.Error("Failed to send confirmation code to %s: %v", email, err)
		return nil, apperr.Delivery("failed to deliver the confirmation code", err)
	}

	return user, nil
}

// IssueToken exchanges a confirmation code for a token pair. The stored
// code is compared, not cleared: repeat exchanges with the same code keep
// succeeding.
func (uc *authUseCase) IssueToken(username, confirmationCode string) (*token.Pair, error) {
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %q not found", username)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.ConfirmationCode), []byte(confirmationCode)) != nil {
		return nil, apperr.ValidationField("confirmation_code", "invalid confirmation code")
	}

	// The code was delivered to this mailbox, so the address is proven.
	if !user.EmailVerified {
		user.EmailVerified = true
		if err := uc.userRepo.Update(user); err != nil {
			uc.logger.Error("Failed to mark email verified for %s: %v", username, err)
			return nil, err
		}
	}

	pair, err := uc.tokens.GeneratePair(user.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token pair: %v", err)
		return nil, err
	}
	return pair, nil
}

func (uc *authUseCase) Refresh(refreshToken string) (*token.Pair, error) {
	claims, err := uc.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("invalid refresh token")
	}
	if claims.Type != token.TypeRefresh {
		return nil, apperr.Unauthorized("not a refresh token")
	}

	user, err := uc.userRepo.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("unknown identity")
		}
		return nil, err
	}

	pair, err := uc.tokens.GeneratePair(user.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token pair: %v", err)
		return nil, err
	}
	return pair, nil
}

func validateUsername(username string) error {
	if username == "" {
		return apperr.ValidationField("username", "this field is required")
	}
	if username == entity.ReservedUsername {
		return apperr.ValidationField("username", "this username is reserved")
	}
	if len(username) > 150 {
		return apperr.ValidationField("username", "must be at most 150 characters")
	}
	if !usernameRe.MatchString(username) {
		return apperr.ValidationField("username", "may contain only letters, digits and @/./+/-/_ characters")
	}
	return nil
}
