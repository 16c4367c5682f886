package usecase

import (
	"errors"

	"github.com/therealrustam/yamdb-final/internal/access"
	"github.com/therealrustam/yamdb-final/internal/apperr"
	"github.com/therealrustam/yamdb-final/internal/entity"
	"github.com/therealrustam/yamdb-final/internal/repo/persistent"
	"github.com/therealrustam/yamdb-final/pkg/logger"

	"gorm.io/gorm"
)

type ReviewUseCase interface {
	ListReviews(titleID string, limit, offset int) ([]*entity.Review, int64, error)
	GetReview(titleID, reviewID string) (*entity.Review, error)
	CreateReview(actor *entity.User, titleID, text string, score int) (*entity.Review, error)
	UpdateReview(actor *entity.User, titleID, reviewID string, text *string, score *int) (*entity.Review, error)
	DeleteReview(actor *entity.User, titleID, reviewID string) error

	ListComments(titleID, reviewID string, limit, offset int) ([]*entity.Comment, int64, error)
	GetComment(titleID, reviewID, commentID string) (*entity.Comment, error)
	CreateComment(actor *entity.User, titleID, reviewID, text string) (*entity.Comment, error)
	UpdateComment(actor *entity.User, titleID, reviewID, commentID, text string) (*entity.Comment, error)
	DeleteComment(actor *entity.User, titleID, reviewID, commentID string) error
}

type reviewUseCase struct {
	titleRepo   persistent.TitleRepository
	reviewRepo  persistent.ReviewRepository
	commentRepo persistent.CommentRepository
	logger      *logger.Logger
}

func NewReviewUseCase(
	titleRepo persistent.TitleRepository,
	reviewRepo persistent.ReviewRepository,
	commentRepo persistent.CommentRepository,
	logger *logger.Logger,
) ReviewUseCase {
	return &reviewUseCase{
		titleRepo:   titleRepo,
		reviewRepo:  reviewRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

func (uc *reviewUseCase) ListReviews(titleID string, limit, offset int) ([]*entity.Review, int64, error) {
	if err := uc.requireTitle(titleID); err != nil {
		return nil, 0, err
	}
	return uc.reviewRepo.ListByTitle(titleID, limit, offset)
}

func (uc *reviewUseCase) GetReview(titleID, reviewID string) (*entity.Review, error) {
	review, err := uc.reviewRepo.GetByID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review %q not found", reviewID)
		}
		return nil, err
	}
	return review, nil
}

func (uc *reviewUseCase) CreateReview(actor *entity.User, titleID, text string, score int) (*entity.Review, error) {
	if err := validateReview(text, score); err != nil {
		return nil, err
	}
	if err := uc.requireTitle(titleID); err != nil {
		return nil, err
	}

	review := &entity.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Author:   actor.Username,
		Text:     text,
		Score:    score,
	}
	if err := uc.reviewRepo.Create(review); err != nil {
		// One review per (title, author); the unique index also settles
		// the concurrent-create race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ValidationField("non_field_errors", "you have already reviewed this title")
		}
		uc.logger.Error("Failed to create review: %v", err)
		return nil, err
	}
	return review, nil
}

func (uc *reviewUseCase) UpdateReview(actor *entity.User, titleID, reviewID string, text *string, score *int) (*entity.Review, error) {
	review, err := uc.GetReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := access.CanAct(actor, access.ActionUpdate, review); err != nil {
		return nil, err
	}

	if text != nil {
		review.Text = *text
	}
	if score != nil {
		review.Score = *score
	}
	if err := validateReview(review.Text, review.Score); err != nil {
		return nil, err
	}

	if err := uc.reviewRepo.Update(review); err != nil {
		uc.logger.Error("Failed to update review: %v", err)
		return nil, err
	}
	return review, nil
}

func (uc *reviewUseCase) DeleteReview(actor *entity.User, titleID, reviewID string) error {
	review, err := uc.GetReview(titleID, reviewID)
	if err != nil {
		return err
	}
	if err := access.CanAct(actor, access.ActionDelete, review); err != nil {
		return err
	}
	return uc.reviewRepo.Delete(review.ID)
}

func (uc *reviewUseCase) ListComments(titleID, reviewID string, limit, offset int) ([]*entity.Comment, int64, error) {
	if _, err := uc.GetReview(titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return uc.commentRepo.ListByReview(reviewID, limit, offset)
}

func (uc *reviewUseCase) GetComment(titleID, reviewID, commentID string) (*entity.Comment, error) {
	if _, err := uc.GetReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := uc.commentRepo.GetByID(reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment %q not found", commentID)
		}
		return nil, err
	}
	return comment, nil
}

func (uc *reviewUseCase) CreateComment(actor *entity.User, titleID, reviewID, text string) (*entity.Comment, error) {
	if text == "" {
		return nil, apperr.ValidationField("text", "this field is required")
	}
	if _, err := uc.GetReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Author:   actor.Username,
		Text:     text,
	}
	if err := uc.commentRepo.Create(comment); err != nil {
		uc.logger.Error("Failed to create comment: %v", err)
		return nil, err
	}
	return comment, nil
}

func (uc *reviewUseCase) UpdateComment(actor *entity.User, titleID, reviewID, commentID, text string) (*entity.Comment, error) {
	comment, err := uc.GetComment(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := access.CanAct(actor, access.ActionUpdate, comment); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, apperr.ValidationField("text", "this field is required")
	}

	comment.Text = text
	if err := uc.commentRepo.Update(comment); err != nil {
		uc.logger.Error("Failed to update comment: %v", err)
		return nil, err
	}
	return comment, nil
}

func (uc *reviewUseCase) DeleteComment(actor *entity.User, titleID, reviewID, commentID string) error {
	comment, err := uc.GetComment(titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := access.CanAct(actor, access.ActionDelete, comment); err != nil {
		return err
	}
	return uc.commentRepo.Delete(comment.ID)
}

func (uc *reviewUseCase) requireTitle(titleID string) error {
	if _, err := uc.titleRepo.GetByID(titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("title %q not found", titleID)
		}
		return err
	}
	return nil
}

func validateReview(text string, score int) error {
	fields := map[string]string{}
	if text == "" {
		fields["text"] = "this field is required"
	}
	if score < 1 || score > 10 {
		fields["score"] = "must be between 1 and 10"
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}
