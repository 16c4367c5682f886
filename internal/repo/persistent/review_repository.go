package persistent

import (
	"github.com/therealrustam/yamdb-final/internal/entity"
	"github.com/therealrustam/yamdb-final/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *entity.Review) error
	GetByID(titleID, reviewID string) (*entity.Review, error)
	ListByTitle(titleID string, limit, offset int) ([]*entity.Review, int64, error)
	Update(review *entity.Review) error
	Delete(id string) error
}

type CommentRepository interface {
	Create(comment *entity.Comment) error
	GetByID(reviewID, commentID string) (*entity.Comment, error)
	ListByReview(reviewID string, limit, offset int) ([]*entity.Comment, int64, error)
	Update(comment *entity.Comment) error
	Delete(id string) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *entity.Review) error {
	reviewModel := ToReviewModel(review)
	if err := r.db.Create(reviewModel).Error; err != nil {
		return err
	}
	review.ID = reviewModel.ID
	review.PubDate = reviewModel.CreatedAt
	return nil
}

func (r *reviewRepository) GetByID(titleID, reviewID string) (*entity.Review, error) {
	var reviewModel model.ReviewModel
	err := r.db.Preload("Author").
		Where("id = ? AND title_id = ?", reviewID, titleID).
		First(&reviewModel).Error
	if err != nil {
		return nil, err
	}
	return ToReviewEntity(&reviewModel), nil
}

func (r *reviewRepository) ListByTitle(titleID string, limit, offset int) ([]*entity.Review, int64, error) {
	query := r.db.Model(&model.ReviewModel{}).Where("title_id = ?", titleID)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var reviewModels []model.ReviewModel
	err := query.Preload("Author").
		Order("created_at").Limit(limit).Offset(offset).
		Find(&reviewModels).Error
	if err != nil {
		return nil, 0, err
	}

	reviews := make([]*entity.Review, len(reviewModels))
	for i := range reviewModels {
		reviews[i] = ToReviewEntity(&reviewModels[i])
	}
	return reviews, count, nil
}

func (r *reviewRepository) Update(review *entity.Review) error {
	return r.db.Model(&model.ReviewModel{ID: review.ID}).
		Select("text", "score").
		Updates(map[string]interface{}{"text": review.Text, "score": review.Score}).Error
}

func (r *reviewRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.ReviewModel{}).Error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)
	if err := r.db.Create(commentModel).Error; err != nil {
		return err
	}
	comment.ID = commentModel.ID
	comment.PubDate = commentModel.CreatedAt
	return nil
}

func (r *commentRepository) GetByID(reviewID, commentID string) (*entity.Comment, error) {
	var commentModel model.CommentModel
	err := r.db.Preload("Author").
		Where("id = ? AND review_id = ?", commentID, reviewID).
		First(&commentModel).Error
	if err != nil {
		return nil, err
	}
	return ToCommentEntity(&commentModel), nil
}

func (r *commentRepository) ListByReview(reviewID string, limit, offset int) ([]*entity.Comment, int64, error) {
	query := r.db.Model(&model.CommentModel{}).Where("review_id = ?", reviewID)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var commentModels []model.CommentModel
	err := query.Preload("Author").
		Order("created_at").Limit(limit).Offset(offset).
		Find(&commentModels).Error
	if err != nil {
		return nil, 0, err
	}

	comments := make([]*entity.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = ToCommentEntity(&commentModels[i])
	}
	return comments, count, nil
}

func (r *commentRepository) Update(comment *entity.Comment) error {
	return r.db.Model(&model.CommentModel{ID: comment.ID}).
		Select("text").
		Updates(map[string]interface{}{"text": comment.Text}).Error
}

func (r *commentRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.CommentModel{}).Error
}
