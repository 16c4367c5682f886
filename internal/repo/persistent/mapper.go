package persistent

import (
	"github.com/therealrustam/yamdb-final/internal/entity"
	"github.com/therealrustam/yamdb-final/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:               m.ID,
		Username:         m.Username,
		Email:            m.Email,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Bio:              m.Bio,
		Role:             entity.Role(m.Role),
		IsStaff:          m.IsStaff,
		EmailVerified:    m.EmailVerified,
		ConfirmationCode: m.ConfirmationCode,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:               e.ID,
		Username:         e.Username,
		Email:            e.Email,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		Bio:              e.Bio,
		Role:             string(e.Role),
		IsStaff:          e.IsStaff,
		EmailVerified:    e.EmailVerified,
		ConfirmationCode: e.ConfirmationCode,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func ToCategoryEntity(m *model.CategoryModel) *entity.Category {
	if m == nil {
		return nil
	}
	return &entity.Category{ID: m.ID, Name: m.Name, Slug: m.Slug}
}

func ToCategoryModel(e *entity.Category) *model.CategoryModel {
	if e == nil {
		return nil
	}
	return &model.CategoryModel{ID: e.ID, Name: e.Name, Slug: e.Slug}
}

func ToGenreEntity(m *model.GenreModel) *entity.Genre {
	if m == nil {
		return nil
	}
	return &entity.Genre{ID: m.ID, Name: m.Name, Slug: m.Slug}
}

func ToGenreModel(e *entity.Genre) *model.GenreModel {
	if e == nil {
		return nil
	}
	return &model.GenreModel{ID: e.ID, Name: e.Name, Slug: e.Slug}
}

func ToTitleEntity(m *model.TitleModel) *entity.Title {
	if m == nil {
		return nil
	}

	genres := make([]entity.Genre, len(m.Genres))
	for i := range m.Genres {
		genres[i] = *ToGenreEntity(&m.Genres[i])
	}

	return &entity.Title{
		ID:          m.ID,
		Name:        m.Name,
		Year:        m.Year,
		Description: m.Description,
		Category:    ToCategoryEntity(m.Category),
		Genres:      genres,
	}
}

func ToTitleModel(e *entity.Title) *model.TitleModel {
	if e == nil {
		return nil
	}

	m := &model.TitleModel{
		ID:          e.ID,
		Name:        e.Name,
		Year:        e.Year,
		Description: e.Description,
	}
	if e.Category != nil {
		m.CategoryID = &e.Category.ID
	}
	for i := range e.Genres {
		m.Genres = append(m.Genres, *ToGenreModel(&e.Genres[i]))
	}
	return m
}

func ToReviewEntity(m *model.ReviewModel) *entity.Review {
	if m == nil {
		return nil
	}

	return &entity.Review{
		ID:       m.ID,
		TitleID:  m.TitleID,
		AuthorID: m.AuthorID,
		Author:   m.Author.Username,
		Text:     m.Text,
		Score:    m.Score,
		PubDate:  m.CreatedAt,
	}
}

func ToReviewModel(e *entity.Review) *model.ReviewModel {
	if e == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:        e.ID,
		TitleID:   e.TitleID,
		AuthorID:  e.AuthorID,
		Text:      e.Text,
		Score:     e.Score,
		CreatedAt: e.PubDate,
	}
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:       m.ID,
		ReviewID: m.ReviewID,
		AuthorID: m.AuthorID,
		Author:   m.Author.Username,
		Text:     m.Text,
		PubDate:  m.CreatedAt,
	}
}

func ToCommentModel(e *entity.Comment) *model.CommentModel {
	if e == nil {
		return nil
	}

	return &model.CommentModel{
		ID:        e.ID,
		ReviewID:  e.ReviewID,
		AuthorID:  e.AuthorID,
		Text:      e.Text,
		CreatedAt: e.PubDate,
	}
}
