package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserModel_BeforeCreate_GeneratesID(t *testing.T) {
	user := &UserModel{Username: "alice", Email: "alice@example.com"}

	err := user.BeforeCreate(nil)

	assert.NoError(t, err)
	_, parseErr := uuid.Parse(user.ID)
	assert.NoError(t, parseErr)
}

func TestUserModel_BeforeCreate_KeepsExistingID(t *testing.T) {
	id := uuid.New().String()
	user := &UserModel{ID: id, Username: "alice", Email: "alice@example.com"}

	err := user.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, id, user.ID)
}

func TestModels_TableNames(t *testing.T) {
	assert.Equal(t, "users", UserModel{}.TableName())
	assert.Equal(t, "categories", CategoryModel{}.TableName())
	assert.Equal(t, "genres", GenreModel{}.TableName())
	assert.Equal(t, "titles", TitleModel{}.TableName())
	assert.Equal(t, "reviews", ReviewModel{}.TableName())
	assert.Equal(t, "comments", CommentModel{}.TableName())
}

func TestCatalogModels_BeforeCreate(t *testing.T) {
	category := &CategoryModel{Name: "Books", Slug: "books"}
	genre := &GenreModel{Name: "Drama", Slug: "drama"}
	title := &TitleModel{Name: "War and Peace", Year: 1869}

	assert.NoError(t, category.BeforeCreate(nil))
	assert.NoError(t, genre.BeforeCreate(nil))
	assert.NoError(t, title.BeforeCreate(nil))

	assert.NotEmpty(t, category.ID)
	assert.NotEmpty(t, genre.ID)
	assert.NotEmpty(t, title.ID)
}

func TestReviewModels_BeforeCreate(t *testing.T) {
	review := &ReviewModel{TitleID: uuid.New().String(), AuthorID: uuid.New().String(), Text: "great", Score: 9}
	comment := &CommentModel{ReviewID: uuid.New().String(), AuthorID: uuid.New().String(), Text: "agreed"}

	assert.NoError(t, review.BeforeCreate(nil))
	assert.NoError(t, comment.BeforeCreate(nil))

	assert.NotEmpty(t, review.ID)
	assert.NotEmpty(t, comment.ID)
}
