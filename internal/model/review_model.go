package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewModel struct {
	ID        string    `gorm:"type:uuid;primary_key"`
	TitleID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_title_author"`
	AuthorID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_title_author"`
	Text      string    `gorm:"type:text;not null"`
	Score     int       `gorm:"not null;check:score >= 1 AND score <= 10"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Title  TitleModel `gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE"`
	Author UserModel  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

func (r *ReviewModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

type CommentModel struct {
	ID        string    `gorm:"type:uuid;primary_key"`
	ReviewID  string    `gorm:"type:uuid;not null;index"`
	AuthorID  string    `gorm:"type:uuid;not null"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Review ReviewModel `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
	Author UserModel   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
