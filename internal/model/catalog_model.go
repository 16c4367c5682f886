package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryModel struct {
	ID   string `gorm:"type:uuid;primary_key"`
	Name string `gorm:"type:varchar(256);not null"`
	Slug string `gorm:"type:varchar(50);uniqueIndex;not null"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

func (c *CategoryModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

type GenreModel struct {
	ID   string `gorm:"type:uuid;primary_key"`
	Name string `gorm:"type:varchar(256);not null"`
	Slug string `gorm:"type:varchar(50);uniqueIndex;not null"`
}

func (GenreModel) TableName() string {
	return "genres"
}

func (g *GenreModel) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}

type TitleModel struct {
	ID          string  `gorm:"type:uuid;primary_key"`
	Name        string  `gorm:"type:varchar(256);not null;index"`
	Year        int     `gorm:"not null"`
	Description string  `gorm:"type:text"`
	CategoryID  *string `gorm:"type:uuid;index"`

	// Category detaches (SET NULL) when the category is deleted; genres
	// are linked through title_genres.
	Category *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Genres   []GenreModel   `gorm:"many2many:title_genres;joinForeignKey:TitleID;joinReferences:GenreID;constraint:OnDelete:CASCADE"`
}

func (TitleModel) TableName() string {
	return "titles"
}

func (t *TitleModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
