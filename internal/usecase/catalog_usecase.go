package usecase

import (
	"errors"
	"regexp"
	"time"

	"github.com/therealrustam/yamdb-final/internal/apperr"
	"github.com/therealrustam/yamdb-final/internal/entity"
	"github.com/therealrustam/yamdb-final/internal/repo/persistent"
	"github.com/therealrustam/yamdb-final/pkg/logger"

	"gorm.io/gorm"
)

var slugRe = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// TitleInput is the create payload; category and genres are referenced
// by slug, the way the public API addresses them.
type TitleInput struct {
	Name         string
	Year         int
	Description  string
	CategorySlug string
	GenreSlugs   []string
}

type TitlePatch struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

type CatalogUseCase interface {
	ListCategories(search string, limit, offset int) ([]*entity.Category, int64, error)
	CreateCategory(name, slug string) (*entity.Category, error)
	DeleteCategory(slug string) error

	ListGenres(search string, limit, offset int) ([]*entity.Genre, int64, error)
	CreateGenre(name, slug string) (*entity.Genre, error)
	DeleteGenre(slug string) error

	ListTitles(filter persistent.TitleFilter, limit, offset int) ([]*entity.Title, int64, error)
	GetTitle(id string) (*entity.Title, error)
	CreateTitle(input TitleInput) (*entity.Title, error)
	UpdateTitle(id string, patch TitlePatch) (*entity.Title, error)
	DeleteTitle(id string) error
}

type catalogUseCase struct {
	categoryRepo persistent.CategoryRepository
	genreRepo    persistent.GenreRepository
	titleRepo    persistent.TitleRepository
	logger       *logger.Logger
}

func NewCatalogUseCase(
	categoryRepo persistent.CategoryRepository,
	genreRepo persistent.GenreRepository,
	titleRepo persistent.TitleRepository,
	logger *logger.Logger,
) CatalogUseCase {
	return &catalogUseCase{
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		titleRepo:    titleRepo,
		logger:       logger,
	}
}

func (uc *catalogUseCase) ListCategories(search string, limit, offset int) ([]*entity.Category, int64, error) {
	return uc.categoryRepo.List(search, limit, offset)
}

func (uc *catalogUseCase) CreateCategory(name, slug string) (*entity.Category, error) {
	if err := validateNameSlug(name, slug); err != nil {
		return nil, err
	}

	category := &entity.Category{Name: name, Slug: slug}
	if err := uc.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ValidationField("slug", "this slug is already in use")
		}
		uc.logger.Error("Failed to create category: %v", err)
		return nil, err
	}
	return category, nil
}

func (uc *catalogUseCase) DeleteCategory(slug string) error {
	category, err := uc.categoryRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("category %q not found", slug)
		}
		return err
	}
	return uc.categoryRepo.Delete(category.ID)
}

func (uc *catalogUseCase) ListGenres(search string, limit, offset int) ([]*entity.Genre, int64, error) {
	return uc.genreRepo.List(search, limit, offset)
}

func (uc *catalogUseCase) CreateGenre(name, slug string) (*entity.Genre, error) {
	if err := validateNameSlug(name, slug); err != nil {
		return nil, err
	}

	genre := &entity.Genre{Name: name, Slug: slug}
	if err := uc.genreRepo.Create(genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ValidationField("slug", "this slug is already in use")
		}
		uc.logger.Error("Failed to create genre: %v", err)
		return nil, err
	}
	return genre, nil
}

func (uc *catalogUseCase) DeleteGenre(slug string) error {
	genre, err := uc.genreRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("genre %q not found", slug)
		}
		return err
	}
	return uc.genreRepo.Delete(genre.ID)
}

func (uc *catalogUseCase) ListTitles(filter persistent.TitleFilter, limit, offset int) ([]*entity.Title, int64, error) {
	return uc.titleRepo.List(filter, limit, offset)
}

func (uc *catalogUseCase) GetTitle(id string) (*entity.Title, error) {
	title, err := uc.titleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("title %q not found", id)
		}
		return nil, err
	}
	return title, nil
}

func (uc *catalogUseCase) CreateTitle(input TitleInput) (*entity.Title, error) {
	if input.Name == "" {
		return nil, apperr.ValidationField("name", "this field is required")
	}
	if len(input.Name) > 256 {
		return nil, apperr.ValidationField("name", "must be at most 256 characters")
	}
	if err := validateYear(input.Year); err != nil {
		return nil, err
	}

	title := &entity.Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}
	if err := uc.resolveRefs(title, input.CategorySlug, input.GenreSlugs); err != nil {
		return nil, err
	}

	if err := uc.titleRepo.Create(title); err != nil {
		uc.logger.Error("Failed to create title: %v", err)
		return nil, err
	}
	return title, nil
}

func (uc *catalogUseCase) UpdateTitle(id string, patch TitlePatch) (*entity.Title, error) {
	title, err := uc.GetTitle(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, apperr.ValidationField("name", "this field is required")
		}
		title.Name = *patch.Name
	}
	if patch.Year != nil {
		if err := validateYear(*patch.Year); err != nil {
			return nil, err
		}
		title.Year = *patch.Year
	}
	if patch.Description != nil {
		title.Description = *patch.Description
	}

	categorySlug := ""
	if patch.CategorySlug != nil {
		categorySlug = *patch.CategorySlug
		title.Category = nil
	}
	genreSlugs := []string(nil)
	if patch.GenreSlugs != nil {
		genreSlugs = *patch.GenreSlugs
		title.Genres = nil
	}
	if err := uc.resolveRefs(title, categorySlug, genreSlugs); err != nil {
		return nil, err
	}

	if err := uc.titleRepo.Update(title); err != nil {
		uc.logger.Error("Failed to update title: %v", err)
		return nil, err
	}
	return uc.GetTitle(id)
}

func (uc *catalogUseCase) DeleteTitle(id string) error {
	if _, err := uc.GetTitle(id); err != nil {
		return err
	}
	return uc.titleRepo.Delete(id)
}

// resolveRefs swaps category/genre slugs for the stored records; unknown
// slugs are reported as field-keyed validation errors.
func (uc *catalogUseCase) resolveRefs(title *entity.Title, categorySlug string, genreSlugs []string) error {
	if categorySlug != "" {
		category, err := uc.categoryRepo.GetBySlug(categorySlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ValidationField("category", "unknown category slug")
			}
			return err
		}
		title.Category = category
	}

	if len(genreSlugs) > 0 {
		genres, err := uc.genreRepo.GetBySlugs(genreSlugs)
		if err != nil {
			return err
		}
		if len(genres) != len(genreSlugs) {
			return apperr.ValidationField("genre", "unknown genre slug")
		}
		title.Genres = genres
	}
	return nil
}

func validateNameSlug(name, slug string) error {
	fields := map[string]string{}
	if name == "" {
		fields["name"] = "this field is required"
	} else if len(name) > 256 {
		fields["name"] = "must be at most 256 characters"
	}
	if slug == "" {
		fields["slug"] = "this field is required"
	} else if len(slug) > 50 {
		fields["slug"] = "must be at most 50 characters"
	} else if !slugRe.MatchString(slug) {
		fields["slug"] = "may contain only letters, digits, hyphens and underscores"
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}

func validateYear(year int) error {
	if year > time.Now().Year() {
		return apperr.ValidationField("year", "must not be later than the current year")
	}
	return nil
}
