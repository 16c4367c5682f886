package persistent

import (
	"github.com/therealrustam/yamdb-final/internal/entity"
	"github.com/therealrustam/yamdb-final/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository interface {
	Create(category *entity.Category) error
	GetBySlug(slug string) (*entity.Category, error)
	List(search string, limit, offset int) ([]*entity.Category, int64, error)
	Delete(id string) error
}

type GenreRepository interface {
	Create(genre *entity.Genre) error
	GetBySlug(slug string) (*entity.Genre, error)
	GetBySlugs(slugs []string) ([]entity.Genre, error)
	List(search string, limit, offset int) ([]*entity.Genre, int64, error)
	Delete(id string) error
}

// TitleFilter narrows title listings; zero values mean "no filter".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

type TitleRepository interface {
	Create(title *entity.Title) error
	GetByID(id string) (*entity.Title, error)
	List(filter TitleFilter, limit, offset int) ([]*entity.Title, int64, error)
	Update(title *entity.Title) error
	Delete(id string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *entity.Category) error {
	categoryModel := ToCategoryModel(category)
	if err := r.db.Create(categoryModel).Error; err != nil {
		return err
	}
	*category = *ToCategoryEntity(categoryModel)
	return nil
}

func (r *categoryRepository) GetBySlug(slug string) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	if err := r.db.Where("slug = ?", slug).First(&categoryModel).Error; err != nil {
		return nil, err
	}
	return ToCategoryEntity(&categoryModel), nil
}

func (r *categoryRepository) List(search string, limit, offset int) ([]*entity.Category, int64, error) {
	query := r.db.Model(&model.CategoryModel{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var categoryModels []model.CategoryModel
	if err := query.Order("slug").Limit(limit).Offset(offset).Find(&categoryModels).Error; err != nil {
		return nil, 0, err
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = ToCategoryEntity(&categoryModels[i])
	}
	return categories, count, nil
}

func (r *categoryRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.CategoryModel{}).Error
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(genre *entity.Genre) error {
	genreModel := ToGenreModel(genre)
	if err := r.db.Create(genreModel).Error; err != nil {
		return err
	}
	*genre = *ToGenreEntity(genreModel)
	return nil
}

func (r *genreRepository) GetBySlug(slug string) (*entity.Genre, error) {
	var genreModel model.GenreModel
	if err := r.db.Where("slug = ?", slug).First(&genreModel).Error; err != nil {
		return nil, err
	}
	return ToGenreEntity(&genreModel), nil
}

func (r *genreRepository) GetBySlugs(slugs []string) ([]entity.Genre, error) {
	var genreModels []model.GenreModel
	if err := r.db.Where("slug IN ?", slugs).Find(&genreModels).Error; err != nil {
		return nil, err
	}

	genres := make([]entity.Genre, len(genreModels))
	for i := range genreModels {
		genres[i] = *ToGenreEntity(&genreModels[i])
	}
	return genres, nil
}

func (r *genreRepository) List(search string, limit, offset int) ([]*entity.Genre, int64, error) {
	query := r.db.Model(&model.GenreModel{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var genreModels []model.GenreModel
	if err := query.Order("slug").Limit(limit).Offset(offset).Find(&genreModels).Error; err != nil {
		return nil, 0, err
	}

	genres := make([]*entity.Genre, len(genreModels))
	for i := range genreModels {
		genres[i] = ToGenreEntity(&genreModels[i])
	}
	return genres, count, nil
}

func (r *genreRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.GenreModel{}).Error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(title *entity.Title) error {
	titleModel := ToTitleModel(title)
	genres := titleModel.Genres
	titleModel.Genres = nil

	if err := r.db.Omit(clause.Associations).Create(titleModel).Error; err != nil {
		return err
	}
	if len(genres) > 0 {
		if err := r.db.Model(titleModel).Association("Genres").Replace(genres); err != nil {
			return err
		}
	}

	title.ID = titleModel.ID
	return nil
}

func (r *titleRepository) GetByID(id string) (*entity.Title, error) {
	var titleModel model.TitleModel
	err := r.db.Preload("Category").Preload("Genres").Where("id = ?", id).First(&titleModel).Error
	if err != nil {
		return nil, err
	}

	title := ToTitleEntity(&titleModel)
	ratings, err := r.ratings([]string{title.ID})
	if err != nil {
		return nil, err
	}
	if rating, ok := ratings[title.ID]; ok {
		title.Rating = &rating
	}
	return title, nil
}

func (r *titleRepository) List(filter TitleFilter, limit, offset int) ([]*entity.Title, int64, error) {
	query := r.db.Model(&model.TitleModel{})

	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		query = query.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}
	if filter.Name != "" {
		query = query.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		query = query.Where("titles.year = ?", *filter.Year)
	}

	var count int64
	if err := query.Distinct("titles.id").Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var titleModels []model.TitleModel
	err := query.Distinct("titles.*").
		Preload("Category").Preload("Genres").
		Order("titles.name").Limit(limit).Offset(offset).
		Find(&titleModels).Error
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, len(titleModels))
	for i := range titleModels {
		ids[i] = titleModels[i].ID
	}
	ratings, err := r.ratings(ids)
	if err != nil {
		return nil, 0, err
	}

	titles := make([]*entity.Title, len(titleModels))
	for i := range titleModels {
		titles[i] = ToTitleEntity(&titleModels[i])
		if rating, ok := ratings[titles[i].ID]; ok {
			value := rating
			titles[i].Rating = &value
		}
	}
	return titles, count, nil
}

func (r *titleRepository) Update(title *entity.Title) error {
	titleModel := ToTitleModel(title)
	genres := titleModel.Genres
	titleModel.Genres = nil

	updates := map[string]interface{}{
		"name":        titleModel.Name,
		"year":        titleModel.Year,
		"description": titleModel.Description,
		"category_id": titleModel.CategoryID,
	}
	if err := r.db.Model(&model.TitleModel{ID: titleModel.ID}).Updates(updates).Error; err != nil {
		return err
	}
	return r.db.Model(titleModel).Association("Genres").Replace(genres)
}

func (r *titleRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.TitleModel{}).Error
}

// ratings returns the mean review score per title; titles without
// reviews are simply absent from the map.
func (r *titleRepository) ratings(titleIDs []string) (map[string]float64, error) {
	if len(titleIDs) == 0 {
		return map[string]float64{}, nil
	}

	var rows []struct {
		TitleID string
		Rating  float64
	}
	err := r.db.Model(&model.ReviewModel{}).
		Select("title_id, AVG(score) AS rating").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ratings := make(map[string]float64, len(rows))
	for _, row := range rows {
		ratings[row.TitleID] = row.Rating
	}
	return ratings, nil
}
