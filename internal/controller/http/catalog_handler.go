package http

import (
	"net/http"
	"strconv"

	"github.com/therealrustam/yamdb-final/internal/repo/persistent"
	"github.com/therealrustam/yamdb-final/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogUseCase usecase.CatalogUseCase
}

func NewCatalogHandler(catalogUseCase usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{catalogUseCase: catalogUseCase}
}

type NameSlugRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

type TitleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Year        int      `json:"year" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

type PatchTitleRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

// ListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        search query string false "Name filter"
// @Success      200  {object}  map[string]interface{}
// @Router       /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	limit, offset := pagination(c)
	categories, count, err := h.catalogUseCase.ListCategories(c.Query("search"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(count, categories))
}

// CreateCategory godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body NameSlugRequest true "Category data"
// @Success      201  {object}  entity.Category
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req NameSlugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.catalogUseCase.CreateCategory(req.Name, req.Slug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// DeleteCategory godoc
// @Summary      Delete a category; its titles are detached, not removed
// @Tags         categories
// @Security     BearerAuth
// @Param        slug path string true "Category slug"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /categories/{slug} [delete]
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.catalogUseCase.DeleteCategory(c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListGenres godoc
// @Summary      List genres
// @Tags         genres
// @Produce      json
// @Param        search query string false "Name filter"
// @Success      200  {object}  map[string]interface{}
// @Router       /genres [get]
func (h *CatalogHandler) ListGenres(c *gin.Context) {
	limit, offset := pagination(c)
	genres, count, err := h.catalogUseCase.ListGenres(c.Query("search"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(count, genres))
}

// CreateGenre godoc
// @Summary      Create a genre
// @Tags         genres
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body NameSlugRequest true "Genre data"
// @Success      201  {object}  entity.Genre
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /genres [post]
func (h *CatalogHandler) CreateGenre(c *gin.Context) {
	var req NameSlugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.catalogUseCase.CreateGenre(req.Name, req.Slug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, genre)
}

// DeleteGenre godoc
// @Summary      Delete a genre
// @Tags         genres
// @Security     BearerAuth
// @Param        slug path string true "Genre slug"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /genres/{slug} [delete]
func (h *CatalogHandler) DeleteGenre(c *gin.Context) {
	if err := h.catalogUseCase.DeleteGenre(c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTitles godoc
// @Summary      List titles with their mean review rating
// @Tags         titles
// @Produce      json
// @Param        category query string false "Category slug"
// @Param        genre query string false "Genre slug"
// @Param        name query string false "Name substring"
// @Param        year query int false "Exact year"
// @Success      200  {object}  map[string]interface{}
// @Router       /titles [get]
func (h *CatalogHandler) ListTitles(c *gin.Context) {
	filter := persistent.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
	}
	if raw := c.Query("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			filter.Year = &year
		}
	}

	limit, offset := pagination(c)
	titles, count, err := h.catalogUseCase.ListTitles(filter, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(count, titles))
}

// GetTitle godoc
// @Summary      Retrieve a title
// @Tags         titles
// @Produce      json
// @Param        title_id path string true "Title id"
// @Success      200  {object}  entity.Title
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id} [get]
func (h *CatalogHandler) GetTitle(c *gin.Context) {
	title, err := h.catalogUseCase.GetTitle(c.Param("title_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

// CreateTitle godoc
// @Summary      Create a title
// @Tags         titles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body TitleRequest true "Title data"
// @Success      201  {object}  entity.Title
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /titles [post]
func (h *CatalogHandler) CreateTitle(c *gin.Context) {
	var req TitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.catalogUseCase.CreateTitle(usecase.TitleInput{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genre,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, title)
}

// PatchTitle godoc
// @Summary      Update a title
// @Tags         titles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id path string true "Title id"
// @Param        request body PatchTitleRequest true "Fields to update"
// @Success      200  {object}  entity.Title
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id} [patch]
func (h *CatalogHandler) PatchTitle(c *gin.Context) {
	var req PatchTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.catalogUseCase.UpdateTitle(c.Param("title_id"), usecase.TitlePatch{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genre,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

// DeleteTitle godoc
// @Summary      Delete a title and its reviews
// @Tags         titles
// @Security     BearerAuth
// @Param        title_id path string true "Title id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id} [delete]
func (h *CatalogHandler) DeleteTitle(c *gin.Context) {
	if err := h.catalogUseCase.DeleteTitle(c.Param("title_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
