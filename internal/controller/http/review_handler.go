package http

import (
	"net/http"

	"github.com/therealrustam/yamdb-final/internal/usecase"
	"github.com/therealrustam/yamdb-final/pkg/middleware"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewUseCase usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUseCase: reviewUseCase}
}

type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required"`
}

type PatchReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ListReviews godoc
// @Summary      List reviews of a title, oldest first
// @Tags         reviews
// @Produce      json
// @Param        title_id path string true "Title id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	limit, offset := pagination(c)
	reviews, count, err := h.reviewUseCase.ListReviews(c.Param("title_id"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(count, reviews))
}

// GetReview godoc
// @Summary      Retrieve a review
// @Tags         reviews
// @Produce      json
// @Param        title_id path string true "Title id"
// @Param        review_id path string true "Review id"
// @Success      200  {object}  entity.Review
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	review, err := h.reviewUseCase.GetReview(c.Param("title_id"), c.Param("review_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// CreateReview godoc
// @Summary      Review a title (one review per author per title)
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id path string true "Title id"
// @Param        request body CreateReviewRequest true "Review data"
// @Success      201  {object}  entity.Review
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewUseCase.CreateReview(
		middleware.CurrentUser(c), c.Param("title_id"), req.Text, req.Score)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// PatchReview godoc
// @Summary      Update a review (author, moderator or admin)
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id path string true "Title id"
// @Param        review_id path string true "Review id"
// @Param        request body PatchReviewRequest true "Fields to update"
// @Success      200  {object}  entity.Review
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id} [patch]
func (h *ReviewHandler) PatchReview(c *gin.Context) {
	var req PatchReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewUseCase.UpdateReview(
		middleware.CurrentUser(c), c.Param("title_id"), c.Param("review_id"), req.Text, req.Score)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// DeleteReview godoc
// @Summary      Delete a review and its comments
// @Tags         reviews
// @Security     BearerAuth
// @Param        title_id path string true "Title id"
// @Param        review_id path string true "Review id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	err := h.reviewUseCase.DeleteReview(
		middleware.CurrentUser(c), c.Param("title_id"), c.Param("review_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListComments godoc
// @Summary      List comments of a review, oldest first
// @Tags         comments
// @Produce      json
// @Param        title_id path string true "Title id"
// @Param        review_id path string true "Review id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id}/comments [get]
func (h *ReviewHandler) ListComments(c *gin.Context) {
	limit, offset := pagination(c)
	comments, count, err := h.reviewUseCase.ListComments(
		c.Param("title_id"), c.Param("review_id"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(count, comments))
}

// GetComment godoc
// @Summary      Retrieve a comment
// @Tags         comments
// @Produce      json
// @Param        title_id path string true "Title id"
// @Param        review_id path string true "Review id"
// @Param        comment_id path string true "Comment id"
// @Success      200  {object}  entity.Comment
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [get]
func (h *ReviewHandler) GetComment(c *gin.Context) {
	comment, err := h.reviewUseCase.GetComment(
		c.Param("title_id"), c.Param("review_id"), c.Param("comment_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// CreateComment godoc
// @Summary      Comment on a review
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id path string true "Title id"
// @Param        review_id path string true "Review id"
// @Param        request body CommentRequest true "Comment data"
// @Success      201  {object}  entity.Comment
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id}/comments [post]
func (h *ReviewHandler) CreateComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.reviewUseCase.CreateComment(
		middleware.CurrentUser(c), c.Param("title_id"), c.Param("review_id"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// PatchComment godoc
// @Summary      Update a comment (author, moderator or admin)
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id path string true "Title id"
// @Param        review_id path string true "Review id"
// @Param        comment_id path string true "Comment id"
// @Param        request body CommentRequest true "Fields to update"
// @Success      200  {object}  entity.Comment
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [patch]
func (h *ReviewHandler) PatchComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.reviewUseCase.UpdateComment(
		middleware.CurrentUser(c), c.Param("title_id"), c.Param("review_id"),
		c.Param("comment_id"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Param        title_id path string true "Title id"
// @Param        review_id path string true "Review id"
// @Param        comment_id path string true "Comment id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [delete]
func (h *ReviewHandler) DeleteComment(c *gin.Context) {
	err := h.reviewUseCase.DeleteComment(
		middleware.CurrentUser(c), c.Param("title_id"), c.Param("review_id"), c.Param("comment_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
