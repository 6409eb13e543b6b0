package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "clubhub/internal/errors"
	"clubhub/internal/models"
	"clubhub/internal/pagination"
	"clubhub/internal/services"
	"clubhub/internal/slug"
)

// PostHandler handles post-related requests
type PostHandler struct {
	postService  services.PostServicer
	auditService services.AuditServicer
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService services.PostServicer, auditService services.AuditServicer) *PostHandler {
	return &PostHandler{postService: postService, auditService: auditService}
}

// CreatePostRequest represents the request payload for creating a post
type CreatePostRequest struct {
	Title      string   `json:"title" binding:"required,min=2,max=200"`
	Excerpt    string   `json:"excerpt" binding:"max=500"`
	Body       string   `json:"body"`
	Status     string   `json:"status" binding:"omitempty,post_status"`
	CategoryID *string  `json:"category_id" binding:"omitempty,uuid"`
	TagIDs     []string `json:"tag_ids" binding:"omitempty,dive,uuid"`
}

// UpdatePostRequest represents the request payload for updating a post.
// category_id semantics: absent leaves the category unchanged, "" clears it.
type UpdatePostRequest struct {
	Title      *string  `json:"title" binding:"omitempty,min=2,max=200"`
	Excerpt    *string  `json:"excerpt" binding:"omitempty,max=500"`
	Body       *string  `json:"body"`
	Status     *string  `json:"status" binding:"omitempty,post_status"`
	CategoryID *string  `json:"category_id"`
	TagIDs     []string `json:"tag_ids" binding:"omitempty,dive,uuid"`
}

// PostResponse represents a post in the response
type PostResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Slug       string  `json:"slug"`
	Excerpt    string  `json:"excerpt"`
	Status     string  `json:"status"`
	CategoryID *string `json:"category_id,omitempty"`
	AuthorID   string  `json:"author_id"`
}

// CreatePost handles the creation of a new post
// @Summary     Create a post
// @Description Create a new post authored by the authenticated user
// @Tags        posts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePostRequest true "Post details"
// @Success     201 {object} PostResponse "Post created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category or tag not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	post, err := h.postService.CreatePost(userID, services.CreatePostInput{
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Body:       req.Body,
		Status:     models.PostStatus(req.Status),
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_POST", "post", post.ID, c.ClientIP(),
		map[string]interface{}{"title": post.Title, "status": string(post.Status)})

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// ListPosts handles the paginated retrieval of posts
// @Summary     List posts
// @Description Get a paginated list of posts with optional status, category, and tag filters
// @Tags        posts
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       status query string false "Filter by status (draft/published)"
// @Param       category_id query string false "Filter by category"
// @Param       tag_id query string false "Filter by tag"
// @Success     200 {array} PostResponse "List of posts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.PostFilter
	if status := c.Query("status"); status != "" {
		s := models.PostStatus(status)
		filter.Status = &s
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		filter.CategoryID = &categoryID
	}
	if tagID := c.Query("tag_id"); tagID != "" {
		filter.TagID = &tagID
	}

	result, err := h.postService.ListPosts(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": result})
}

// GetPostByID handles the retrieval of a specific post
// @Summary     Get post by ID
// @Description Get a specific post by ID
// @Tags        posts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Post ID"
// @Success     200 {object} PostResponse "Post details"
// @Failure     400 {object} ErrorResponse "Invalid post ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Post not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /posts/{id} [get]
func (h *PostHandler) GetPostByID(c *gin.Context) {
	postID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	post, err := h.postService.GetPostByID(postID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// GetPostBySlug handles the public lookup of a post by slug
// @Summary     Get post by slug
// @Description Look up a post by its slug
// @Tags        posts
// @Produce     json
// @Param       slug path string true "Post slug"
// @Success     200 {object} PostResponse "Post details"
// @Failure     404 {object} ErrorResponse "Post not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /posts/slug/{slug} [get]
func (h *PostHandler) GetPostBySlug(c *gin.Context) {
	s := c.Param("slug")
	if !slug.IsValidSegment(s) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid slug"))
		return
	}

	post, err := h.postService.GetPostBySlug(s)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// UpdatePost handles updating a post
// @Summary     Update post
// @Description Update an existing post; a title change re-derives the slug
// @Tags        posts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Post ID"
// @Param       request body UpdatePostRequest true "Updated post details"
// @Success     200 {object} PostResponse "Updated post"
// @Failure     400 {object} ErrorResponse "Invalid input or post ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Post, category, or tag not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	postID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	in := services.UpdatePostInput{
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Body:       req.Body,
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
	}
	if req.Status != nil {
		s := models.PostStatus(*req.Status)
		in.Status = &s
	}

	post, err := h.postService.UpdatePost(postID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_POST", "post", post.ID, c.ClientIP(),
		map[string]interface{}{"title": post.Title, "status": string(post.Status)})

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeletePost handles deleting a post
// @Summary     Delete post
// @Description Delete a post by ID
// @Tags        posts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Post ID"
// @Success     200 {object} MessageResponse "Post deleted"
// @Failure     400 {object} ErrorResponse "Invalid post ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Post not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	postID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.postService.DeletePost(postID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_POST", "post", postID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
