package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/models"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/repositories"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/storage"
	"gorm.io/gorm"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	store          storage.Store
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, store storage.Store) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		store:          store,
	}
}

// RegisterPostRoutes registers post-related routes. Reads are public;
// mutations require the auth middleware.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, authRequired echo.MiddlewareFunc) {
	g.GET("", h.GetPosts)
	g.GET("/users-posts", h.GetUserPosts)
	g.GET("/:id", h.GetPost)
	g.POST("", h.CreatePost, authRequired)
	g.PUT("/:id", h.UpdatePost, authRequired)
	g.DELETE("/:id", h.DeletePost, authRequired)
}

// canMutate reports whether the acting user owns the post. Mutations are
// permitted to the owner only; reads are public and never gated here.
func canMutate(post *models.Post, user *models.User) bool {
	return post.UserID == user.ID
}

// CreatePost creates a new post owned by the authenticated user, storing
// the attached image first so the record never references a missing file.
func (h *PostHandler) CreatePost(c echo.Context) error {
	user := c.Get("user").(*models.User)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	imageURL, err := h.storeUpload(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{
			"msg":     "Unable to create the post.",
			"success": false,
		})
	}

	post := &models.Post{
		Title:    req.Title,
		Body:     req.Body,
		ImageURL: imageURL,
		UserID:   user.ID,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{
			"msg":     "Unable to create the post.",
			"success": false,
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"msg":     "Post created successfully",
		"success": true,
		"post":    post,
	})
}

// UpdatePost edits a post's title, body and optionally its image. Only the
// owner may edit; a replaced image's old file is removed best-effort.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	user := c.Get("user").(*models.User)
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return postNotFound(c)
		}
		return updateFailed(c, "edit")
	}

	if !canMutate(post, user) {
		return unauthorized(c)
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post.Title = req.Title
	post.Body = req.Body

	imageURL, err := h.storeUpload(c)
	if err != nil {
		return updateFailed(c, "edit")
	}
	if imageURL != "" {
		// Best-effort removal of the replaced file; a failed delete never
		// blocks the record update.
		if post.ImageURL != "" {
			if err := h.store.Delete(c.Request().Context(), post.ImageURL); err != nil {
				c.Logger().Warnf("failed to delete old image %s: %v", post.ImageURL, err)
			}
		}
		post.ImageURL = imageURL
	}

	if err := h.postRepository.UpdatePost(c.Request().Context(), postID, post); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return postNotFound(c)
		}
		return updateFailed(c, "edit")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"msg":     "Post edited successfully.",
		"success": true,
		"post":    post,
	})
}

// DeletePost deletes a post and, best-effort, its attached image. Only the
// owner may delete.
func (h *PostHandler) DeletePost(c echo.Context) error {
	user := c.Get("user").(*models.User)
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return postNotFound(c)
		}
		return updateFailed(c, "delete")
	}

	if !canMutate(post, user) {
		return unauthorized(c)
	}

	if post.ImageURL != "" {
		if err := h.store.Delete(c.Request().Context(), post.ImageURL); err != nil {
			c.Logger().Warnf("failed to delete image %s: %v", post.ImageURL, err)
		}
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return postNotFound(c)
		}
		return updateFailed(c, "delete")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"msg":     "Post deleted successfully.",
		"success": true,
		"post":    post,
	})
}

// GetPost retrieves a single post by ID. Reads are public.
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "Post not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch post")
	}
	return c.JSON(http.StatusOK, post)
}

// GetPosts lists all posts newest first, one fixed-size page at a time.
func (h *PostHandler) GetPosts(c echo.Context) error {
	page := parsePage(c.QueryParam("page"))

	posts, total, err := h.postRepository.Paginate(c.Request().Context(), nil, page)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch posts")
	}

	result, err := h.buildPage(posts, total, page)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch posts")
	}
	return c.JSON(http.StatusOK, result)
}

// GetUserPosts lists one user's posts by username. The username is resolved
// first so an unknown user yields 404 rather than an empty page.
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	username := c.QueryParam("username")
	page := parsePage(c.QueryParam("page"))

	user, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "User not found."})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch posts")
	}

	posts, total, err := h.postRepository.Paginate(c.Request().Context(), &user.ID, page)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch posts")
	}

	result, err := h.buildPage(posts, total, page)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch posts")
	}
	return c.JSON(http.StatusOK, result)
}

// storeUpload saves the optional "postImage" file part and returns its
// relative URL, or "" when the request carries no file.
func (h *PostHandler) storeUpload(c echo.Context) (string, error) {
	file, err := c.FormFile("postImage")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}

	// Detect the real MIME type from content, not from the client header.
	sniff, err := file.Open()
	if err != nil {
		return "", err
	}
	mt, err := mimetype.DetectReader(sniff)
	sniff.Close()
	if err != nil {
		return "", err
	}
	contentType := strings.Split(mt.String(), ";")[0]

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	return h.store.Save(c.Request().Context(), src, file.Size, storage.FileName(file.Filename), contentType)
}

// buildPage expands owner references to public projections and wraps the
// posts in paging metadata.
func (h *PostHandler) buildPage(posts []models.Post, total, page int64) (models.Page, error) {
	seen := make(map[uint]bool)
	var ids []uint
	for i := range posts {
		if !seen[posts[i].UserID] {
			seen[posts[i].UserID] = true
			ids = append(ids, posts[i].UserID)
		}
	}

	users, err := h.userRepository.GetUsersByIDs(ids)
	if err != nil {
		return models.Page{}, err
	}
	byID := make(map[uint]models.PublicUser, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].Public()
	}

	expanded := make([]models.PostWithUser, 0, len(posts))
	for i := range posts {
		expanded = append(expanded, models.PostWithUser{
			Post: posts[i],
			User: byID[posts[i].UserID],
		})
	}

	return models.NewPage(expanded, total, page, models.DefaultPageSize), nil
}

func parsePage(raw string) int64 {
	page, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func postNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{
		"msg":     "Post not found.",
		"success": false,
	})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"msg":     "Unauthorized",
		"success": false,
	})
}

func updateFailed(c echo.Context, action string) error {
	return c.JSON(http.StatusForbidden, echo.Map{
		"msg":     "Unable to " + action + " the post. Please try again.",
		"success": false,
	})
}
