package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/galleryblog/blog-api/internal/api/metrics"
	"github.com/galleryblog/blog-api/internal/core/domain"
	"github.com/galleryblog/blog-api/internal/core/ports"
)

// PostHandler handles post CRUD and like toggling.
type PostHandler struct {
	postService ports.PostService
}

func NewPostHandler(postService ports.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create handles POST /posts/create-post (admin only, multipart with a
// required "image" file part).
//
// @Summary      Create a post
// @Tags         posts
// @Accept       mpfd
// @Produce      json
// @Param        title        formData  string  true  "Title"
// @Param        subtitle     formData  string  true  "Subtitle"
// @Param        description  formData  string  true  "Description"
// @Param        content      formData  string  true  "Content"
// @Param        year         formData  string  true  "Year"
// @Param        image        formData  file    true  "Post image (jpeg/jpg/png/webp/avif, max 5MB)"
// @Success      201  {object}  statusResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      413  {object}  errorResponse
// @Failure      415  {object}  errorResponse
// @Router       /posts/create-post [post]
func (h *PostHandler) Create(c echo.Context) error {
	req, image, cleanup, err := bindPostForm(c)
	if err != nil {
		return err
	}
	defer cleanup()

	post, err := h.postService.Create(c.Request().Context(), toPostInput(req), image)
	if err != nil {
		countUploadRejection(err)
		return err
	}

	metrics.PostsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, okResponse(post))
}

// Update handles PUT /posts/update-post/:id (admin only). Like the create
// form, every text field and a fresh image are required.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       mpfd
// @Produce      json
// @Param        id           path      string  true  "Post ID"
// @Param        title        formData  string  true  "Title"
// @Param        subtitle     formData  string  true  "Subtitle"
// @Param        description  formData  string  true  "Description"
// @Param        content      formData  string  true  "Content"
// @Param        year         formData  string  true  "Year"
// @Param        image        formData  file    true  "Post image"
// @Success      200  {object}  statusResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/update-post/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	req, image, cleanup, err := bindPostForm(c)
	if err != nil {
		return err
	}
	defer cleanup()

	post, err := h.postService.Update(c.Request().Context(), c.Param("id"), toPostInput(req), image)
	if err != nil {
		countUploadRejection(err)
		return err
	}

	return c.JSON(http.StatusOK, okResponse(post))
}

// Delete handles DELETE /posts/delete-post/:id (admin only).
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  statusResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/delete-post/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.postService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okMessage("post deleted"))
}

// Get handles GET /posts/get-post/:id (public).
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  statusResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/get-post/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.postService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse(post))
}

// List handles GET /posts/get-posts (public).
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /posts/get-posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse(posts))
}

// ToggleLike handles POST /posts/toggle-like/:postId. Toggling twice by the
// same user restores the original like set.
//
// @Summary      Toggle like on a post
// @Tags         posts
// @Produce      json
// @Param        postId  path      string  true  "Post ID"
// @Success      200     {object}  statusResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /posts/toggle-like/{postId} [post]
func (h *PostHandler) ToggleLike(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.postService.ToggleLike(c.Request().Context(), c.Param("postId"), ident.ID)
	if err != nil {
		return err
	}

	action := "unliked"
	message := "like removed"
	if result.Liked {
		action = "liked"
		message = "like added"
	}
	metrics.LikesToggledTotal.WithLabelValues(action).Inc()

	return c.JSON(http.StatusOK, statusResponse{Status: true, Message: message, Data: result})
}

// bindPostForm parses the multipart post form. The returned cleanup closes
// the uploaded file and must be deferred by the caller; it is a no-op when
// no file was attached (image is nil and the service rejects the request).
func bindPostForm(c echo.Context) (postFormRequest, *ports.ImageUpload, func(), error) {
	noop := func() {}

	var req postFormRequest
	if err := c.Bind(&req); err != nil {
		return req, nil, noop, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, nil, noop, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return req, nil, noop, nil
	}

	src, err := fh.Open()
	if err != nil {
		return req, nil, noop, err
	}

	upload := &ports.ImageUpload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Reader:   src,
	}
	return req, upload, func() { _ = src.Close() }, nil
}

func toPostInput(req postFormRequest) ports.PostInput {
	return ports.PostInput{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Content:     req.Content,
		Year:        req.Year,
	}
}

func countUploadRejection(err error) {
	switch {
	case errors.Is(err, domain.ErrImageRequired):
		metrics.UploadsRejectedTotal.WithLabelValues("missing").Inc()
	case errors.Is(err, domain.ErrImageType):
		metrics.UploadsRejectedTotal.WithLabelValues("type").Inc()
	case errors.Is(err, domain.ErrImageTooLarge):
		metrics.UploadsRejectedTotal.WithLabelValues("size").Inc()
	}
}
