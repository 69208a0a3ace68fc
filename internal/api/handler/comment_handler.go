package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/galleryblog/blog-api/internal/api/metrics"
	"github.com/galleryblog/blog-api/internal/core/ports"
)

// CommentHandler handles commenting routes under /posts.
type CommentHandler struct {
	commentService ports.CommentService
}

func NewCommentHandler(commentService ports.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Add handles POST /posts/add-comment/:postId. Any authenticated user may
// comment; the post must exist.
//
// @Summary      Add a comment
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        postId  path      string          true  "Post ID"
// @Param        body    body      commentRequest  true  "Comment text"
// @Success      201     {object}  statusResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /posts/add-comment/{postId} [post]
func (h *CommentHandler) Add(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	comment, err := h.commentService.Add(c.Request().Context(), c.Param("postId"), ident.ID, req.Comment)
	if err != nil {
		return err
	}

	metrics.CommentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, statusResponse{Status: true, Message: "comment added", Data: comment})
}

// ListByPost handles GET /posts/get-comment/:postId (public). Comments come
// back newest first with the commenter's name and surname.
//
// @Summary      List comments for a post
// @Tags         posts
// @Produce      json
// @Param        postId  path      string  true  "Post ID"
// @Success      200     {object}  statusResponse
// @Failure      400     {object}  errorResponse
// @Router       /posts/get-comment/{postId} [get]
func (h *CommentHandler) ListByPost(c echo.Context) error {
	comments, err := h.commentService.ListByPost(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse(comments))
}
