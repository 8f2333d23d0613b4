package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"noticeboard/internal/errors"
	"noticeboard/internal/service"
)

// BoardHandler handles noticeboard endpoints.
type BoardHandler struct {
	boardService service.BoardService
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// CreatePostRequest represents a new post. boardType is the name the web
// client sends; category is accepted as well. Leaving both out picks the
// default category.
type CreatePostRequest struct {
	Title     string  `json:"title" validate:"max=255"`
	Content   string  `json:"content"`
	BoardType *string `json:"boardType"`
	Category  *string `json:"category"`
}

// UpdatePostRequest represents a partial post update. Omitted fields keep
// their current value.
type UpdatePostRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=255"`
	Content *string `json:"content"`
}

// AnswerRequest represents an admin answer.
type AnswerRequest struct {
	Content string `json:"content"`
}

// List godoc
// @Summary List board posts
// @Tags board
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size (1-50)" default(10)
// @Param category query string false "Category filter, 전체 for all"
// @Success 200 {object} ListResponse
// @Router /board [get]
func (h *BoardHandler) List(c echo.Context) error {
	// limit is an older alias of per_page.
	sizeParam := "per_page"
	if c.QueryParam(sizeParam) == "" {
		sizeParam = "limit"
	}
	perPage := queryInt(c, sizeParam, service.DefaultPerPage)

	viewer := CurrentUser(c)
	result, err := h.boardService.List(c.Request().Context(), service.ListQuery{
		Page:     queryInt(c, "page", 1),
		PerPage:  perPage,
		Category: c.QueryParam("category"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toListResponse(result, viewer))
}

// Notices godoc
// @Summary Latest notices
// @Tags board
// @Produce json
// @Success 200 {object} NoticesResponse
// @Router /board/notices [get]
func (h *BoardHandler) Notices(c echo.Context) error {
	posts, err := h.boardService.Notices(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toNoticesResponse(posts))
}

// Get godoc
// @Summary Get a post
// @Tags board
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} DetailResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /board/{id} [get]
func (h *BoardHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return respondError(c, errors.ErrPostNotFound)
	}

	viewer := CurrentUser(c)
	post, err := h.boardService.Get(c.Request().Context(), viewer, id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, DetailResponse{Item: toDetailItem(post, viewer)})
}

// Create godoc
// @Summary Create a post
// @Tags board
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /board [post]
func (h *BoardHandler) Create(c echo.Context) error {
	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Msg:  "잘못된 요청입니다.",
			Code: "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Msg:  err.Error(),
			Code: "VALIDATION_ERROR",
		})
	}

	category := req.BoardType
	if category == nil {
		category = req.Category
	}

	post, err := h.boardService.Create(c.Request().Context(), CurrentUser(c), service.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: category,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, MessageResponse{
		Msg: "게시글이 등록되었습니다.",
		ID:  post.ID,
	})
}

// Update godoc
// @Summary Update a post
// @Tags board
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body UpdatePostRequest true "Fields to change"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /board/{id} [put]
func (h *BoardHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return respondError(c, errors.ErrPostNotFound)
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Msg:  "잘못된 요청입니다.",
			Code: "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Msg:  err.Error(),
			Code: "VALIDATION_ERROR",
		})
	}

	_, err := h.boardService.Update(c.Request().Context(), CurrentUser(c), id, service.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Msg: "게시글이 수정되었습니다."})
}

// Delete godoc
// @Summary Delete a post
// @Tags board
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /board/{id} [delete]
func (h *BoardHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return respondError(c, errors.ErrPostNotFound)
	}

	if err := h.boardService.Delete(c.Request().Context(), CurrentUser(c), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Msg: "게시글이 삭제되었습니다.", OK: true})
}

// AddAnswer godoc
// @Summary Answer a post (admin only)
// @Tags board
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body AnswerRequest true "Answer"
// @Success 201 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /board/{id}/answer [post]
func (h *BoardHandler) AddAnswer(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return respondError(c, errors.ErrPostNotFound)
	}

	var req AnswerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Msg:  "잘못된 요청입니다.",
			Code: "INVALID_REQUEST",
		})
	}

	if _, err := h.boardService.AddAnswer(c.Request().Context(), CurrentUser(c), id, req.Content); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Msg: "답변이 등록되었습니다."})
}

// respondError maps a service error to an HTTP error, logging unexpected ones.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
