package handler

import (
	"errors"
	"net/http"

	"pinboard/internal/form"
	"pinboard/internal/middleware"
	"pinboard/internal/model"
	"pinboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type BoardHandler struct {
	boards repository.BoardRepositoryInterface
	pins   repository.PinRepositoryInterface
	likes  repository.LikeRepositoryInterface
}

func NewBoardHandler(
	boards repository.BoardRepositoryInterface,
	pins repository.PinRepositoryInterface,
	likes repository.LikeRepositoryInterface,
) *BoardHandler {
	return &BoardHandler{
		boards: boards,
		pins:   pins,
		likes:  likes,
	}
}

// List godoc
// @Summary      Public boards
// @Tags         Boards
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /boards/ [get]
func (h *BoardHandler) List(c *gin.Context) {
	boards, err := h.boards.ListPublic(c.Request.Context())
	if err != nil {
		serverError(c, err, "Failed to load boards")
		return
	}
	items, err := boardsWithCounts(c.Request.Context(), h.pins, boards)
	if err != nil {
		serverError(c, err, "Failed to count pins")
		return
	}
	render(c, http.StatusOK, "boards/board_list", gin.H{"boards": items})
}

// Detail godoc
// @Summary      Board detail
// @Description  A private board is only shown to its owner; everyone else is redirected home.
// @Tags         Boards
// @Produce      json
// @Param        slug  path  string  true  "Board slug"
// @Success      200  {object}  map[string]interface{}
// @Success      302
// @Failure      404  {object}  ErrorResponse
// @Router       /board/{slug}/ [get]
func (h *BoardHandler) Detail(c *gin.Context) {
	ctx := c.Request.Context()
	board, err := h.boards.GetBySlug(ctx, c.Param("slug"))
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		serverError(c, err, "Failed to load board")
		return
	}

	user := middleware.CurrentUser(c)
	isOwner := user != nil && board.OwnerID == user.ID
	if board.IsPrivate && !isOwner {
		middleware.AddMessage(c, middleware.LevelError, "You do not have access to this board")
		redirect(c, "/")
		return
	}

	pins, err := h.pins.ListByBoard(ctx, board.ID)
	if err != nil {
		serverError(c, err, "Failed to load pins")
		return
	}
	items, err := annotatePins(ctx, h.likes, pins, user)
	if err != nil {
		serverError(c, err, "Failed to load likes")
		return
	}

	render(c, http.StatusOK, "boards/board_detail", gin.H{
		"board":    boardResponse(*board, int64(len(pins))),
		"pins":     items,
		"is_owner": isOwner,
	})
}

// Create godoc
// @Summary      Create a board
// @Tags         Boards
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        name         formData  string  true   "Name"
// @Param        description  formData  string  false  "Description"
// @Param        is_private   formData  bool    false  "Private"
// @Success      302
// @Failure      400  {object}  map[string]interface{}
// @Router       /board/create/ [post]
func (h *BoardHandler) Create(c *gin.Context) {
	extra := gin.H{"title": "Create Board"}
	if c.Request.Method != http.MethodPost {
		renderBoardForm(c, http.StatusOK, form.BoardForm{}, nil, extra)
		return
	}

	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)

	var f form.BoardForm
	errs := form.Bind(c, &f)
	if errs.Any() {
		renderBoardForm(c, http.StatusBadRequest, f, errs, extra)
		return
	}

	board := &model.Board{ID: uuid.New(), OwnerID: user.ID}
	f.Apply(board)
	board.Slug = model.BoardSlug(board.Name, user.ID)

	exists, err := h.boards.SlugExists(ctx, board.Slug)
	if err != nil {
		serverError(c, err, "Failed to check board name")
		return
	}
	if exists {
		errs.Add("name", "You already have a board with this name.")
		renderBoardForm(c, http.StatusBadRequest, f, errs, extra)
		return
	}

	if err := h.boards.Create(ctx, board); err != nil {
		serverError(c, err, "Failed to create board")
		return
	}

	log.Info().Str("board", board.String()).Str("user", user.Username).Msg("board created")
	middleware.AddMessage(c, middleware.LevelSuccess, "Board created successfully!")
	redirect(c, boardURL(board.Slug))
}

// Edit godoc
// @Summary      Edit a board
// @Description  Only the owner may edit; anyone else gets 404. The slug never changes.
// @Tags         Boards
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        slug  path  string  true  "Board slug"
// @Success      302
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /board/{slug}/edit/ [post]
func (h *BoardHandler) Edit(c *gin.Context) {
	board, ok := h.ownedBoard(c)
	if !ok {
		return
	}

	extra := gin.H{"title": "Edit Board", "board": boardResponse(*board, 0)}
	if c.Request.Method != http.MethodPost {
		renderBoardForm(c, http.StatusOK, form.BoardFormFrom(board), nil, extra)
		return
	}

	var f form.BoardForm
	errs := form.Bind(c, &f)
	if errs.Any() {
		renderBoardForm(c, http.StatusBadRequest, f, errs, extra)
		return
	}

	f.Apply(board)
	if err := h.boards.Update(c.Request.Context(), board); err != nil {
		serverError(c, err, "Failed to update board")
		return
	}

	middleware.AddMessage(c, middleware.LevelSuccess, "Board updated successfully!")
	redirect(c, boardURL(board.Slug))
}

// Delete godoc
// @Summary      Delete a board
// @Description  Pins on the board are kept and lose their board.
// @Tags         Boards
// @Produce      json
// @Param        slug  path  string  true  "Board slug"
// @Success      302
// @Failure      404  {object}  ErrorResponse
// @Router       /board/{slug}/delete/ [post]
func (h *BoardHandler) Delete(c *gin.Context) {
	board, ok := h.ownedBoard(c)
	if !ok {
		return
	}

	if c.Request.Method != http.MethodPost {
		render(c, http.StatusOK, "boards/board_confirm_delete", gin.H{"board": boardResponse(*board, 0)})
		return
	}

	if err := h.boards.Delete(c.Request.Context(), board.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c)
			return
		}
		serverError(c, err, "Failed to delete board")
		return
	}

	user := middleware.CurrentUser(c)
	log.Info().Str("board", board.String()).Str("user", user.Username).Msg("board deleted")
	middleware.AddMessage(c, middleware.LevelSuccess, "Board deleted successfully!")
	redirect(c, profileURL(user.Username))
}

func (h *BoardHandler) ownedBoard(c *gin.Context) (*model.Board, bool) {
	user := middleware.CurrentUser(c)
	board, err := h.boards.GetOwnedBySlug(c.Request.Context(), c.Param("slug"), user.ID)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c)
		return nil, false
	}
	if err != nil {
		serverError(c, err, "Failed to load board")
		return nil, false
	}
	return board, true
}

func renderBoardForm(c *gin.Context, status int, f form.BoardForm, errs form.Errors, extra gin.H) {
	data := gin.H{
		"form": gin.H{
			"name":        f.Name,
			"description": f.Description,
			"is_private":  bool(f.IsPrivate),
			"widgets":     f.Widgets(),
		},
	}
	for k, v := range extra {
		data[k] = v
	}
	if errs.Any() {
		data["errors"] = errs
	}
	render(c, status, "boards/board_form", data)
}
