package handler

import (
	"errors"
	"net/http"

	"pinboard/internal/form"
	"pinboard/internal/middleware"
	"pinboard/internal/model"
	"pinboard/internal/repository"
	"pinboard/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type PinHandler struct {
	pins      repository.PinRepositoryInterface
	boards    repository.BoardRepositoryInterface
	comments  repository.CommentRepositoryInterface
	likes     repository.LikeRepositoryInterface
	images    storage.ImageStore
	discarder storage.Discarder
}

func NewPinHandler(
	pins repository.PinRepositoryInterface,
	boards repository.BoardRepositoryInterface,
	comments repository.CommentRepositoryInterface,
	likes repository.LikeRepositoryInterface,
	images storage.ImageStore,
	discarder storage.Discarder,
) *PinHandler {
	return &PinHandler{
		pins:      pins,
		boards:    boards,
		comments:  comments,
		likes:     likes,
		images:    images,
		discarder: discarder,
	}
}

// Feed godoc
// @Summary      Pin feed
// @Description  All pins newest first, optionally filtered by a case-insensitive search on title, description and tags
// @Tags         Pins
// @Produce      json
// @Param        query  query  string  false  "Search text"
// @Success      200  {object}  map[string]interface{}
// @Router       / [get]
func (h *PinHandler) Feed(c *gin.Context) {
	var search form.SearchForm
	_ = c.ShouldBindQuery(&search)

	pins, err := h.pins.Search(c.Request.Context(), search.Query)
	if err != nil {
		serverError(c, err, "Failed to load pins")
		return
	}
	items, err := annotatePins(c.Request.Context(), h.likes, pins, middleware.CurrentUser(c))
	if err != nil {
		serverError(c, err, "Failed to load likes")
		return
	}

	render(c, http.StatusOK, "pins/home", gin.H{
		"pins":        items,
		"search_form": gin.H{"query": search.Query, "widgets": search.Widgets()},
		"query":       search.Query,
	})
}

// Detail godoc
// @Summary      Pin detail
// @Description  Pin with its comments. POST adds a comment for the authenticated user.
// @Tags         Pins
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id    path      string  true   "Pin ID"
// @Param        text  formData  string  false  "Comment text"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /pin/{id}/ [get]
// @Router       /pin/{id}/ [post]
func (h *PinHandler) Detail(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c, "id")
	if !ok {
		notFound(c)
		return
	}
	pin, err := h.pins.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		serverError(c, err, "Failed to load pin")
		return
	}

	user := middleware.CurrentUser(c)
	commentForm := form.CommentForm{}
	status := http.StatusOK
	var errs form.Errors

	if c.Request.Method == http.MethodPost && user != nil {
		errs = form.Bind(c, &commentForm)
		if !errs.Any() {
			comment := &model.Comment{
				ID:       uuid.New(),
				PinID:    pin.ID,
				AuthorID: user.ID,
				Text:     commentForm.Text,
			}
			if err := h.comments.Create(ctx, comment); err != nil {
				serverError(c, err, "Failed to add comment")
				return
			}
			log.Info().Str("pin", pin.String()).Str("user", user.Username).Msg("comment added")
			middleware.AddMessage(c, middleware.LevelSuccess, "Comment added")
			redirect(c, pinURL(pin.ID))
			return
		}
		status = http.StatusBadRequest
	}

	comments, err := h.comments.ListByPin(ctx, pin.ID)
	if err != nil {
		serverError(c, err, "Failed to load comments")
		return
	}
	annotated, err := annotatePins(ctx, h.likes, []model.Pin{*pin}, user)
	if err != nil {
		serverError(c, err, "Failed to load likes")
		return
	}

	items := make([]CommentResponse, len(comments))
	for i, cm := range comments {
		items[i] = commentResponse(cm)
	}

	data := gin.H{
		"pin":      annotated[0],
		"comments": items,
		"comment_form": gin.H{
			"text":    commentForm.Text,
			"widgets": commentForm.Widgets(),
		},
		"is_owner": user != nil && pin.IsOwnedBy(user.ID),
	}
	if errs.Any() {
		data["errors"] = errs
	}
	render(c, status, "pins/pin_detail", data)
}

// Create godoc
// @Summary      Create a pin
// @Tags         Pins
// @Accept       multipart/form-data
// @Produce      json
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  false  "Description"
// @Param        image        formData  file    true   "Image"
// @Param        source_url   formData  string  false  "Source URL"
// @Param        board        formData  string  false  "Board ID"
// @Param        tags         formData  string  false  "Comma separated tags"
// @Success      302
// @Failure      400  {object}  map[string]interface{}
// @Router       /pin/create/ [post]
func (h *PinHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)

	choices, err := h.boards.ListByOwner(ctx, user.ID, true)
	if err != nil {
		serverError(c, err, "Failed to load boards")
		return
	}

	if c.Request.Method != http.MethodPost {
		h.renderForm(c, http.StatusOK, "pins/pin_form", form.PinForm{}, choices, nil, gin.H{"title": "Create Pin"})
		return
	}

	var f form.PinForm
	errs := form.Bind(c, &f)
	if fh, err := c.FormFile("image"); err == nil {
		f.Image = fh
	}
	boardID := f.Clean(choices, true, errs)
	if errs.Any() {
		h.renderForm(c, http.StatusBadRequest, "pins/pin_form", f, choices, errs, gin.H{"title": "Create Pin"})
		return
	}

	path, err := h.images.Save(ctx, f.Image)
	if err != nil {
		serverError(c, err, "Failed to store image")
		return
	}

	pin := &model.Pin{
		ID:          uuid.New(),
		Title:       f.Title,
		Description: f.Description,
		Image:       path,
		SourceURL:   f.SourceURL,
		OwnerID:     user.ID,
		BoardID:     boardID,
		Tags:        f.Tags,
	}
	if err := h.pins.Create(ctx, pin); err != nil {
		h.discard(c, path)
		serverError(c, err, "Failed to create pin")
		return
	}

	log.Info().Str("pin", pin.String()).Str("user", user.Username).Msg("pin created")
	middleware.AddMessage(c, middleware.LevelSuccess, "Pin created successfully!")
	redirect(c, pinURL(pin.ID))
}

// Edit godoc
// @Summary      Edit a pin
// @Description  Only the owner may edit; anyone else gets 404. A new image replaces the stored one.
// @Tags         Pins
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path  string  true  "Pin ID"
// @Success      302
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /pin/{id}/edit/ [post]
func (h *PinHandler) Edit(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)

	pin, ok := h.ownedPin(c, user)
	if !ok {
		return
	}
	choices, err := h.boards.ListByOwner(ctx, user.ID, true)
	if err != nil {
		serverError(c, err, "Failed to load boards")
		return
	}

	extra := gin.H{"title": "Edit Pin", "pin": pinResponse(*pin)}
	if c.Request.Method != http.MethodPost {
		h.renderForm(c, http.StatusOK, "pins/pin_form", form.PinFormFrom(pin), choices, nil, extra)
		return
	}

	var f form.PinForm
	errs := form.Bind(c, &f)
	if fh, err := c.FormFile("image"); err == nil {
		f.Image = fh
	}
	boardID := f.Clean(choices, pin.Image == "", errs)
	if errs.Any() {
		h.renderForm(c, http.StatusBadRequest, "pins/pin_form", f, choices, errs, extra)
		return
	}

	oldImage, newImage := "", ""
	if f.Image != nil {
		path, err := h.images.Save(ctx, f.Image)
		if err != nil {
			serverError(c, err, "Failed to store image")
			return
		}
		newImage = path
		oldImage, pin.Image = pin.Image, path
	}

	pin.Title = f.Title
	pin.Description = f.Description
	pin.SourceURL = f.SourceURL
	pin.BoardID = boardID
	pin.Tags = f.Tags

	if err := h.pins.Update(ctx, pin); err != nil {
		h.discard(c, newImage)
		serverError(c, err, "Failed to update pin")
		return
	}
	if oldImage != "" {
		h.discard(c, oldImage)
	}

	middleware.AddMessage(c, middleware.LevelSuccess, "Pin updated successfully!")
	redirect(c, pinURL(pin.ID))
}

// Delete godoc
// @Summary      Delete a pin
// @Description  GET returns the confirmation view, POST deletes the pin and its image.
// @Tags         Pins
// @Produce      json
// @Param        id  path  string  true  "Pin ID"
// @Success      302
// @Failure      404  {object}  ErrorResponse
// @Router       /pin/{id}/delete/ [post]
func (h *PinHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	pin, ok := h.ownedPin(c, user)
	if !ok {
		return
	}

	if c.Request.Method != http.MethodPost {
		render(c, http.StatusOK, "pins/pin_confirm_delete", gin.H{"pin": pinResponse(*pin)})
		return
	}

	if err := h.pins.Delete(c.Request.Context(), pin.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c)
			return
		}
		serverError(c, err, "Failed to delete pin")
		return
	}
	h.discard(c, pin.Image)

	log.Info().Str("pin", pin.String()).Str("user", user.Username).Msg("pin deleted")
	middleware.AddMessage(c, middleware.LevelSuccess, "Pin deleted successfully!")
	redirect(c, "/")
}

// Like godoc
// @Summary      Toggle like
// @Description  Adds the requester to the pin's likes, or removes them if already present
// @Tags         Pins
// @Produce      json
// @Param        id  path  string  true  "Pin ID"
// @Success      200  {object}  LikeResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /pin/{id}/like/ [post]
func (h *PinHandler) Like(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		notFound(c)
		return
	}
	user := middleware.CurrentUser(c)

	liked, count, err := h.likes.Toggle(c.Request.Context(), id, user.ID)
	if errors.Is(err, repository.ErrPinNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		serverError(c, err, "Failed to toggle like")
		return
	}

	c.JSON(http.StatusOK, LikeResponse{Liked: liked, LikeCount: count})
}

// ownedPin loads the pin named by the path for its owner. Missing pins and
// pins of other users both end in 404.
func (h *PinHandler) ownedPin(c *gin.Context, user *model.User) (*model.Pin, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		notFound(c)
		return nil, false
	}
	pin, err := h.pins.GetOwnedByID(c.Request.Context(), id, user.ID)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c)
		return nil, false
	}
	if err != nil {
		serverError(c, err, "Failed to load pin")
		return nil, false
	}
	return pin, true
}

func (h *PinHandler) renderForm(c *gin.Context, status int, view string, f form.PinForm, choices []model.Board, errs form.Errors, extra gin.H) {
	options := make([]gin.H, len(choices))
	for i, b := range choices {
		options[i] = gin.H{"id": b.ID.String(), "name": b.Name}
	}
	data := gin.H{
		"form": gin.H{
			"title":       f.Title,
			"description": f.Description,
			"source_url":  f.SourceURL,
			"board":       f.Board,
			"tags":        f.Tags,
			"choices":     options,
			"widgets":     f.Widgets(),
		},
	}
	for k, v := range extra {
		data[k] = v
	}
	if errs.Any() {
		data["errors"] = errs
	}
	render(c, status, view, data)
}

// discard hands an image that is no longer referenced to the cleanup path.
// Failures only leave an orphaned object behind, so they are logged.
func (h *PinHandler) discard(c *gin.Context, path string) {
	if path == "" {
		return
	}
	if err := h.discarder.Discard(c.Request.Context(), path); err != nil {
		log.Warn().Err(err).Str("image", path).Msg("image cleanup failed")
	}
}
