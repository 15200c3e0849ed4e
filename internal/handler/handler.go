package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pinboard/internal/middleware"
	"pinboard/internal/model"
	"pinboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every 404 and 500 reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type BoardRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type PinResponse struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url"`
	SourceURL   string       `json:"source_url"`
	Tags        []string     `json:"tags"`
	Owner       UserResponse `json:"owner"`
	Board       *BoardRef    `json:"board,omitempty"`
	LikeCount   int64        `json:"like_count"`
	IsLiked     bool         `json:"is_liked"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
}

type BoardResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Slug        string       `json:"slug"`
	IsPrivate   bool         `json:"is_private"`
	Owner       UserResponse `json:"owner"`
	PinCount    int64        `json:"pin_count"`
	CreatedAt   string       `json:"created_at"`
}

type CommentResponse struct {
	ID        string       `json:"id"`
	Author    UserResponse `json:"author"`
	Text      string       `json:"text"`
	CreatedAt string       `json:"created_at"`
}

// LikeResponse is returned by the like toggle.
type LikeResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

func userResponse(u model.User) UserResponse {
	return UserResponse{ID: u.ID.String(), Username: u.Username}
}

func pinResponse(p model.Pin) PinResponse {
	resp := PinResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    mediaURL(p.Image),
		SourceURL:   p.SourceURL,
		Tags:        p.TagList(),
		Owner:       userResponse(p.Owner),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
	if p.Board != nil {
		resp.Board = &BoardRef{Name: p.Board.Name, Slug: p.Board.Slug}
	}
	return resp
}

func boardResponse(b model.Board, pinCount int64) BoardResponse {
	return BoardResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		Description: b.Description,
		Slug:        b.Slug,
		IsPrivate:   b.IsPrivate,
		Owner:       userResponse(b.Owner),
		PinCount:    pinCount,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
}

func commentResponse(cm model.Comment) CommentResponse {
	return CommentResponse{
		ID:        cm.ID.String(),
		Author:    userResponse(cm.Author),
		Text:      cm.Text,
		CreatedAt: cm.CreatedAt.Format(time.RFC3339),
	}
}

func mediaURL(path string) string {
	if path == "" {
		return ""
	}
	return "/media/" + path
}

func pinURL(id uuid.UUID) string        { return "/pin/" + id.String() + "/" }
func boardURL(slug string) string       { return "/board/" + url.PathEscape(slug) + "/" }
func profileURL(username string) string { return "/user/" + url.PathEscape(username) + "/" }

// annotatePins attaches live like counts and the viewer's liked state.
func annotatePins(ctx context.Context, likes repository.LikeRepositoryInterface, pins []model.Pin, viewer *model.User) ([]PinResponse, error) {
	ids := make([]uuid.UUID, len(pins))
	for i, p := range pins {
		ids[i] = p.ID
	}

	counts, err := likes.CountByPins(ctx, ids)
	if err != nil {
		return nil, err
	}
	liked := map[uuid.UUID]bool{}
	if viewer != nil {
		if liked, err = likes.LikedAmong(ctx, viewer.ID, ids); err != nil {
			return nil, err
		}
	}

	out := make([]PinResponse, len(pins))
	for i, p := range pins {
		out[i] = pinResponse(p)
		out[i].LikeCount = counts[p.ID]
		out[i].IsLiked = liked[p.ID]
	}
	return out, nil
}

// boardsWithCounts attaches live pin counts to boards.
func boardsWithCounts(ctx context.Context, pins repository.PinRepositoryInterface, boards []model.Board) ([]BoardResponse, error) {
	ids := make([]uuid.UUID, len(boards))
	for i, b := range boards {
		ids[i] = b.ID
	}
	counts, err := pins.CountByBoards(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]BoardResponse, len(boards))
	for i, b := range boards {
		out[i] = boardResponse(b, counts[b.ID])
	}
	return out, nil
}

// render writes the view context of a page. The requester and the pending
// notices are added to every view.
func render(c *gin.Context, status int, view string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["view"] = view
	if user := middleware.CurrentUser(c); user != nil {
		data["user"] = userResponse(*user)
	} else {
		data["user"] = nil
	}
	data["messages"] = middleware.Messages(c)
	c.JSON(status, data)
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
}

func serverError(c *gin.Context, err error, msg string) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(msg)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msg})
}

func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	return id, err == nil
}

// safeNext accepts only same-site absolute paths.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
