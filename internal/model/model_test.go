package model_test

import (
	"testing"

	"pinboard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBoard_EnsureSlug(t *testing.T) {
	ownerID := uuid.New()
	board := &model.Board{Name: "Travel", OwnerID: ownerID}

	assert.NoError(t, board.BeforeCreate(nil))
	assert.Equal(t, "travel-"+ownerID.String(), board.Slug)
}

func TestBoard_SlugNotRecomputed(t *testing.T) {
	ownerID := uuid.New()
	board := &model.Board{Name: "Travel", OwnerID: ownerID}
	board.EnsureSlug()
	original := board.Slug

	board.Name = "Summer Trips"
	board.EnsureSlug()

	assert.Equal(t, original, board.Slug)
}

func TestBoard_KeepsExplicitSlug(t *testing.T) {
	board := &model.Board{Name: "Travel", OwnerID: uuid.New(), Slug: "my-own-slug"}
	board.EnsureSlug()
	assert.Equal(t, "my-own-slug", board.Slug)
}

func TestBoardSlug_Punctuation(t *testing.T) {
	ownerID := uuid.New()
	assert.Equal(t, "sunsets-seas-"+ownerID.String(), model.BoardSlug("Sunsets, Seas!", ownerID))
}

func TestPin_TagList(t *testing.T) {
	tests := []struct {
		name string
		tags string
		want []string
	}{
		{name: "empty", tags: "", want: []string{}},
		{name: "single", tags: "nature", want: []string{"nature"}},
		{name: "trimmed", tags: "nature, sunset ,  sea", want: []string{"nature", "sunset", "sea"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pin := model.Pin{Tags: tt.tags}
			assert.Equal(t, tt.want, pin.TagList())
		})
	}
}

func TestComment_String(t *testing.T) {
	c := model.Comment{
		Author: model.User{Username: "anna"},
		Pin:    model.Pin{Title: "Sunset"},
	}
	assert.Equal(t, "Comment by anna on Sunset", c.String())
}
