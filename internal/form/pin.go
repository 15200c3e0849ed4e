package form

import (
	"mime/multipart"
	"strings"

	"pinboard/internal/model"

	"github.com/google/uuid"
)

type PinForm struct {
	Title       string `form:"title" json:"title" binding:"required,notblank,max=200"`
	Description string `form:"description" json:"description"`
	SourceURL   string `form:"source_url" json:"source_url" binding:"omitempty,url,max=200"`
	Board       string `form:"board" json:"board" binding:"omitempty,uuid"`
	Tags        string `form:"tags" json:"tags" binding:"max=200"`

	// Image is read from the multipart body by the handler.
	Image *multipart.FileHeader `form:"-" json:"-"`
}

// PinFormFrom pre-fills the form for editing an existing pin.
func PinFormFrom(pin *model.Pin) PinForm {
	f := PinForm{
		Title:       pin.Title,
		Description: pin.Description,
		SourceURL:   pin.SourceURL,
		Tags:        pin.Tags,
	}
	if pin.BoardID != nil {
		f.Board = pin.BoardID.String()
	}
	return f
}

// Clean checks what the tags cannot: the board must be one of choices (the
// current user's boards) and an image is required unless the pin already has one.
// It returns the selected board id, nil when no board was picked.
func (f *PinForm) Clean(choices []model.Board, requireImage bool, errs Errors) *uuid.UUID {
	if requireImage && f.Image == nil {
		errs.Add("image", "This field is required.")
	}
	if f.Image != nil {
		ct := f.Image.Header.Get("Content-Type")
		if ct != "" && !strings.HasPrefix(ct, "image/") {
			errs.Add("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
		}
	}

	if f.Board == "" {
		return nil
	}
	id, err := uuid.Parse(f.Board)
	if err != nil {
		return nil
	}
	for _, b := range choices {
		if b.ID == id {
			return &id
		}
	}
	errs.Add("board", "Select a valid choice. That choice is not one of the available choices.")
	return nil
}

func (PinForm) Widgets() map[string]Widget {
	return map[string]Widget{
		"title":       {Type: "text", Class: "form-control", Placeholder: "Add a title"},
		"description": {Type: "textarea", Class: "form-control", Placeholder: "Tell everyone what your pin is about", Rows: 4},
		"image":       {Type: "file", Class: "form-control", Accept: "image/*"},
		"source_url":  {Type: "url", Class: "form-control", Placeholder: "https://example.com"},
		"board":       {Type: "select", Class: "form-control"},
		"tags":        {Type: "text", Class: "form-control", Placeholder: "nature, sunset, sea"},
	}
}
