package form

import "pinboard/internal/model"

type BoardForm struct {
	Name        string   `form:"name" json:"name" binding:"required,notblank,max=100"`
	Description string   `form:"description" json:"description"`
	IsPrivate   Checkbox `form:"is_private" json:"is_private"`
}

func BoardFormFrom(board *model.Board) BoardForm {
	return BoardForm{
		Name:        board.Name,
		Description: board.Description,
		IsPrivate:   Checkbox(board.IsPrivate),
	}
}

// Apply copies the submitted fields onto board. The slug is not a form field.
func (f BoardForm) Apply(board *model.Board) {
	board.Name = f.Name
	board.Description = f.Description
	board.IsPrivate = bool(f.IsPrivate)
}

func (BoardForm) Widgets() map[string]Widget {
	return map[string]Widget{
		"name":        {Type: "text", Class: "form-control", Placeholder: "Board name"},
		"description": {Type: "textarea", Class: "form-control", Placeholder: "Board description", Rows: 3},
		"is_private":  {Type: "checkbox", Class: "form-check-input"},
	}
}
