package form

type CommentForm struct {
	Text string `form:"text" json:"text" binding:"required,notblank"`
}

func (CommentForm) Widgets() map[string]Widget {
	return map[string]Widget{
		"text": {Type: "textarea", Class: "form-control", Placeholder: "Write a comment...", Rows: 2},
	}
}
