package form

type RegisterForm struct {
	Username  string `form:"username" json:"username" binding:"required,max=150,username"`
	Email     string `form:"email" json:"email" binding:"required,email"`
	Password1 string `form:"password1" json:"password1" binding:"required,min=8,notnumeric"`
	Password2 string `form:"password2" json:"password2" binding:"required,eqfield=Password1"`
}

func (RegisterForm) Widgets() map[string]Widget {
	return map[string]Widget{
		"username":  {Type: "text", Class: "form-control", Placeholder: "Username"},
		"email":     {Type: "email", Class: "form-control", Placeholder: "Email"},
		"password1": {Type: "password", Class: "form-control", Placeholder: "Password"},
		"password2": {Type: "password", Class: "form-control", Placeholder: "Confirm password"},
	}
}

type LoginForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

func (LoginForm) Widgets() map[string]Widget {
	return map[string]Widget{
		"username": {Type: "text", Class: "form-control", Placeholder: "Username"},
		"password": {Type: "password", Class: "form-control", Placeholder: "Password"},
	}
}

// SearchForm carries the optional feed filter.
type SearchForm struct {
	Query string `form:"query" json:"query"`
}

func (SearchForm) Widgets() map[string]Widget {
	return map[string]Widget{
		"query": {Type: "text", Class: "form-control", Placeholder: "Search pins..."},
	}
}
