package handler

import (
	"errors"
	"net/http"
	"strings"

	"pinboard/internal/auth"
	"pinboard/internal/form"
	"pinboard/internal/middleware"
	"pinboard/internal/model"
	"pinboard/internal/repository"
	"pinboard/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type UserHandler struct {
	users        repository.UserRepositoryInterface
	pins         repository.PinRepositoryInterface
	boards       repository.BoardRepositoryInterface
	likes        repository.LikeRepositoryInterface
	tokens       *auth.Manager
	sessions     session.Store
	cookieSecure bool
}

func NewUserHandler(
	users repository.UserRepositoryInterface,
	pins repository.PinRepositoryInterface,
	boards repository.BoardRepositoryInterface,
	likes repository.LikeRepositoryInterface,
	tokens *auth.Manager,
	sessions session.Store,
	cookieSecure bool,
) *UserHandler {
	return &UserHandler{
		users:        users,
		pins:         pins,
		boards:       boards,
		likes:        likes,
		tokens:       tokens,
		sessions:     sessions,
		cookieSecure: cookieSecure,
	}
}

// Profile godoc
// @Summary      User profile
// @Description  All pins of the user; private boards are listed only for the owner.
// @Tags         Users
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /user/{username}/ [get]
func (h *UserHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	owner, err := h.users.FindByUsername(ctx, c.Param("username"))
	if err != nil {
		serverError(c, err, "Failed to load user")
		return
	}
	if owner == nil {
		notFound(c)
		return
	}

	viewer := middleware.CurrentUser(c)
	isOwner := viewer != nil && viewer.ID == owner.ID

	pins, err := h.pins.ListByOwner(ctx, owner.ID)
	if err != nil {
		serverError(c, err, "Failed to load pins")
		return
	}
	for i := range pins {
		pins[i].Owner = *owner
	}
	pinItems, err := annotatePins(ctx, h.likes, pins, viewer)
	if err != nil {
		serverError(c, err, "Failed to load likes")
		return
	}

	boards, err := h.boards.ListByOwner(ctx, owner.ID, isOwner)
	if err != nil {
		serverError(c, err, "Failed to load boards")
		return
	}
	for i := range boards {
		boards[i].Owner = *owner
	}
	boardItems, err := boardsWithCounts(ctx, h.pins, boards)
	if err != nil {
		serverError(c, err, "Failed to count pins")
		return
	}

	render(c, http.StatusOK, "users/profile", gin.H{
		"profile_user": userResponse(*owner),
		"pins":         pinItems,
		"boards":       boardItems,
		"is_owner":     isOwner,
	})
}

// Register godoc
// @Summary      Sign up
// @Description  Creates the account and logs the new user in
// @Tags         Users
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username   formData  string  true  "Username"
// @Param        email      formData  string  true  "Email"
// @Param        password1  formData  string  true  "Password"
// @Param        password2  formData  string  true  "Password confirmation"
// @Success      302
// @Failure      400  {object}  map[string]interface{}
// @Router       /register/ [post]
func (h *UserHandler) Register(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		redirect(c, "/")
		return
	}

	var f form.RegisterForm
	if c.Request.Method != http.MethodPost {
		renderAuthForm(c, http.StatusOK, "users/register", gin.H{"username": "", "email": "", "widgets": f.Widgets()}, nil)
		return
	}

	ctx := c.Request.Context()
	errs := form.Bind(c, &f)
	f.Username = strings.TrimSpace(f.Username)
	if _, taken := errs["username"]; !taken && f.Username != "" {
		existing, err := h.users.FindByUsername(ctx, f.Username)
		if err != nil {
			serverError(c, err, "Failed to check username")
			return
		}
		if existing != nil {
			errs.Add("username", "A user with that username already exists.")
		}
	}
	if errs.Any() {
		renderAuthForm(c, http.StatusBadRequest, "users/register", gin.H{
			"username": f.Username,
			"email":    f.Email,
			"widgets":  f.Widgets(),
		}, errs)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password1), bcrypt.DefaultCost)
	if err != nil {
		serverError(c, err, "Failed to hash password")
		return
	}

	user := &model.User{
		ID:             uuid.New(),
		Username:       f.Username,
		Email:          strings.TrimSpace(f.Email),
		HashedPassword: string(hash),
	}
	if err := h.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			errs.Add("username", "A user with that username already exists.")
			renderAuthForm(c, http.StatusBadRequest, "users/register", gin.H{
				"username": f.Username,
				"email":    f.Email,
				"widgets":  f.Widgets(),
			}, errs)
			return
		}
		serverError(c, err, "Failed to create user")
		return
	}
	log.Info().Str("user", user.String()).Msg("user registered")

	if !h.startSession(c, user) {
		return
	}
	middleware.AddMessage(c, middleware.LevelSuccess, "Welcome, "+user.Username+"!")
	redirect(c, "/")
}

// Login godoc
// @Summary      Log in
// @Description  Starts a session stored in the session_token cookie. A local next parameter is honoured.
// @Tags         Users
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true   "Username"
// @Param        password  formData  string  true   "Password"
// @Param        next      query     string  false  "Where to go after login"
// @Success      302
// @Failure      400  {object}  map[string]interface{}
// @Router       /login/ [post]
func (h *UserHandler) Login(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		redirect(c, "/")
		return
	}

	next := c.Query("next")
	if next == "" {
		next = c.PostForm("next")
	}

	var f form.LoginForm
	if c.Request.Method != http.MethodPost {
		renderAuthForm(c, http.StatusOK, "users/login", gin.H{"username": "", "next": next, "widgets": f.Widgets()}, nil)
		return
	}

	errs := form.Bind(c, &f)
	var user *model.User
	if !errs.Any() {
		var err error
		user, err = h.users.FindByUsername(c.Request.Context(), f.Username)
		if err != nil {
			serverError(c, err, "Failed to load user")
			return
		}
		if user == nil || bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(f.Password)) != nil {
			errs.Add(form.NonField, "Please enter a correct username and password.")
		}
	}
	if errs.Any() {
		renderAuthForm(c, http.StatusBadRequest, "users/login", gin.H{
			"username": f.Username,
			"next":     next,
			"widgets":  f.Widgets(),
		}, errs)
		return
	}

	if !h.startSession(c, user) {
		return
	}
	middleware.AddMessage(c, middleware.LevelSuccess, "Welcome back, "+user.Username+"!")
	redirect(c, safeNext(next))
}

// Logout godoc
// @Summary      Log out
// @Tags         Users
// @Success      302
// @Router       /logout/ [get]
func (h *UserHandler) Logout(c *gin.Context) {
	if sess := middleware.CurrentSession(c); sess != nil {
		if err := h.sessions.Revoke(c.Request.Context(), sess.TokenID, sess.ExpiresAt); err != nil {
			log.Error().Err(err).Str("user_id", sess.UserID.String()).Msg("session revoke failed")
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.cookieSecure, true)
	middleware.AddMessage(c, middleware.LevelInfo, "You have been logged out")
	redirect(c, "/")
}

func (h *UserHandler) startSession(c *gin.Context, user *model.User) bool {
	token, _, err := h.tokens.GenerateToken(user.ID)
	if err != nil {
		serverError(c, err, "Failed to start session")
		return false
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.tokens.TTL().Seconds()), "/", "", h.cookieSecure, true)
	return true
}

func renderAuthForm(c *gin.Context, status int, view string, f gin.H, errs form.Errors) {
	data := gin.H{"form": f}
	if errs.Any() {
		data["errors"] = errs
	}
	render(c, status, view, data)
}
