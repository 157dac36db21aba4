package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/config"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
	"fintrack/internal/session"
)

// AuthHandler handles the home page, registration, login, and logout.
type AuthHandler struct {
	userService services.UserServicer
	sessions    session.Store
	cfg         *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService services.UserServicer, sessions session.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{userService: userService, sessions: sessions, cfg: cfg}
}

// RegisterForm represents the registration form fields.
type RegisterForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// LoginForm represents the login form fields.
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Home renders the landing page.
func (h *AuthHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{"IsLoggedIn": h.isLoggedIn(c)})
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"IsLoggedIn": h.isLoggedIn(c)})
}

// Login authenticates a user and establishes a session. A missing user and a
// wrong password take the same path so the response never reveals which
// usernames exist.
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": "Invalid username or password"})
		return
	}

	user, err := h.userService.GetUserByUsername(form.Username)
	if err != nil || !h.userService.VerifyPassword(user, form.Password) {
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": "Invalid username or password"})
		return
	}

	token, err := h.sessions.Create(session.Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		failInternal(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.Redirect(http.StatusFound, "/dashboard")
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"IsLoggedIn": h.isLoggedIn(c)})
}

// Register creates a new user and redirects to the login page. A taken
// username re-renders the form.
func (h *AuthHandler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "register.html", gin.H{"Error": "Username and password are required"})
		return
	}

	if _, err := h.userService.CreateUser(form.Username, form.Password); err != nil {
		if isAppErrorCode(err, apperrors.ErrDuplicateUsername.Code) {
			c.HTML(http.StatusOK, "register.html", gin.H{"Error": "That username is already taken"})
			return
		}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Internal == nil {
			c.HTML(http.StatusOK, "register.html", gin.H{"Error": appErr.Message})
			return
		}
		failInternal(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// Logout destroys the session, if any, and redirects home. Logging out
// without a session is a no-op.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cfg.SessionCookie); err == nil && token != "" {
		h.sessions.Destroy(token)
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) isLoggedIn(c *gin.Context) bool {
	token, err := c.Cookie(h.cfg.SessionCookie)
	if err != nil || token == "" {
		return false
	}
	_, ok := h.sessions.Get(token)
	return ok
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.SessionCookie, token, int(h.cfg.SessionTTL.Seconds()), "/", "", h.cfg.SecureCookies, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.SessionCookie, "", -1, "/", "", h.cfg.SecureCookies, true)
}

func isAppErrorCode(err error, code string) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
