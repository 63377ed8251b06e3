package v1

import (
	"errors"
	"net/http"

	"fleamarket/api/v1/request"
	"fleamarket/config"
	"fleamarket/internal/auth"
	"fleamarket/internal/logging"
	"fleamarket/internal/metrics"
	"fleamarket/service"

	"github.com/gin-gonic/gin"
)

type AuthServiceInterface interface {
	Signup(username, password, nickname string) error
	Login(username, password string) (string, error)
	Logout(userID uint64, token string) error
}

// AuthAPI exposes HTTP handlers for the signup/login/logout flows.
// AuthAPI 聚合了所有与用户鉴权相关的 HTTP Handler。
type AuthAPI struct {
	service AuthServiceInterface
}

// NewAuthAPI wires the service layer into the HTTP handlers.
func NewAuthAPI(s AuthServiceInterface) *AuthAPI {
	return &AuthAPI{service: s}
}

// Index routes a visitor by session presence: /main when a session
// cookie parses, /login otherwise.
func (a *AuthAPI) Index(c *gin.Context) {
	token, err := c.Cookie(config.GlobalConfig.Session.CookieName)
	if err == nil && token != "" {
		if _, err := auth.ParseSessionToken(token); err == nil {
			c.Redirect(http.StatusFound, "/main")
			return
		}
	}
	c.Redirect(http.StatusFound, "/login")
}

// LoginPage renders the login form payload, surfacing any flash left
// by a failed attempt.
func (a *AuthAPI) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "login", "flash": takeFlash(c)})
}

// Login authenticates the posted credentials. Success sets the session
// cookie and redirects to /main; failure flashes a generic message and
// sends the visitor back to the form, never revealing which field was
// wrong.
func (a *AuthAPI) Login(c *gin.Context) {
	var form request.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		metrics.IncLogin("bad_request")
		setFlash(c, service.ErrInvalidCredentials.Error())
		c.Redirect(http.StatusFound, "/login")
		return
	}

	token, err := a.service.Login(form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			metrics.IncLogin("unauthorized")
			setFlash(c, err.Error())
			c.Redirect(http.StatusFound, "/login")
			return
		}
		metrics.IncLogin("internal_error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.IncLogin("success")
	c.SetCookie(config.GlobalConfig.Session.CookieName, token,
		int(config.GlobalConfig.Session.Expire), "/", "", false, true)
	c.Redirect(http.StatusFound, "/main")
}

// SignupPage renders the signup form payload.
func (a *AuthAPI) SignupPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "signup", "flash": takeFlash(c)})
}

// Signup creates a new account and redirects to /login. A taken
// username flashes and returns to the form instead of failing hard.
func (a *AuthAPI) Signup(c *gin.Context) {
	var form request.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		metrics.IncSignup("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.service.Signup(form.Username, form.Password, form.Nickname); err != nil {
		if errors.Is(err, service.ErrUserExists) {
			metrics.IncSignup("duplicate")
			setFlash(c, err.Error())
			c.Redirect(http.StatusFound, "/signup")
			return
		}
		metrics.IncSignup("internal_error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.IncSignup("success")
	logging.Info("user signed up", map[string]any{"username": form.Username})
	c.Redirect(http.StatusFound, "/login")
}

// Logout revokes the session unconditionally and bounces to /login.
func (a *AuthAPI) Logout(c *gin.Context) {
	userID := c.GetUint64("user_id")
	token := c.GetString("session_token")
	if err := a.service.Logout(userID, token); err != nil {
		logging.Warn("logout revocation failed", map[string]any{"user_id": userID, "error": err.Error()})
	}
	c.SetCookie(config.GlobalConfig.Session.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}
