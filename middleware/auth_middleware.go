package middleware

import (
	"net/http"

	"fleamarket/config"
	"fleamarket/internal/auth"

	"github.com/gin-gonic/gin"
)

// SessionRequired gates routes that need a logged-in user. A missing,
// invalid, blacklisted or superseded session cookie redirects to
// /login instead of rendering the page.
func SessionRequired(session *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(config.GlobalConfig.Session.CookieName)
		if err != nil || token == "" {
			redirectLogin(c)
			return
		}

		// 检查 token 是否在黑名单
		in, _ := session.InBlackList(token)
		if in {
			redirectLogin(c)
			return
		}

		claims, err := auth.ParseSessionToken(token)
		if err != nil {
			redirectLogin(c)
			return
		}

		// The cookie must still be the session Redis knows about;
		// logout deletes it and a later login replaces it.
		stored, err := session.GetSession(claims.UserID)
		if err != nil || stored != token {
			redirectLogin(c)
			return
		}

		// 将用户信息写入上下文
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("nickname", claims.Nickname)
		c.Set("session_token", token)
		c.Next()
	}
}

func redirectLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}
