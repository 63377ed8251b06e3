package v1

import "github.com/gin-gonic/gin"

// Flash messages ride a short-lived cookie: a failed POST sets it and
// the next page render consumes it, mirroring server-side flash
// without any in-process session state.
const flashCookie = "fm_flash"

func setFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookie, message, 60, "/", "", false, true)
}

func takeFlash(c *gin.Context) string {
	msg, err := c.Cookie(flashCookie)
	if err != nil || msg == "" {
		return ""
	}
	// consume it
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return msg
}
