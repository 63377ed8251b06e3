package request

type SignupForm struct {
	Username string `form:"username" binding:"required,username"`
	Password string `form:"password" binding:"required"`
	Nickname string `form:"nickname" binding:"required"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}
