package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	v1 "fleamarket/api/v1"
	"fleamarket/config"
	"fleamarket/dao"
	"fleamarket/internal/upload"
	myvalidator "fleamarket/internal/validator"
	"fleamarket/middleware"
	"fleamarket/model"
	"fleamarket/service"
)

func main() {
	// 初始化配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../"
	}
	config.InitConfig(configPath)
	config.InitRedis()

	// 初始化数据库
	db, err := gorm.Open(mysql.Open(config.GlobalConfig.MySQL.DSN), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	// 自动迁移
	if err := db.AutoMigrate(&model.User{}, &model.Item{}, &model.Bid{}); err != nil {
		panic(err)
	}

	// 上传目录必须先于第一次写入存在
	if err := os.MkdirAll(config.GlobalConfig.Upload.Dir, 0o755); err != nil {
		panic(err)
	}

	retry := dao.RetryPolicy{
		MaxAttempts: config.GlobalConfig.Retry.MaxAttempts,
		Delay:       time.Duration(config.GlobalConfig.Retry.DelayMillis) * time.Millisecond,
	}
	store := upload.NewStore(config.GlobalConfig.Upload.Dir, config.GlobalConfig.Upload.PublicBase)

	// 初始化 DAO 和 Service
	userDAO := dao.NewUserDAO(db, retry)
	itemDAO := dao.NewItemDAO(db, retry)
	bidDAO := dao.NewBidDAO(db, retry)
	authService := service.NewAuthService(userDAO, config.RedisClient)
	marketService := service.NewMarketService(itemDAO, bidDAO, store)
	authAPI := v1.NewAuthAPI(authService)
	marketAPI := v1.NewMarketAPI(marketService)

	// 初始化路由
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 上传的图片作为静态资源回抛
	r.Static(config.GlobalConfig.Upload.PublicBase, filepath.Dir(config.GlobalConfig.Upload.Dir))

	// 注册自定义校验器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("username", myvalidator.IsUsername); err != nil {
			panic(err)
		}
	}

	// 公共路由
	r.GET("/", authAPI.Index)
	r.GET("/login", authAPI.LoginPage)
	loginLimiter := middleware.LoginRateLimiter(config.RedisClient, 5, time.Minute)
	r.POST("/login", loginLimiter, authAPI.Login)
	r.GET("/signup", authAPI.SignupPage)
	r.POST("/signup", authAPI.Signup)
	r.GET("/item/:id", marketAPI.ItemDetail)

	// 私有路由
	private := r.Group("/")
	private.Use(middleware.SessionRequired(authService.Session))
	{
		private.GET("/main", marketAPI.Main)
		private.GET("/logout", authAPI.Logout)
		private.GET("/post_item", marketAPI.PostItemPage)
		private.POST("/post_item", marketAPI.PostItem)
		private.GET("/item/:id/bid", marketAPI.BidPage)
		private.POST("/item/:id/bid", marketAPI.PostBid)
	}

	// 启动服务
	if err := r.Run(config.GlobalConfig.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
