package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/fyerfyer/card-gen-system/api/handler"
	"github.com/fyerfyer/card-gen-system/api/middleware"
)

// 注册自定义校验规则
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// notblank: 字符串去除空白后不能为空
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	}
}

// SetupRouter 设置API路由
// 配置所有的API端点并应用中间件
func SetupRouter(
	sessionHandler *handler.SessionHandler,
	sourceHandler *handler.SourceHandler,
	cardHandler *handler.CardHandler,
	deckHandler *handler.DeckHandler,
	promptHandler *handler.PromptHandler,
) *gin.Engine {
	// 创建默认的Gin路由引擎
	router := gin.Default()

	// 应用全局中间件
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorMiddleware())
	router.Use(middleware.SetTraceID())

	// 在调试模式下记录请求体
	if gin.Mode() == gin.DebugMode {
		router.Use(middleware.RequestBodyLog())
	}

	// 创建API分组
	api := router.Group("/api")
	{
		// 会话API
		sessionGroup := api.Group("/sessions")
		{
			// 创建会话 - POST /api/sessions
			sessionGroup.POST("", sessionHandler.CreateSession)

			// 获取会话状态 - GET /api/sessions/:id
			sessionGroup.GET("/:id", sessionHandler.GetSession)

			// 上传源文件 - POST /api/sessions/:id/sources
			sessionGroup.POST("/:id/sources", sourceHandler.UploadSource)

			// 清空源和卡片 - DELETE /api/sessions/:id/sources
			sessionGroup.DELETE("/:id/sources", sessionHandler.ClearSources)

			// 生成卡片 - POST /api/sessions/:id/cards
			sessionGroup.POST("/:id/cards", cardHandler.GenerateCards)

			// 列出卡片 - GET /api/sessions/:id/cards
			sessionGroup.GET("/:id/cards", cardHandler.ListCards)

			// 更新卡片选择 - PUT /api/sessions/:id/selection
			sessionGroup.PUT("/:id/selection", cardHandler.UpdateSelection)

			// 浏览器操作 - POST /api/sessions/:id/viewer
			sessionGroup.POST("/:id/viewer", cardHandler.ViewerAction)

			// 润色学习目标 - POST /api/sessions/:id/enhance
			sessionGroup.POST("/:id/enhance", cardHandler.EnhanceObjective)

			// 导出卡组 - POST /api/sessions/:id/export
			sessionGroup.POST("/:id/export", deckHandler.ExportDeck)

			// 历史记录 - GET /api/sessions/:id/history
			sessionGroup.GET("/:id/history", sessionHandler.GetHistory)
		}

		// 卡组文件API
		deckGroup := api.Group("/decks")
		{
			// 解析卡组文件 - POST /api/decks/read
			deckGroup.POST("/read", deckHandler.ReadDeck)

			// 扩展已有卡组 - POST /api/decks/extend
			deckGroup.POST("/extend", deckHandler.ExtendDeck)

			// 导入JSON卡组 - POST /api/decks/import
			deckGroup.POST("/import", deckHandler.ImportDeck)

			// 卡组转JSON - POST /api/decks/export-json
			deckGroup.POST("/export-json", deckHandler.ExportDeckJSON)
		}

		// 预置学习目标API
		api.GET("/prompts", promptHandler.ListPrompts)

		// 健康检查API
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})
	}

	return router
}

// RegisterWebUI 注册Web UI路由
// TODO: 当前端页面准备好后实现此函数
func RegisterWebUI(router *gin.Engine) {
	// 待实现：集成前端页面
	// 示例：router.StaticFile("/", "./web/dist/index.html")
	// 示例：router.Static("/static", "./web/dist/static")
}

// Cors 跨域资源共享中间件
// 如果需要支持跨域请求，可以启用此中间件
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Trace-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
