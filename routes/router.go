// file: routes/router.go
package routes

import (
	"RecipeBattle/controllers"
	"RecipeBattle/middlewares"
	"RecipeBattle/models"
	"RecipeBattle/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsConfig))

	// 凭证视频静态服务，公开 URL 形如 /uploads/proofs/<name>
	r.Static("/uploads", utils.UploadRoot())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := r.Group("/api/v1")
	{
		// --- 用户 ---
		usersPublic := apiV1.Group("/users")
		{
			usersPublic.POST("/register", controllers.Register)
			usersPublic.POST("/login", controllers.Login)
		}
		usersAuth := apiV1.Group("/users")
		usersAuth.Use(middlewares.JWTAuthMiddleware())
		{
			usersAuth.GET("/:id", controllers.GetUserDetail)
			usersAuth.PUT("/:id", controllers.UpdateUser)
		}

		// --- 菜谱与评论 ---
		recipeRoutes := apiV1.Group("/recipes")
		{
			recipeRoutes.GET("", controllers.ListRecipes)
			recipeRoutes.GET("/:id", controllers.GetRecipeDetail)
			recipeRoutes.GET("/:id/comments", controllers.ListComments)
			recipeRoutes.POST("", middlewares.JWTAuthMiddleware(), controllers.CreateRecipe)
			recipeRoutes.PUT("/:id", middlewares.JWTAuthMiddleware(), controllers.UpdateRecipe)
			recipeRoutes.DELETE("/:id", middlewares.JWTAuthMiddleware(), controllers.DeleteRecipe)
			recipeRoutes.POST("/:id/comments", middlewares.JWTAuthMiddleware(), controllers.AddComment)
			recipeRoutes.POST("/:id/like", middlewares.JWTAuthMiddleware(), controllers.ToggleRecipeLike)
		}
		apiV1.DELETE("/comments/:id", middlewares.JWTAuthMiddleware(), controllers.DeleteComment)

		// --- 对战 ---
		battleRoutes := apiV1.Group("/battles")
		{
			battleRoutes.GET("", controllers.ListBattles)
			battleRoutes.GET("/:id", controllers.GetBattleDetail)
			battleRoutes.GET("/:id/entries", controllers.ListBattleEntries)
			battleRoutes.POST("/:id/enter", middlewares.JWTAuthMiddleware(), controllers.EnterBattle)
			battleRoutes.POST("/:id/vote", middlewares.JWTAuthMiddleware(), controllers.CastVote)
		}

		// --- 凭证上传与审核 ---
		proofRoutes := apiV1.Group("/proofs")
		proofRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			proofRoutes.POST("/upload", controllers.UploadProof)
			proofRoutes.GET("/pending", middlewares.RoleAuthMiddleware(models.RoleModerator), controllers.ListPendingProofs)
			proofRoutes.POST("/verify", middlewares.RoleAuthMiddleware(models.RoleModerator), controllers.VerifyProof)
		}

		// --- 排行榜 ---
		apiV1.GET("/leaderboard", controllers.GetLeaderboard)

		// --- 管理员 ---
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.POST("/battles", controllers.AdminCreateBattle)
			adminRoutes.PUT("/battles/:id", controllers.AdminUpdateBattle)
			adminRoutes.DELETE("/battles/:id", controllers.AdminDeleteBattle)

			adminRoutes.GET("/users", controllers.AdminGetUsers)
			adminRoutes.PUT("/users/:id/role", controllers.AdminUpdateUserRole)
			adminRoutes.PUT("/users/:id/level", controllers.AdminUpdateUserLevel)
			adminRoutes.PUT("/users/:id/status", controllers.AdminUpdateUserStatus)
			adminRoutes.DELETE("/users/:id", controllers.AdminDeleteUser)
		}
	}

	return r
}
