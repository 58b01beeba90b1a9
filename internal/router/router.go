package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/workbridge-dev/workbridge/internal/handlers"
	"github.com/workbridge-dev/workbridge/internal/middleware"
	"github.com/workbridge-dev/workbridge/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/contracts/:contract_id", middleware.AuthMiddleware(), handlers.ContractWebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.GET("", handlers.ListProjects)
			projects.GET("/:project_id", handlers.GetProject)

			projects.POST("", middleware.RequireRole(types.RoleClient), handlers.CreateProject)
			projects.PATCH("/:project_id", middleware.RequireRole(types.RoleClient), handlers.UpdateProject)
			projects.GET("/:project_id/proposals", middleware.RequireRole(types.RoleClient), handlers.ListProjectProposals)

			projects.POST("/:project_id/proposals", middleware.RequireRole(types.RoleFreelancer), handlers.CreateProposal)
		}

		proposals := api.Group("/proposals", middleware.AuthMiddleware())
		{
			proposals.GET("/mine", middleware.RequireRole(types.RoleFreelancer), handlers.ListMyProposals)
			proposals.POST("/:proposal_id/accept", middleware.RequireRole(types.RoleClient), handlers.AcceptProposal)
		}

		contracts := api.Group("/contracts", middleware.AuthMiddleware())
		{
			contracts.GET("", handlers.ListContracts)
			contracts.GET("/:contract_id", handlers.GetContract)
			contracts.GET("/:contract_id/milestones", handlers.ListContractMilestones)
			contracts.POST("/:contract_id/reviews", handlers.CreateReview)
		}

		milestones := api.Group("/milestones", middleware.AuthMiddleware())
		{
			milestones.POST("/:milestone_id/submit", middleware.RequireRole(types.RoleFreelancer), handlers.SubmitMilestone)
			milestones.POST("/:milestone_id/approve", middleware.RequireRole(types.RoleClient), handlers.ApproveMilestone)
		}

		services := api.Group("/services")
		{
			services.GET("", handlers.ListServices)

			services.POST("", middleware.AuthMiddleware(), middleware.RequireRole(types.RoleFreelancer), handlers.CreateService)
			services.PUT("/:service_id", middleware.AuthMiddleware(), middleware.RequireRole(types.RoleFreelancer), handlers.UpdateService)
			services.DELETE("/:service_id", middleware.AuthMiddleware(), middleware.RequireRole(types.RoleFreelancer), handlers.DeleteService)
		}

		users := api.Group("/users")
		{
			users.GET("/:user_id/reviews", handlers.ListUserReviews)
		}
	}

	return r
}
