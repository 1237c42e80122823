package routes

import (
	"net/http"
	"time"

	"freelancehub/handlers"
	"freelancehub/middleware"
	"freelancehub/models"
	"freelancehub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	clientOnly     = middleware.RequireRole(models.RoleClient)
	freelancerOnly = middleware.RequireRole(models.RoleFreelancer)
	participants   = middleware.RequireRole(models.RoleClient, models.RoleFreelancer)
	adminOnly      = middleware.RequireRole(models.RoleAdmin)
)

// RegisterAuthRoutes registers signup, login and logout.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Account.RegisterHandler)
		api.POST("/login", hb.Account.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.Verifier))
		api.POST("/logout", hb.Account.LogoutHandler)
		api.GET("/me", hb.Account.MeHandler)
	}
}

// RegisterFreelancerRoutes registers the directory, profiles and the
// freelancer's own bids and projects.
func RegisterFreelancerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/freelancer")
	api.Use(middleware.JWTAuthMiddleware(hb.Verifier))
	{
		api.GET("", hb.Freelancer.SearchHandler)
		api.GET("/profile", freelancerOnly, hb.Freelancer.GetOwnProfileHandler)
		api.POST("/profile", freelancerOnly, hb.Freelancer.UpdateProfileHandler)
		api.PUT("/profile", freelancerOnly, hb.Freelancer.UpdateProfileHandler)
		api.POST("/hire", clientOnly, hb.Hiring.HireHandler)

		api.GET("/bids", freelancerOnly, hb.Bids.ListFreelancerBidsHandler)
		api.PUT("/bids/:id", freelancerOnly, hb.Bids.UpdateFreelancerBidHandler)

		api.GET("/projects", freelancerOnly, hb.Projects.ListFreelancerProjectsHandler)
		api.PUT("/projects/:id", freelancerOnly, hb.Projects.UpdateProjectStatusHandler)
		api.GET("/projects/:id/milestones", freelancerOnly, hb.Projects.ListMilestonesHandler)
		api.POST("/projects/:id/milestones", freelancerOnly, hb.Projects.AddMilestoneHandler)

		api.GET("/:id", hb.Freelancer.GetProfileHandler)
		api.GET("/:id/ratings", hb.Freelancer.ListRatingsHandler)
	}
}

// RegisterClientRoutes registers the client's hires and projects.
func RegisterClientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/client")
	api.Use(middleware.JWTAuthMiddleware(hb.Verifier), clientOnly)
	{
		api.GET("/hires", hb.Hiring.ListHiresHandler)
		api.GET("/projects", hb.Projects.ListClientProjectsHandler)
		api.PUT("/projects/:id", hb.Projects.UpdateProjectStatusHandler)
	}
}

// RegisterMarketplaceRoutes registers projects, bids and ratings.
func RegisterMarketplaceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(hb.Verifier))
	{
		api.POST("/ratings", clientOnly, hb.Hiring.RateHandler)

		api.GET("/projects", hb.Projects.ListOpenProjectsHandler)
		api.POST("/projects", clientOnly, hb.Projects.CreateProjectHandler)
		api.GET("/projects/:id", hb.Projects.GetProjectHandler)
		api.GET("/projects/:id/bids", clientOnly, hb.Bids.ListProjectBidsHandler)
		api.POST("/projects/:id/bids", freelancerOnly, hb.Bids.SubmitBidHandler)
		api.GET("/projects/:id/milestones", hb.Projects.ListMilestonesHandler)
		api.POST("/projects/:id/milestones", participants, hb.Projects.AddMilestoneHandler)
		api.PUT("/projects/:id/milestones/:milestoneId", participants, hb.Projects.ToggleMilestoneHandler)

		api.PUT("/bids/:id/accept", clientOnly, hb.Bids.AcceptBidHandler)
		api.PUT("/bids/:id/reject", clientOnly, hb.Bids.RejectBidHandler)

		api.POST("/upload", hb.Storage.UploadImageHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(hb.Verifier), adminOnly)
		adminGroup.GET("/accounts", hb.Admin.ListAccountsHandler)
		adminGroup.GET("/freelancers", hb.Admin.ListFreelancersHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint. A degraded
// dependency turns the response into a 503.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if status.Status == "degraded" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := hb.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsConfig := cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	// Credentials cannot be combined with a wildcard origin.
	corsConfig.AllowCredentials = !(len(origins) == 1 && origins[0] == "*")
	r.Use(cors.New(corsConfig))
	if hb.MaxRequestsPerMin > 0 {
		r.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))
	}

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterFreelancerRoutes(r, hb)
	RegisterClientRoutes(r, hb)
	RegisterMarketplaceRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
