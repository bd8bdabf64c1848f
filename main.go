package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"notekeep/handler"
	"notekeep/middleware"
	"notekeep/repository"
	"notekeep/services"
	"notekeep/usecase"
	"notekeep/utils"
)

const maxRequestBody = 10 << 20 // multipart image uploads

func init() {
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"DATABASE_URL",
		"JWT_SECRET_KEY",
		"PORT",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()

	if os.Getenv("GO_ENV") != "test" {
		utils.InitDB()
	}

	// Redis is optional: without it sessions hit the database directly and
	// logout relies on session deactivation alone.
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err := services.NewSessionCache(redisURL)
		if err != nil {
			log.Fatalf("Failed to initialize session cache: %v", err)
		}
		services.GlobalSessionCache = cache

		blacklist, err := services.NewTokenBlacklist(redisURL)
		if err != nil {
			log.Fatalf("Failed to initialize token blacklist: %v", err)
		}
		services.TokenBlacklist = blacklist
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	uploadsDir := utils.GetEnvAsString("UPLOADS_DIR", "./public/uploads")

	userRepo := repository.GetUserRepo(utils.DB)
	sessionRepo := repository.GetSessionRepo(utils.DB)
	groupsRepo := repository.GetNoteGroupsRepo(utils.DB)
	notesRepo := repository.GetNotesRepo(utils.DB)

	userService := &usecase.UserService{UsersRepo: userRepo}
	groupsService := &usecase.NoteGroupsService{GroupsRepo: groupsRepo}
	notesService := &usecase.NotesService{
		NotesRepo:  notesRepo,
		GroupsRepo: groupsRepo,
		UploadsDir: uploadsDir,
	}

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestSizeLimiter(maxRequestBody))
	router.Use(middleware.MetricsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", handler.HealthHandler)

	// Uploaded note images are public static files.
	router.Static(services.PublicUploadPrefix, uploadsDir)

	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/signup", func(c *gin.Context) {
				handler.RegistrationHandler(c, userService)
			})
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, userService, sessionRepo)
			})
		}

		// Historical public category fetch, reachable under both paths.
		public.GET("/notesCategorie/get/:id", func(c *gin.Context) {
			handler.GetNoteGroupHandler(c, groupsService)
		})
		public.GET("/notesCategorie/categorie/:id", func(c *gin.Context) {
			handler.GetNoteGroupHandler(c, groupsService)
		})
	}

	protected := router.Group("/api")
	protected.Use(middleware.RequireSession(sessionRepo))
	{
		protected.POST("/auth/logout", func(c *gin.Context) {
			handler.LogoutHandler(c, sessionRepo)
		})

		categories := protected.Group("/notesCategorie")
		{
			categories.POST("/create", func(c *gin.Context) {
				handler.CreateNoteGroupHandler(c, groupsService)
			})
			categories.GET("/get/all", func(c *gin.Context) {
				handler.ListNoteGroupOptionsHandler(c, groupsService)
			})
			categories.GET("/search", func(c *gin.Context) {
				handler.SearchNoteGroupsHandler(c, groupsService)
			})
			categories.PUT("/update/:id", func(c *gin.Context) {
				handler.UpdateNoteGroupHandler(c, groupsService)
			})
		}

		notes := protected.Group("/notes")
		{
			notes.POST("", func(c *gin.Context) {
				handler.CreateNoteHandler(c, notesService)
			})
			notes.GET("/get/:id", func(c *gin.Context) {
				handler.GetNoteHandler(c, notesService)
			})
			notes.GET("/get/noteCategorie/:id", func(c *gin.Context) {
				handler.GetNotesByGroupHandler(c, notesService)
			})
			notes.GET("/listeNotes", func(c *gin.Context) {
				handler.ListNotesHandler(c, groupsService)
			})
			notes.PUT("/update/:id", func(c *gin.Context) {
				handler.UpdateNoteHandler(c, notesService)
			})
			notes.DELETE("/delete/:id", func(c *gin.Context) {
				handler.DeleteNoteHandler(c, notesService)
			})
		}

		user := protected.Group("/user")
		{
			user.GET("/profile", func(c *gin.Context) {
				handler.GetUserProfileHandler(c, userRepo)
			})
			user.GET("/stats", func(c *gin.Context) {
				handler.GetUserStatsHandler(c, notesRepo, groupsRepo, sessionRepo)
			})

			twofa := user.Group("/2fa")
			{
				twofa.POST("/generate", func(c *gin.Context) {
					handler.Generate2FASecretHandler(c, userRepo)
				})
				twofa.POST("/enable", func(c *gin.Context) {
					handler.Enable2FAHandler(c, userRepo)
				})
				twofa.POST("/verify", func(c *gin.Context) {
					handler.Verify2FAHandler(c, userRepo)
				})
				twofa.POST("/disable", func(c *gin.Context) {
					handler.Disable2FAHandler(c, userRepo)
				})
			}
		}
	}

	return router
}

func main() {
	router := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
