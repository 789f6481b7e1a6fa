package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"cesizen/api/internal/config"
	"cesizen/api/internal/middleware"
	"cesizen/api/internal/models"
	"cesizen/api/internal/repository"
	"cesizen/api/internal/service"
	"cesizen/api/internal/storage"
)

type HandlerSet struct {
	log   zerolog.Logger
	cfg   *config.AppConfig
	db    *pgxpool.Pool
	cache *redis.Client
	store *storage.ObjectStore

	users repository.UserStore
	roles repository.RoleStore

	authService         *service.AuthService
	passwordService     *service.PasswordService
	articleService      *service.ArticleService
	emotionService      *service.EmotionService
	practitionerService *service.PractitionerService
	roleService         *service.RoleService
}

func NewHandlerSet(
	log zerolog.Logger,
	db *pgxpool.Pool,
	cache *redis.Client,
	store *storage.ObjectStore,
	mailer service.Mailer,
	cfg *config.AppConfig,
) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	emotionRepo := repository.NewEmotionRepository(db)
	practitionerRepo := repository.NewPractitionerRepository(db)
	tokenRepo := repository.NewResetTokenRepository(db)

	return HandlerSet{
		log:   log,
		cfg:   cfg,
		db:    db,
		cache: cache,
		store: store,
		users: userRepo,
		roles: roleRepo,

		authService:         service.NewAuthService(userRepo, roleRepo, cfg, log),
		passwordService:     service.NewPasswordService(userRepo, tokenRepo, mailer, cfg, log),
		articleService:      service.NewArticleService(articleRepo, log),
		emotionService:      service.NewEmotionService(emotionRepo, cache, log),
		practitionerService: service.NewPractitionerService(practitionerRepo, userRepo),
		roleService:         service.NewRoleService(roleRepo, userRepo),
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/health", h.Health)

	auth := middleware.Auth(h.cfg, h.users, h.roles)

	users := router.Group("/users")
	{
		users.POST("/register", h.RegisterUser)
		users.POST("/login", h.Login)
		users.POST("/forgot-password", h.ForgotPassword)
		users.POST("/reset-password", h.ResetPassword)

		protected := users.Group("")
		protected.Use(auth)
		protected.GET("/profile", h.Profile)
		protected.PUT("/profile", h.UpdateProfile)
		protected.GET("/roles", h.MyRoles)

		admin := users.Group("/admin")
		admin.Use(auth, middleware.RequireRoles(models.RoleAdmin))
		admin.GET("/users", h.AdminListUsers)
	}

	articles := router.Group("/articles")
	{
		articles.GET("", h.ListArticles)
		articles.GET("/categories", h.ArticleCategories)
		articles.GET("/:slug", h.ArticleBySlug)

		admin := articles.Group("/admin")
		admin.Use(auth, middleware.RequireRoles(models.RoleAdmin))
		admin.GET("", h.AdminListArticles)
		admin.GET("/:id", h.AdminGetArticle)

		// all writes are admin-gated; the service still enforces
		// author-or-admin on update and delete
		write := articles.Group("")
		write.Use(auth, middleware.RequireRoles(models.RoleAdmin))
		write.POST("", h.CreateArticle)
		write.PUT("/:id", h.UpdateArticle)
		write.DELETE("/:id", h.DeleteArticle)
		write.POST("/:id/image", h.UploadArticleImage)
	}

	emotions := router.Group("/emotions")
	emotions.Use(auth)
	{
		emotions.GET("/categories", h.EmotionCategories)
		emotions.GET("/user", h.ListJournal)
		emotions.GET("/stats", h.EmotionStats)
		emotions.POST("", h.AddJournalEntry)
		emotions.PUT("/:id", h.UpdateJournalEntry)
		emotions.DELETE("/:id", h.DeleteJournalEntry)
	}

	practitioners := router.Group("/practitioners")
	practitioners.Use(auth, middleware.RequireRoles(models.RolePractitioner))
	{
		practitioners.GET("/patients", h.ListPatients)
		practitioners.POST("/patients", h.AddPatient)
		practitioners.GET("/patients/:patientId/notes", h.PatientNotes)
		practitioners.POST("/notes", h.AddNote)
	}

	roles := router.Group("/roles")
	roles.Use(auth, middleware.RequireRoles(models.RoleAdmin))
	{
		roles.POST("/assign", h.AssignRole)
		roles.POST("/remove", h.RemoveRole)
		roles.GET("/user/:userId", h.RolesOfUser)
		roles.GET("/all", h.AllRoles)
	}
}
