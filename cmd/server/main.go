package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/devlink/backend/internal/config"
	"github.com/devlink/backend/internal/handlers"
	"github.com/devlink/backend/internal/metrics"
	appMiddleware "github.com/devlink/backend/internal/middleware"
	"github.com/devlink/backend/internal/services"
	"github.com/devlink/backend/internal/storage"
)

func main() {
	cfg := config.Load()

	var (
		userService    services.UserService
		profileService services.ProfileService
		postService    services.PostService
	)

	switch cfg.StorageBackend {
	case "memory":
		userService, profileService, postService = buildMemoryServices(cfg.DataDir)
		log.Printf("Using JSON-backed in-memory storage: dir=%s", cfg.DataDir)
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		db, disconnect, err := services.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			_ = disconnect(shutdownCtx)
		}()
		log.Printf("MongoDB connected: db=%s", cfg.MongoDB)

		userService = services.NewMongoUserService(ctx, db)
		profileService = services.NewMongoProfileService(ctx, db)
		postService = services.NewMongoPostService(ctx, db)
	}

	accountService := services.NewCascadeAccountService(userService, profileService)
	collector := metrics.NewCollector()

	authHandler := handlers.NewAuthHandler(userService, cfg.JWTSecret, cfg.JWTExpiration)
	profileHandler := handlers.NewProfileHandler(profileService)
	postHandler := handlers.NewPostHandler(postService, userService, collector)
	accountHandler := handlers.NewAccountHandler(accountService)

	rateLimiter := appMiddleware.NewRateLimiter(
		appMiddleware.DefaultRateLimiterConfig(cfg.RateLimitRPM, cfg.RateLimitBurst),
	)
	defer rateLimiter.Stop()

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(collector.Middleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", collector.Handler())

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/users", authHandler.Register)
		r.Post("/auth", authHandler.Login)
		r.Get("/profile", profileHandler.ListProfiles)
		r.Get("/profile/user/{userId}", profileHandler.GetProfileByUser)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.JWTAuth(cfg.JWTSecret))
			r.Use(rateLimiter.Middleware())

			r.Get("/auth", authHandler.CurrentUser)

			// Registered flat: GET /profile is public above, so the subtree
			// cannot be mounted as its own router.
			r.Get("/profile/me", profileHandler.GetMyProfile)
			r.Post("/profile", profileHandler.UpsertProfile)
			r.Delete("/profile", accountHandler.DeleteAccount)
			r.Put("/profile/experience", profileHandler.AddExperience)
			r.Delete("/profile/experience/{expId}", profileHandler.RemoveExperience)
			r.Put("/profile/education", profileHandler.AddEducation)
			r.Delete("/profile/education/{eduId}", profileHandler.RemoveEducation)

			r.Route("/posts", func(r chi.Router) {
				r.Post("/", postHandler.CreatePost)
				r.Get("/", postHandler.ListPosts)
				r.Get("/{postId}", postHandler.GetPost)
				r.Delete("/{postId}", postHandler.DeletePost)
				r.Put("/like/{postId}", postHandler.LikePost)
				r.Put("/unlike/{postId}", postHandler.UnlikePost)
			})
		})
	})

	log.Printf("DevLink API server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func buildMemoryServices(dataDir string) (services.UserService, services.ProfileService, services.PostService) {
	userStore, err := storage.NewJSONStore(dataDir, "users.json")
	if err != nil {
		log.Fatalf("Failed to open user store: %v", err)
	}
	profileStore, err := storage.NewJSONStore(dataDir, "profiles.json")
	if err != nil {
		log.Fatalf("Failed to open profile store: %v", err)
	}
	postStore, err := storage.NewJSONStore(dataDir, "posts.json")
	if err != nil {
		log.Fatalf("Failed to open post store: %v", err)
	}

	return services.NewMemoryUserService(userStore),
		services.NewMemoryProfileService(profileStore),
		services.NewMemoryPostService(postStore)
}
