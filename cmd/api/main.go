package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sfm-backend/internal/accounts"
	"sfm-backend/internal/auth"
	"sfm-backend/internal/blog"
	"sfm-backend/internal/cache"
	"sfm-backend/internal/checkout"
	"sfm-backend/internal/config"
	"sfm-backend/internal/contacts"
	"sfm-backend/internal/db"
	"sfm-backend/internal/middleware"
	"sfm-backend/internal/notifications"
	"sfm-backend/internal/projects"
	"sfm-backend/internal/templates"
	"sfm-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "sfm-backend",
		}
	}

	mailer := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.ContactRecipient, cfg.BrevoSandbox)
	if mailer == nil {
		logger.Info("brevo mailer disabled")
	} else {
		logger.Info("brevo mailer enabled", slog.String("sender", cfg.BrevoSenderEmail), slog.Bool("sandbox", cfg.BrevoSandbox))
	}

	var gateway checkout.Gateway
	if cfg.StripeSecretKey != "" {
		gateway = checkout.NewStripeGateway(cfg.StripeSecretKey)
		logger.Info("stripe gateway enabled")
	} else {
		logger.Info("stripe gateway disabled")
	}

	val := validation.New()

	projectsRepo := projects.NewRepository(cols.Projects)
	projectsService := projects.NewService(projectsRepo, cfg.Timezone)
	projectsHandler := projects.NewHandler(projectsService, val, logger, cacheStore, cacheTTL)

	templatesRepo := templates.NewRepository(cols.Templates)
	templatesService := templates.NewService(templatesRepo, cfg.Timezone)
	templatesHandler := templates.NewHandler(templatesService, val, logger, cacheStore, cacheTTL)

	blogRepo := blog.NewRepository(cols.BlogPosts)
	blogService := blog.NewService(blogRepo, cfg.Timezone)
	blogHandler := blog.NewHandler(blogService, val, logger, cacheStore, cacheTTL)

	contactsRepo := contacts.NewRepository(cols.Contacts)
	contactsService := contacts.NewService(contactsRepo, cfg.Timezone)
	var notifier contacts.Notifier
	if mailer != nil {
		notifier = mailer
	}
	contactsHandler := contacts.NewHandler(contactsService, notifier, val, logger)

	accountsRepo := accounts.NewRepository(cols.Users)
	accountsService := accounts.NewService(accountsRepo, jwtManager, cfg.Timezone)
	accountsHandler := accounts.NewHandler(accountsService, val, logger)

	checkoutService := checkout.NewService(gateway, templatesRepo, cfg.StripeWebhookSecret, cfg.ClientURL)
	checkoutHandler := checkout.NewHandler(checkoutService, val, logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	contactLimiter := middleware.NewRateLimiter(cfg.RateLimitContact, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	requireAuth := middleware.RequireAuth(jwtManager)
	requireAdmin := middleware.RequireAdmin(jwtManager)

	// Item routes share the {id} wildcard name within each subtree; on the
	// public GET routes the value is the slug.
	r.Route("/api", func(api chi.Router) {
		api.Route("/projects", func(pr chi.Router) {
			pr.Get("/", projectsHandler.PublicList)
			pr.With(requireAuth).Get("/admin", projectsHandler.AdminList)
			pr.With(requireAuth).Post("/", projectsHandler.Create)
			pr.Get("/{id}", projectsHandler.PublicGetBySlug)
			pr.With(requireAuth).Put("/{id}", projectsHandler.Update)
			pr.With(requireAdmin).Delete("/{id}", projectsHandler.Delete)
		})

		api.Route("/templates", func(tr chi.Router) {
			tr.Get("/", templatesHandler.PublicList)
			tr.With(requireAuth).Get("/admin", templatesHandler.AdminList)
			tr.With(requireAuth).Post("/", templatesHandler.Create)
			tr.Get("/{id}", templatesHandler.PublicGetBySlug)
			tr.With(requireAuth).Put("/{id}", templatesHandler.Update)
			tr.With(requireAdmin).Delete("/{id}", templatesHandler.Delete)
		})

		api.Route("/blog", func(br chi.Router) {
			br.Get("/", blogHandler.PublicList)
			br.Get("/categories", blogHandler.Categories)
			br.Get("/tags", blogHandler.Tags)
			br.With(requireAuth).Get("/admin", blogHandler.AdminList)
			br.With(requireAuth).Post("/", blogHandler.Create)
			br.Get("/{id}", blogHandler.PublicGetBySlug)
			br.With(requireAuth).Put("/{id}", blogHandler.Update)
			br.With(requireAdmin).Delete("/{id}", blogHandler.Delete)
		})

		api.Route("/contact", func(cr chi.Router) {
			cr.With(contactLimiter.Middleware).Post("/", contactsHandler.Submit)
			cr.With(requireAuth).Get("/", contactsHandler.AdminList)
			cr.With(requireAuth).Get("/stats", contactsHandler.AdminStats)
			cr.With(requireAuth).Get("/{id}", contactsHandler.AdminGet)
			cr.With(requireAuth).Put("/{id}", contactsHandler.AdminUpdate)
			cr.With(requireAdmin).Delete("/{id}", contactsHandler.AdminDelete)
		})

		api.Route("/stripe", func(sr chi.Router) {
			sr.Post("/create-checkout-session", checkoutHandler.CreateSession)
			sr.Post("/webhook", checkoutHandler.Webhook)
			sr.Get("/session/{id}", checkoutHandler.GetSession)
			sr.With(requireAdmin).Post("/create-product", checkoutHandler.CreateProduct)
		})

		api.Route("/auth", func(authRoutes chi.Router) {
			authRoutes.Post("/login", accountsHandler.Login)
			authRoutes.Post("/refresh", accountsHandler.Refresh)
			authRoutes.With(requireAuth).Get("/me", accountsHandler.Me)
		})
	})

	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
