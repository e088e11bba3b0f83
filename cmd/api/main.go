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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/ai"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/auth"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/booking"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/cache"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/config"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/handlers"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/middleware"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/notifications"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/repo"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/seed"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/store"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var recordStore store.Store
	switch cfg.StoreDriver {
	case "memory":
		recordStore = store.NewMemory()
		logger.Info("memory store in use")
	default:
		client, mongoStore, err := store.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Error("mongo connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("mongo connected")
		defer client.Disconnect(context.Background())
		recordStore = mongoStore
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected", slog.String("addr", cfg.RedisAddr))
		cacheStore = redisCache
	}

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "mi-peluqueria-api",
		}
	}

	var channels []notifications.Channel
	if wa := notifications.NewWhatsAppChannel(cfg.WhatsAppNumber, logger); wa != nil {
		channels = append(channels, wa)
	}
	if brevo := notifications.NewBrevoChannel(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.BrevoSandbox); brevo != nil {
		logger.Info("brevo mailer enabled", slog.String("sender", cfg.BrevoSenderEmail), slog.Bool("sandbox", cfg.BrevoSandbox))
		channels = append(channels, brevo)
	} else {
		logger.Info("brevo mailer disabled")
	}
	notifier := notifications.NewDispatcher(logger, channels...)

	gemini := ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	if gemini == nil {
		logger.Info("ai consultant disabled")
	} else {
		logger.Info("ai consultant enabled", slog.String("model", cfg.GeminiModel))
	}

	catalog := repo.NewCatalog(recordStore)
	gallery := repo.NewGallery(recordStore)
	hours := repo.NewHours(recordStore, seed.DefaultHours())
	brand := repo.NewBrand(recordStore, seed.DefaultBrand())
	admins := repo.NewAdmins(recordStore, cfg.MasterAdminEmail)

	bookingService, err := booking.New(ctx, recordStore, hours, catalog, cfg.Timezone)
	if err != nil {
		logger.Error("booking ledger load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	server := &handlers.Server{
		Cfg:      cfg,
		Booking:  bookingService,
		Catalog:  catalog,
		Gallery:  gallery,
		Hours:    hours,
		Brand:    brand,
		Admins:   admins,
		Val:      validation.New(),
		JWT:      jwtManager,
		Log:      logger,
		Cache:    cacheStore,
		Notifier: notifier,
		AI:       gemini,
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	appointmentsLimiter := middleware.NewRateLimiter(cfg.RateLimitAppointments, time.Duration(cfg.RateLimitWindowSec)*time.Second)
	consultantLimiter := middleware.NewRateLimiter(cfg.RateLimitConsultant, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	r.Route("/api", func(api chi.Router) {
		api.Get("/services", server.GetServices)
		api.Get("/availability", server.GetAvailability)
		api.With(appointmentsLimiter.Middleware).Post("/appointments", server.CreateAppointment)
		api.Get("/appointments/{id}", server.GetAppointment)
		api.Get("/gallery", server.GetGallery)
		api.Get("/brand", server.GetBrand)
		api.Get("/hours", server.GetHours)
		api.With(consultantLimiter.Middleware).Post("/consultant/style", server.ConsultStyle)
		api.With(consultantLimiter.Middleware).Post("/consultant/face", server.ConsultFaceShape)

		api.Route("/admin", func(admin chi.Router) {
			admin.Post("/login", server.AdminLogin)
			admin.Post("/refresh", server.AdminRefresh)
			admin.Post("/logout", server.AdminLogout)

			// chi requires middlewares before routes, so protected
			// endpoints live in their own sub-router.
			admin.Group(func(protected chi.Router) {
				protected.Use(middleware.AdminAuth(cfg.AdminAPIKey, jwtManager))
				protected.Get("/appointments", server.AdminListAppointments)
				protected.Patch("/appointments/{id}/status", server.AdminUpdateAppointmentStatus)
				protected.Post("/services", server.AdminCreateService)
				protected.Put("/services/{id}", server.AdminUpdateService)
				protected.Delete("/services/{id}", server.AdminDeleteService)
				protected.Post("/gallery", server.AdminCreateGalleryItem)
				protected.Delete("/gallery/{id}", server.AdminDeleteGalleryItem)
				protected.Put("/hours", server.AdminPutHours)
				protected.Put("/brand", server.AdminPutBrand)
				protected.Get("/admins", server.AdminListAdmins)
				protected.Post("/admins", server.AdminAddAdmin)
				protected.Delete("/admins", server.AdminRemoveAdmin)
			})
		})
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
