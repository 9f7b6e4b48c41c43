package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"

	"github.com/opsdesk/shiftdesk/config"
	"github.com/opsdesk/shiftdesk/db"
	"github.com/opsdesk/shiftdesk/internal/clock"
	"github.com/opsdesk/shiftdesk/internal/handlers"
	"github.com/opsdesk/shiftdesk/internal/pkg/response"
	"github.com/opsdesk/shiftdesk/internal/repositories"
	"github.com/opsdesk/shiftdesk/internal/services"
	authService "github.com/opsdesk/shiftdesk/internal/services/auth"
	"github.com/opsdesk/shiftdesk/internal/store"
)

func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	database := db.InitDB(cfg.DatabaseDSN)
	defer database.Close()

	redisClient := config.NewRedisClient()
	defer redisClient.Close()

	jwtAuth := jwtauth.New("HS256", []byte(cfg.JwtSecret), nil)
	jwtService := authService.NewJWTService(cfg.JwtSecret)

	docs := store.NewDocuments(store.NewRedisStore(redisClient))
	rosterRepo := repositories.NewRosterRepository(database)
	auditRepo := repositories.NewAuditRepository(database)

	auditSvc := services.NewAuditService(auditRepo, logger)
	hub := services.NewHub(logger)
	clk := clock.New(cfg.Timezone, docs, logger)
	tables := services.NewTableService(docs, rosterRepo, auditSvc, logger)
	ledger := services.NewLedgerService(docs, tables, auditSvc, hub, logger)
	resolver := services.NewResolver(clk, cfg.Teams, tables, hub, logger)

	authHandler := handlers.NewAuthHandler(database, jwtService)
	shiftHandler := handlers.NewShiftHandler(database, resolver, tables, ledger, clk)
	overrideHandler := handlers.NewOverrideHandler(docs)

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(jwtauth.Verifier(jwtAuth))
	router.Use(userContextMiddleware)

	// Public routes
	router.Post("/api/auth/register", authHandler.RegisterHandler)
	router.Post("/api/auth/login", authHandler.LoginHandler)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Authenticated routes
	router.Group(func(r chi.Router) {
		r.Use(jwtauth.Authenticator(jwtAuth))

		r.Get("/api/shift/current", shiftHandler.GetCurrentShift)
		r.Get("/api/shift/previous", shiftHandler.GetPreviousShift)
		r.Post("/api/shift/assign", shiftHandler.AssignCase)
		r.Post("/api/shift/confirm", shiftHandler.ConfirmAssignment)
		r.Get("/api/shift/export", handlers.ExportShiftTable(resolver))
		r.Get("/api/ws", handlers.WebSocketHandler(hub))

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(adminOnlyMiddleware)

			r.Get("/api/admin/clock-override", overrideHandler.GetOverride)
			r.Put("/api/admin/clock-override", overrideHandler.SetOverride)
			r.Delete("/api/admin/clock-override", overrideHandler.ClearOverride)
			r.Put("/api/admin/buckets", overrideHandler.SetBucketConfig)
			r.Get("/api/admin/audit", handlers.GetAuditLogHandler(auditRepo))
		})
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go resolver.Run(ctx, cfg.TickInterval)

	serverAddress := fmt.Sprintf(":%s", cfg.ServerPort)
	logger.Info("server starting", zap.String("addr", serverAddress))
	log.Fatal(http.ListenAndServe(serverAddress, router))
}

// userContextMiddleware copies the user id from the JWT claims into the
// request context so handlers can read it without touching the token.
func userContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			next.ServeHTTP(w, r)
			return
		}
		claims := token.PrivateClaims()
		var userID int
		if rawID, ok := claims["user_id"]; ok {
			switch v := rawID.(type) {
			case float64:
				userID = int(v)
			case int:
				userID = v
			case string:
				if id, err := strconv.Atoi(v); err == nil {
					userID = id
				}
			}
		}
		if userID != 0 {
			ctx := context.WithValue(r.Context(), config.UserIDKey, userID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func adminOnlyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		claims, err := token.AsMap(r.Context())
		if err != nil {
			response.RespondWithError(w, http.StatusUnauthorized, "Invalid claims")
			return
		}
		if claims["role"] != "admin" {
			response.RespondWithError(w, http.StatusForbidden, "Access denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}
