package main

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	storage_go "github.com/supabase-community/storage-go"

	_ "github.com/jackc/pgx/v5/stdlib"

	"referral-platform/internal/config"
	"referral-platform/internal/handlers"
	"referral-platform/internal/identity"
	"referral-platform/internal/middleware"
	"referral-platform/internal/store"
	"referral-platform/internal/tables"
	ws "referral-platform/internal/websocket"
)

func main() {
	log.Println("Starting referral platform server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	db, err := sqlx.Connect("pgx", cfg.DSN)
	if err != nil {
		log.Fatal("cannot connect to database:", err)
	}
	defer db.Close()
	log.Println("Successfully connected to Postgres!")

	dataStore := store.New(db)

	// Anon-key client for user flows, service-key client for admin ops.
	anonAuth := identity.NewGoTrueProvider(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	adminAuth := identity.NewGoTrueProvider(cfg.SupabaseURL, cfg.SupabaseServiceKey)
	identitySvc := identity.NewService(anonAuth, adminAuth)

	storageClient := storage_go.NewClient(cfg.SupabaseURL+"/storage/v1", cfg.SupabaseServiceKey, nil)
	rowAPI := tables.New(cfg.SupabaseURL, cfg.SupabaseAnonKey)

	hub := ws.NewHub()
	go hub.Run()

	r := gin.Default()

	if cfg.AllowedOrigins != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	authHandler := handlers.NewAuthHandler(identitySvc, storageClient)
	leadHandler := handlers.NewLeadHandler(dataStore, hub)
	campaignHandler := handlers.NewCampaignHandler(dataStore)
	earningHandler := handlers.NewEarningHandler(dataStore)
	payoutHandler := handlers.NewPayoutHandler(dataStore, cfg.IrisAPIKey, hub)
	disputeHandler := handlers.NewDisputeHandler(dataStore, hub)
	activityHandler := handlers.NewActivityHandler(dataStore)
	analyticsHandler := handlers.NewAnalyticsHandler(dataStore)
	myDataHandler := handlers.NewMyDataHandler(rowAPI)
	wsHandler := handlers.NewWebSocketHandler(cfg.JWTSecret, hub)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.GET("/oauth/:provider", authHandler.OAuthRedirect)
		}

		api.POST("/webhook/payout", payoutHandler.HandlePayoutNotification)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			protected.POST("/auth/logout", authHandler.Logout)
			protected.POST("/auth/phone/send", authHandler.SendPhoneCode)
			protected.POST("/auth/phone/verify", authHandler.VerifyPhone)
			protected.GET("/me", authHandler.Me)
			protected.PATCH("/me", authHandler.UpdateMe)
			protected.POST("/me/avatar", authHandler.UploadAvatar)

			protected.GET("/leads", leadHandler.GetLeads)
			protected.GET("/leads/:id", leadHandler.GetLead)
			protected.POST("/leads", leadHandler.CreateLead)
			protected.PATCH("/leads/:id", leadHandler.UpdateLead)

			protected.GET("/campaigns", campaignHandler.GetCampaigns)
			protected.GET("/campaigns/:id", campaignHandler.GetCampaign)
			protected.POST("/campaigns", middleware.RequireRole("business", "admin"), campaignHandler.CreateCampaign)
			protected.PATCH("/campaigns/:id", middleware.RequireRole("business", "admin"), campaignHandler.UpdateCampaign)

			protected.GET("/earnings", earningHandler.GetEarnings)
			protected.GET("/earnings/referrer/:referrerId", earningHandler.GetEarningsByReferrer)

			protected.GET("/payouts", payoutHandler.GetPayouts)
			protected.POST("/payouts", payoutHandler.RequestPayout)
			protected.GET("/payout-methods", payoutHandler.GetPayoutMethods)
			protected.POST("/payout-methods", payoutHandler.CreatePayoutMethod)
			protected.PATCH("/payout-methods/:id/default", payoutHandler.SetDefaultPayoutMethod)
			protected.DELETE("/payout-methods/:id", payoutHandler.DeletePayoutMethod)

			protected.GET("/disputes", disputeHandler.GetDisputes)
			protected.GET("/disputes/:id", disputeHandler.GetDispute)
			protected.POST("/disputes", middleware.RequireRole("business", "admin"), disputeHandler.CreateDispute)
			protected.PATCH("/disputes/:id", disputeHandler.UpdateDispute)

			protected.GET("/activities", activityHandler.GetActivities)

			protected.GET("/analytics/overview", analyticsHandler.Overview)
			protected.GET("/analytics/performance", analyticsHandler.Performance)

			my := protected.Group("/my")
			{
				my.GET("/leads", myDataHandler.MyLeads)
				my.GET("/campaigns", myDataHandler.MyCampaigns)
				my.GET("/earnings", myDataHandler.MyEarnings)
				my.GET("/earnings/summary", myDataHandler.MyEarningsSummary)
				my.GET("/payouts", myDataHandler.MyPayouts)
			}
		}
	}

	r.GET("/ws", wsHandler.ServeWs)

	log.Println("Server starting on http://localhost:" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("could not start server:", err)
	}
}
