package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lats-hub/repairgo/internal/config"
	"github.com/lats-hub/repairgo/internal/database"
	"github.com/lats-hub/repairgo/internal/drafts"
	"github.com/lats-hub/repairgo/internal/handlers"
	"github.com/lats-hub/repairgo/internal/lifecycle"
	"github.com/lats-hub/repairgo/internal/models"
	"github.com/lats-hub/repairgo/internal/services/ai"
	"github.com/lats-hub/repairgo/internal/services/sms"
	"github.com/lats-hub/repairgo/internal/storage"
	"github.com/lats-hub/repairgo/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.UserAuth{},
		&models.Customer{},
		&models.PointsTransaction{},
		&models.Device{},
		&models.StatusTransition{},
		&models.WorkSession{},
		&models.Payment{},
		&models.FinanceAccount{},
		&models.Attachment{},
		&models.Rating{},
		&models.Remark{},
		&models.AuditLog{},
		&models.SMSLog{},
		&models.SMSOutbox{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// Default cash account so payments work on a fresh install
	db.Where(models.FinanceAccount{Name: "Cash"}).
		FirstOrCreate(&models.FinanceAccount{Name: "Cash", Currency: "TZS"})

	// 4. Service wiring
	hub := websocket.NewHub()
	go hub.Run()

	draftStore := drafts.New(cfg.Redis.Addr)

	fileStore, err := storage.New(cfg.Storage.AttachmentDir)
	if err != nil {
		log.Fatalf("Failed to init attachment storage: %v", err)
	}

	smsClient := sms.NewClient(cfg.SMS)
	if !smsClient.Configured() {
		log.Println("⚠️ SMS gateway not configured, customer notifications will queue")
	}
	outbox := sms.NewOutbox(db, smsClient)

	var aiClient *ai.Client
	if cfg.AI.GeminiAPIKey != "" {
		aiClient, err = ai.NewClient(context.Background(), cfg.AI.GeminiAPIKey, cfg.AI.Model)
		if err != nil {
			log.Printf("⚠️ AI: Failed to init Gemini client: %v", err)
		} else {
			log.Println("✅ AI: Repair suggestions enabled")
			defer aiClient.Close()
		}
	}

	router := handlers.NewRouter(db, handlers.Deps{
		Config: cfg,
		Hub:    hub,
		Drafts: draftStore,
		Files:  fileStore,
		SMS:    smsClient,
		Outbox: outbox,
		AI:     aiClient,
	})

	// 5. SMS outbox retry worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				if err := outbox.ProcessPending(workerCtx); err != nil {
					log.Printf("SMS Outbox Worker Error: %v", err)
				}
			}
		}
	}()
	log.Println("✅ SMS: Outbox retry worker started")

	// 5b. Overdue scan: push open devices past their expected return date
	// to the dashboards so the front desk sees them without reloading.
	go func() {
		ticker := time.NewTicker(15 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				var overdue []models.Device
				err := db.Where("expected_return_date < ? AND status NOT IN ?",
					time.Now(), []lifecycle.DeviceStatus{lifecycle.StatusDone, lifecycle.StatusFailed}).
					Find(&overdue).Error
				if err != nil {
					log.Printf("Overdue Scan Error: %v", err)
					continue
				}
				for _, d := range overdue {
					hub.Notify(websocket.Notification{
						Type:     "device.overdue",
						DeviceID: d.ID,
						Payload: map[string]interface{}{
							"status":    d.Status,
							"countdown": lifecycle.CountdownTo(*d.ExpectedReturnDate, time.Now()),
						},
					})
				}
			}
		}
	}()
	log.Println("✅ Overdue scan worker started")

	// 6. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on port %s [%s]\n", cfg.Port, cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	stopWorker()

	// Create context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Close database (this also stops embedded PostgreSQL)
	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
