package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tabletalk-service/internal/domain/entity"
	"tabletalk-service/internal/domain/repository"
	"tabletalk-service/internal/infrastructure/config"
	"tabletalk-service/internal/infrastructure/oauth"
	"tabletalk-service/internal/infrastructure/persistence"
	"tabletalk-service/internal/infrastructure/router"
	storeRepo "tabletalk-service/internal/interface/repository"
	"tabletalk-service/internal/usecase"
	"tabletalk-service/pkg/logger"
	"tabletalk-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Tabletalk Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up the reservation store
	var reservationRepo repository.ReservationRepository
	var mongoClient *mongo.Client

	switch cfg.StoreBackend {
	case "postgres":
		log.Info("Connecting to PostgreSQL")
		gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN, &storeRepo.Reservations{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		reservationRepo = storeRepo.NewGormReservationRepository(gormDB, log)
	default:
		log.Info("Connecting to MongoDB")
		var db *mongo.Database
		mongoClient, db, err = persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		reservationRepo = storeRepo.NewMongoReservationRepository(db, log)
	}

	// Load the restaurant fact sheet
	factSheet, err := os.ReadFile(cfg.FactSheetPath)
	if err != nil {
		log.Fatal("Failed to read fact sheet", "path", cfg.FactSheetPath, "error", err)
	}

	// Set up the knowledge source
	var knowledgeRepo repository.KnowledgeRepository
	if cfg.OpenAIAPIKey != "" {
		knowledgeRepo = storeRepo.NewOpenAIKnowledgeRepository(cfg.OpenAIAPIKey, cfg.OpenAIModel, string(factSheet), log)
	} else {
		log.Warn("No OpenAI API key configured, answering from the fact sheet directly")
		knowledgeRepo = storeRepo.NewFileKnowledgeRepository(string(factSheet), log)
	}

	// Set up front-desk notifications
	var frontdeskRepo repository.FrontdeskRepository
	if cfg.GmailClientID != "" && cfg.GmailClientSecret != "" && cfg.GmailRefreshToken != "" && cfg.FrontdeskInbox != "" {
		gmailOAuth := oauth.NewGmailOAuth(cfg.GmailClientID, cfg.GmailClientSecret, cfg.GmailRefreshToken, log)
		frontdeskRepo, err = storeRepo.NewGmailFrontdeskRepository(ctx, gmailOAuth.GetTokenSource(ctx), cfg.FrontdeskInbox, log)
		if err != nil {
			log.Fatal("Failed to create front desk notifier", "error", err)
		}
	} else {
		frontdeskRepo = storeRepo.NewNoopFrontdeskRepository(log)
	}

	// Set up the dialogue pipeline
	m := metrics.NewMetrics("tabletalk")
	hoursOracle := usecase.NewHoursOracle(knowledgeRepo, log)
	availability := usecase.NewAvailabilityChecker(hoursOracle, log)
	dispatcher := usecase.NewDispatcher(reservationRepo, availability, knowledgeRepo, frontdeskRepo, m, log,
		cfg.DuplicatePolicy, cfg.EnforceHoursCheck)
	sessions := usecase.NewSessionManager(dispatcher, log)
	intentRouter := router.NewIntentRouter(log)

	// Schedule the nightly purge of expired reservations
	sweeper := usecase.NewSweeper(reservationRepo, log)
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.SweepSchedule, func() {
		if _, err := sweeper.PurgeExpired(ctx, time.Now()); err != nil {
			m.ErrorsCount.WithLabelValues("sweep").Inc()
		}
	})
	if err != nil {
		log.Fatal("Invalid sweep schedule", "schedule", cfg.SweepSchedule, "error", err)
	}
	scheduler.Start()

	// Set up the HTTP server: turn endpoint for the transport layer plus
	// metrics and health
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	mux.HandleFunc("POST /turn", handleTurn(sessions, intentRouter, log))
	mux.HandleFunc("POST /session/close", handleSessionClose(sessions))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	scheduler.Stop()
	sessions.CloseAll()
	cancel()

	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	log.Info("Tabletalk Service stopped")
}

type turnPayload struct {
	SessionID string `json:"session_id"`
	Intent    string `json:"intent,omitempty"`
	Utterance string `json:"utterance,omitempty"`
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
	Guests    int    `json:"guests,omitempty"`
}

type turnReply struct {
	Reply          string          `json:"reply"`
	State          string          `json:"state"`
	HasReservation bool            `json:"has_reservation"`
	Verdict        *entity.Verdict `json:"verdict,omitempty"`
}

func handleTurn(sessions *usecase.SessionManager, intents *router.IntentRouter, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload turnPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if payload.SessionID == "" {
			http.Error(w, "session_id is required", http.StatusBadRequest)
			return
		}

		intent := usecase.Intent(payload.Intent)
		if intent == "" {
			intent = intents.Route(payload.Utterance)
		}

		resp, err := sessions.Submit(r.Context(), payload.SessionID, &usecase.TurnRequest{
			Intent:    intent,
			Utterance: payload.Utterance,
			Name:      payload.Name,
			Phone:     payload.Phone,
			Date:      payload.Date,
			Time:      payload.Time,
			Guests:    payload.Guests,
		})
		if err == entity.ErrSessionClosed {
			http.Error(w, "session closed", http.StatusGone)
			return
		}
		if err != nil {
			log.Error("Turn processing failed", "session", payload.SessionID, "error", err)
			http.Error(w, "turn processing failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(turnReply{
			Reply:          resp.Reply,
			State:          resp.State,
			HasReservation: resp.HasReservation,
			Verdict:        resp.Verdict,
		})
	}
}

func handleSessionClose(sessions *usecase.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			SessionID string `json:"session_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.SessionID == "" {
			http.Error(w, "session_id is required", http.StatusBadRequest)
			return
		}
		sessions.Close(payload.SessionID)
		w.WriteHeader(http.StatusNoContent)
	}
}
