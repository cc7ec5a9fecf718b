package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"threatscape/data_engine"
	"threatscape/internal/config"
	"threatscape/internal/enhancer"
	"threatscape/internal/server"
	"threatscape/internal/websocket"
)

// Version is set at compile time
var Version = "dev"

func main() {
	log.Println("╔════════════════════════════════════════════════════════════════╗")
	log.Println("║       Threatscape - Cyber Graph Enhancement & Analytics        ║")
	log.Println("║     Synthetic Threats • Risk Scoring • Attack Path Insight     ║")
	log.Println("╚════════════════════════════════════════════════════════════════╝")

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found or failed to load, using environment variables only")
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	cfg := config.Load()
	log.Println("✅ Configuration loaded successfully")

	validator := &config.DefaultSettingsValidator{}
	if err := validator.Validate(cfg); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// A nonzero seed makes enhancement runs reproducible.
	var enh *enhancer.Enhancer
	if cfg.RandomSeed != 0 {
		log.Printf("🎲 Using fixed random seed %d", cfg.RandomSeed)
		enh = enhancer.NewEnhancerWithSource(enhancer.NewSeededSource(cfg.RandomSeed))
	} else {
		enh = enhancer.NewEnhancer()
	}
	orchestrator := enhancer.NewOrchestrator(enh)
	log.Println("✅ Enhancement pipeline initialized successfully")

	wsManager := websocket.NewWebSocketManager()
	log.Println("✅ WebSocket manager initialized successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var producer *data_engine.EventProducer
	if cfg.DataEngine.Enable && cfg.DataEngine.EnableKafka {
		log.Println("📈 Connecting event producer to Kafka...")
		producer = data_engine.NewEventProducer(data_engine.EventProducerConfig{
			KafkaBrokers: cfg.DataEngine.KafkaBrokers,
			Topic:        cfg.DataEngine.KafkaTopic,
			ClientID:     cfg.DataEngine.ClientID,
		})
		if err := producer.Connect(ctx); err != nil {
			log.Printf("⚠️  Kafka connection failed: %v. Continuing without event streaming.", err)
			producer = nil
		} else {
			log.Println("✅ Event producer connected successfully")
			defer producer.Close()
		}
	} else {
		log.Println("ℹ️  Event streaming disabled in configuration")
	}

	engine := server.NewEngine(cfg, orchestrator, wsManager, producer)

	printStartupBanner(cfg)

	if err := server.Start(ctx, engine); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}

	log.Println("👋 Threatscape stopped")
}

// printStartupBanner prints the startup information banner
func printStartupBanner(cfg *config.Config) {
	log.Println("╔════════════════════════════════════════════════════════════════╗")
	log.Println("║                   🚀 Starting Threatscape 🚀                   ║")
	log.Printf("║  🌐 Server: http://localhost:%d", cfg.ServerPort)
	log.Printf("║  📊 Metrics: http://localhost:%d/metrics", cfg.ServerPort)
	log.Printf("║  🔗 WebSocket: ws://localhost:%d/ws", cfg.ServerPort)
	log.Println("╚════════════════════════════════════════════════════════════════╝")
}
