package main

import (
	"context"
	"log"

	"github.com/SoulFireMage/AIChatHistory/internal/archive"
	"github.com/SoulFireMage/AIChatHistory/internal/config"
	"github.com/SoulFireMage/AIChatHistory/internal/db"
	"github.com/SoulFireMage/AIChatHistory/internal/httpapi"
	"github.com/SoulFireMage/AIChatHistory/internal/httpapi/handlers"
	"github.com/SoulFireMage/AIChatHistory/internal/provider"
	"github.com/SoulFireMage/AIChatHistory/internal/store/rabbitmq"
	"github.com/SoulFireMage/AIChatHistory/internal/vault"
)

func main() {
	cfg := config.Load()

	gdb, err := db.Connect(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	v, err := vault.New(cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("vault: %v", err)
	}

	repo := archive.NewRepo(gdb)

	ctx := context.Background()
	if err := repo.EnsureProvider(ctx, "openai", "ChatGPT", "https://api.openai.com/v1"); err != nil {
		log.Fatalf("seed provider openai: %v", err)
	}
	if err := repo.EnsureProvider(ctx, "anthropic", "Claude", "https://api.anthropic.com/v1"); err != nil {
		log.Fatalf("seed provider anthropic: %v", err)
	}

	reg := provider.NewRegistry()
	reg.Register(provider.NewOpenAIAdapter(cfg.OpenAIBaseURL))
	reg.Register(provider.NewAnthropicAdapter(cfg.AnthropicBaseURL))

	runner := archive.NewRunner(repo, reg, v, cfg.ImportErrorCap)

	// With a broker, import jobs go to the worker process. Without one they
	// still run fire-and-forget, just in this process.
	var dispatcher archive.JobDispatcher
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			log.Fatalf("rabbit publisher: %v", err)
		}
		defer pub.Close()
		dispatcher = pub
		log.Printf("dispatching import jobs to queue=%s", cfg.RabbitQueue)
	} else {
		dispatcher = archive.NewLocalDispatcher(runner)
		log.Printf("no RABBIT_URL set, running import jobs in-process")
	}

	h := handlers.NewHandler(repo, v, dispatcher)
	r := httpapi.NewRouter(h)

	log.Printf("server listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
