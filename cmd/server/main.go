package main

import (
	"log"

	"laptop-ledger/internal/ai"
	"laptop-ledger/internal/auth"
	"laptop-ledger/internal/config"
	"laptop-ledger/internal/database"
	"laptop-ledger/internal/handlers"
	"laptop-ledger/internal/repository"
	"laptop-ledger/internal/services"
)

func main() {
	cfg := config.Load()

	s, err := database.OpenStore(cfg.StoreDriver, cfg.DataDir, cfg.DBDSN)
	if err != nil {
		log.Fatal("Failed to open the data store: ", err)
	}
	defer s.Close()

	repos := repository.NewRepositories(s)
	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Fatal("Invalid JWT settings: ", err)
	}

	h := &handlers.Handler{
		Services: services.New(repos),
		Repos:    repos,
		Tokens:   tokens,
		Config:   cfg,
	}

	// --- FEATURE FLAG: Admin Registration ---
	if cfg.AllowRegistration {
		log.Println("⚠️ WARNING: Registration route is OPEN. Disable this in production!")
	} else {
		log.Println("🔒 Registration route is safely DISABLED.")
	}

	if cfg.GeminiAPIKey != "" {
		h.Assistant = ai.NewAssistant(cfg.GeminiAPIKey, cfg.GeminiModel, ai.NewTools(repos, nil))
		log.Println("🤖 Assistant enabled (" + cfg.GeminiModel + ")")
	}

	r := h.Router()

	log.Println("🚀 Server starting on " + cfg.BaseURL)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
