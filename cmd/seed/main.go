package main

import (
	"context"
	"log"
	"os"
	"strings"

	"llm-chat-be/internal/bootstrap"
	"llm-chat-be/internal/config"
	"llm-chat-be/internal/dto"
	"llm-chat-be/internal/pkg/logger"
	"llm-chat-be/internal/service"
	"llm-chat-be/pkg/llm"

	"github.com/google/uuid"
)

// seed creates the mock user and stores an active key for every provider whose
// <PROVIDER>_API_KEY variable is set, e.g. OPENAI_API_KEY.
func main() {
	cfg := config.Load()
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Fatal("Error: seeding the memory store has no lasting effect, set STORE_DRIVER=postgres or sqlite")
	}

	uowFactory, _, err := bootstrap.OpenStore(cfg)
	if err != nil {
		log.Fatalf("Error: Failed to open store: %v", err)
	}

	sysLogger := logger.NewZapLogger("", false)
	ctx := context.Background()

	mockUserId, err := uuid.Parse(cfg.MockUser.Id)
	if err != nil {
		log.Fatalf("Error: invalid MOCK_USER_ID: %v", err)
	}

	log.Println("Seeding mock user...")
	userService := service.NewUserService(uowFactory, sysLogger)
	if _, err := userService.EnsureMockUser(ctx, mockUserId, cfg.MockUser.Username, cfg.MockUser.Password); err != nil {
		log.Fatalf("Error: Failed to seed mock user: %v", err)
	}

	log.Println("Seeding API keys...")
	apiKeyService := service.NewApiKeyService(uowFactory)
	for _, spec := range llm.Providers() {
		envKey := strings.ToUpper(string(spec.Provider)) + "_API_KEY"
		keyValue := os.Getenv(envKey)
		if keyValue == "" {
			continue
		}

		res, err := apiKeyService.Set(ctx, mockUserId, &dto.SetApiKeyRequest{
			Provider: string(spec.Provider),
			KeyValue: keyValue,
		})
		if err != nil {
			log.Printf("Error storing key for %s: %v", spec.Provider, err)
			continue
		}
		log.Printf("Stored key for %s: %s", spec.Provider, res.KeyValue)
	}

	log.Println("Seeding completed!")
}
