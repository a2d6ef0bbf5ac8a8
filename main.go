package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/K-naman-T/techex-ai/config"
	"github.com/K-naman-T/techex-ai/controller"
	"github.com/K-naman-T/techex-ai/services"
	"github.com/K-naman-T/techex-ai/store"

	"github.com/gin-gonic/gin"
	"google.golang.org/genai"
)

func main() {
	cfg := config.New()

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to open datastore: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("Warning: Failed to close datastore: %v", err)
		}
	}()

	// Without a Gemini key the server still boots: retrieval degrades to
	// empty context and chat surfaces a credentials error per request.
	var embedder services.Embedder = services.NewUnconfiguredEmbedder()
	var generator services.Generator = services.NewUnconfiguredGenerator()
	if cfg.GeminiAPIKey == "" {
		log.Println("WARN: GEMINI_API_KEY is not set; chat and retrieval are disabled.")
	} else {
		geminiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			log.Fatalf("FATAL: Failed to create Gemini client: %v", err)
		}
		log.Println("Successfully connected to Google Gemini.")
		embedder = services.NewGeminiEmbedder(geminiClient, cfg.EmbeddingModel)
		generator = services.NewGeminiGenerator(geminiClient, cfg.ChatModel)
	}

	knowledge := services.NewKnowledgeService(cfg.KnowledgePath, embedder)
	if err := knowledge.Reload(context.Background()); err != nil {
		log.Printf("WARN: Could not load knowledge base: %v", err)
	}
	go knowledge.Watch(context.Background())

	authenticator := services.NewAuthenticator(st, cfg.GuestMode)
	authService := services.NewAuthService(st)
	chatService := services.NewChatService(generator, knowledge, st, cfg.HistoryWindow, cfg.RetrievalTopK)
	ttsService := services.NewTTSService(httpClient, services.TTSConfig{
		GoogleAPIKey:     cfg.GoogleTTSAPIKey,
		ElevenLabsAPIKey: cfg.ElevenLabsAPIKey,
		AzureKey:         cfg.AzureSpeechKey,
		AzureRegion:      cfg.AzureSpeechRegion,
		DefaultProvider:  cfg.VoiceProvider,
	})

	chatController := controller.NewChatController(chatService, knowledge, authenticator)
	ttsController := controller.NewTTSController(ttsService)
	authController := controller.NewAuthController(authService, authenticator, st)
	conversationController := controller.NewConversationController(authenticator, st)

	router := gin.Default()

	// CORS middleware for the kiosk frontend dev server.
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "TechEx Avatar API",
			"version": "1.0.0",
		})
	})

	api := router.Group("/api")
	{
		api.POST("/chat", chatController.Chat)
		api.GET("/context", chatController.Context)
		api.POST("/tts", ttsController.Synthesize)
		api.POST("/auth/signup", authController.Signup)
		api.POST("/auth/login", authController.Login)
		api.GET("/user/config", authController.GetUserConfig)
		api.POST("/user/config", authController.SaveUserConfig)
		api.GET("/conversations", conversationController.List)
		api.POST("/conversations", conversationController.Create)
		api.GET("/conversations/:id/messages", conversationController.Messages)
	}

	// Serve the built frontend, falling back to index.html for SPA routes.
	router.NoRoute(func(c *gin.Context) {
		path := filepath.Join(cfg.StaticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}
		index := filepath.Join(cfg.StaticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
		c.JSON(404, gin.H{"error": "not found"})
	})

	log.Printf("TechEx Avatar backend starting on http://localhost:%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("FATAL: Failed to start server: %v", err)
	}
}
