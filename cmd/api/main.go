package main

import (
	"bizinsights/db"
	"bizinsights/internal/config"
	"bizinsights/internal/handler"
	"bizinsights/internal/repository"
	"bizinsights/pkg/llm"
	"bizinsights/pkg/news"
	"context"
	"log"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.Migrate(ctx, db.DB)
	if err != nil {
		log.Fatalf("error migrating DB: %v", err)
	}

	err = db.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	completer, err := llm.NewCompleter(ctx, cfg.LLMProvider, llm.Keys{
		Gemini:      cfg.GeminiAPIKey,
		GeminiModel: cfg.GeminiModel,
		OpenAI:      cfg.OpenAIAPIKey,
		Anthropic:   cfg.AnthropicAPIKey,
	})
	if err != nil {
		log.Fatalf("error creating LLM client: %v", err)
	}
	summarizer := llm.NewSummarizer(completer)
	slog.Info("summarization model", "provider", cfg.LLMProvider, "model", completer.Model())

	opts := handler.Options{
		CacheTTL:           cfg.NewsCacheTTL,
		SummaryConcurrency: cfg.SummaryConcurrency,
	}
	if db.Redis != nil {
		opts.Cache = repository.NewCacheRepository(db.Redis, db.CacheKeyPrefix)
	} else {
		slog.Info("REDIS_URL not set, response caching disabled")
	}

	newsAPI := news.NewNewsAPIClient(cfg.NewsAPIKey, cfg.NewsAPIURL, news.HeadlineQuery{
		Country:  cfg.NewsCountry,
		Category: cfg.NewsCategory,
	})
	finnhub := news.NewFinnHubClient(cfg.FinnhubAPIKey)

	userRepo := repository.NewUserRepository(db.DB)
	newsRepo := repository.NewNewsRepository(db.DB)
	headlineRepo := repository.NewHeadlineRepository(db.DB)

	healthHandler := handler.NewHealthHandler(db.DB)
	newsHandler := handler.NewNewsHandler(newsAPI, summarizer, newsRepo, opts)
	stockHandler := handler.NewStockHandler(finnhub, summarizer, opts)
	userHandler := handler.NewUserHandler(userRepo)
	aiHandler := handler.NewAIHandler(summarizer)
	headlineHandler := handler.NewHeadlineHandler(headlineRepo)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000", "http://localhost:5173"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/", healthHandler.GetRoot)

	api := r.Group("/api")

	api.GET("/health", healthHandler.GetHealth)

	api.GET("/news", newsHandler.GetNews)
	api.POST("/news/save", newsHandler.SaveNews)
	api.POST("/news/like", newsHandler.LikeNews)
	api.GET("/news/:id", newsHandler.GetNewsByID)

	api.GET("/stocks/news/:symbol", stockHandler.GetStockNews)
	api.GET("/stocks/symbols", stockHandler.GetSymbols)
	api.GET("/stocks/price/:symbol", stockHandler.GetPrice)
	api.GET("/stocks/quote/:symbol", stockHandler.GetQuote)

	api.POST("/users", userHandler.CreateUser)
	api.GET("/users/:uid", userHandler.GetUser)
	api.GET("/users/:uid/saved-news", userHandler.GetSavedNews)
	api.GET("/users/:uid/liked-news", userHandler.GetLikedNews)
	api.PUT("/users/:uid/profile", userHandler.UpdateProfile)

	api.POST("/ai/summarize", aiHandler.Summarize)

	api.GET("/headlines", headlineHandler.GetBuckets)
	api.GET("/headlines/:bucket", headlineHandler.GetHeadlines)

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
