package main

import (
	"log"

	"trends-backend/config"
	"trends-backend/database"
	"trends-backend/handlers"
	"trends-backend/scheduler"
	"trends-backend/services"
	"trends-backend/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}

	stopwords, err := utils.LoadStopwords(cfg.StopwordsPath)
	if err != nil {
		log.Fatalf("Stopword loading failed: %v", err)
	}
	log.Printf("Loaded %d stopwords from %s", len(stopwords), cfg.StopwordsPath)

	annotator := services.NewVnCoreNLPService(cfg)
	keywordService := services.NewKeywordService(db, cfg, annotator, stopwords)
	trendingService := services.NewTrendingService(db, cfg, keywordService)
	ingestService := services.NewIngestService(db, cfg)
	newsService := services.NewNewsService(db, cfg)

	// Recomputation and ingest run off the request-serving path; readers
	// only ever touch the precomputed snapshots.
	sched := scheduler.New()
	sched.Add("feed_ingest", cfg.FeedRefreshInterval, ingestService.FetchFeeds)
	sched.Add("global_trending", cfg.GlobalRefreshInterval, trendingService.PrecomputeGlobal)
	sched.Add("category_trending", cfg.CategoryRefreshInterval, trendingService.PrecomputeCategories)
	sched.Start()
	defer sched.Stop()

	keywordHandler := handlers.NewKeywordHandler(trendingService, cfg.RecentWindowDays, cfg.MaxGlobalKeywords)
	newsHandler := handlers.NewNewsHandler(newsService)

	r := gin.Default()
	api := r.Group("/api")
	{
		api.GET("/trending_keywords", keywordHandler.GetTrendingKeywords)
		api.GET("/keywords_by_category", keywordHandler.GetKeywordsByCategory)
		api.GET("/keywords_by_time", keywordHandler.GetKeywordsByTime)
		api.GET("/top_10_keywords", keywordHandler.GetTop10Keywords)
		api.GET("/top_keywords", keywordHandler.GetTopKeywords)

		api.GET("/news/categories", newsHandler.GetCategories)
		api.GET("/news", newsHandler.GetByCategory)
		api.GET("/news/search", newsHandler.Search)
		api.GET("/news/all", newsHandler.GetAll)
	}

	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
