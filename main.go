package main

import (
	"carwash/client"
	"carwash/config"
	"carwash/controller"
	"carwash/cron"
	"carwash/docs"
	"carwash/repository"
	"carwash/service"
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

// @title           Car Wash Admin API
// @version         1.0
// @description     Backend API of the car wash admin dashboard.

// @contact.name   	Operations

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	t := time.Now()
	logger := config.Logger()
	defer logger.Sync()

	cfg := config.Env()
	db, err := config.InitDB(
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.DatabaseName,
	)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	var publisher service.ShiftEventPublisher
	if cfg.KafkaBroker != "" {
		writer, err := config.GetShiftWriter()
		if err != nil {
			logger.Error("Shift events will not be published", zap.Error(err))
		} else {
			publisher = service.NewKafkaShiftPublisher(writer)
		}
	}
	var notifier service.Notifier
	if cfg.DiscordBotToken != "" {
		discord, err := client.NewDiscordNotifier(cfg.DiscordBotToken, cfg.DiscordChannelID)
		if err != nil {
			logger.Error("Discord notifications disabled", zap.Error(err))
		} else {
			notifier = discord
			audit := cron.NewCategoryAudit(
				service.NewCategoryService(db),
				discord,
				time.Duration(cfg.CategoryAuditIntervalMinutes)*time.Minute,
			)
			go audit.Run(context.Background())
		}
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", zap.Error(err))
		return
	}
	addLogger(r)
	addMetrics(r)
	addDocs(r)
	setCors(r)
	controller.SetRoutes(r, db, newCacheStore(cfg), publisher, notifier)
	logger.Info("Server started", zap.Duration("startup", time.Since(t)), zap.String("port", cfg.Port))
	err = r.Run(":" + cfg.Port)
	if err != nil {
		logger.Error("Failed to start server", zap.Error(err))
	}
}

func newCacheStore(cfg *config.Config) persistence.CacheStore {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if cfg.RedisHost != "" {
		return persistence.NewRedisCache(cfg.RedisHost, cfg.RedisPassword, ttl)
	}
	return persistence.NewInMemoryStore(ttl)
}

func addLogger(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/metrics"},
		Skip: func(c *gin.Context) bool {
			return c.Request.URL.Query().Get("token") != ""
		},
	}))
}

func addMetrics(r *gin.Engine) {
	p := ginprometheus.NewPrometheus("gin")
	re := regexp.MustCompile(`\d+`)
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		url := strings.Split(c.Request.URL.String(), "?")[0]
		url = re.ReplaceAllString(url, "?")
		return strings.TrimPrefix(url, "/api")
	}
	p.MetricsPath = "/api/metrics"
	p.Use(r)
}

func addDocs(r *gin.Engine) {
	docs.SwaggerInfo.BasePath = "/api"
	r.GET("/api/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

func setCors(r *gin.Engine) {
	corsConfigGetOptions := cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	corsConfigOtherMethods := cors.Config{
		AllowOrigins: []string{
			"http://localhost",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	r.Use(func(c *gin.Context) {
		if c.Request.Method == "OPTIONS" {
			// the preflighted method decides which policy applies
			requestedMethod := c.GetHeader("Access-Control-Request-Method")
			if requestedMethod == "GET" || requestedMethod == "OPTIONS" {
				cors.New(corsConfigGetOptions)(c)
			} else {
				cors.New(corsConfigOtherMethods)(c)
			}
			c.AbortWithStatus(204)
			return
		}

		if c.Request.Method == "GET" {
			cors.New(corsConfigGetOptions)(c)
		} else {
			cors.New(corsConfigOtherMethods)(c)
		}
	})
}
