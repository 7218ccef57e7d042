package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"retail-hub/config"
	"retail-hub/controllers"
	"retail-hub/libs"
	"retail-hub/middleware"
	"retail-hub/repositories"
	"retail-hub/routes"
	"retail-hub/services"
	"retail-hub/utils"
)

// App is a fully wired HTTP service.
type App struct {
	Router *gin.Engine
	closer []func()
}

// Close releases every connection opened by New.
func (a *App) Close() {
	for i := len(a.closer) - 1; i >= 0; i-- {
		a.closer[i]()
	}
}

type stores struct {
	products  services.ProductStore
	campaigns services.CampaignStore
	users     services.UserStore
	pinger    controllers.Pinger
}

type mongoPinger struct {
	client *mongo.Client
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

func (a *App) openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*stores, error) {
	switch cfg.App.StoreDriver {
	case config.DriverPostgres:
		if err := config.RunMigrations(&cfg.Database, log); err != nil {
			return nil, err
		}
		pool, err := config.ConnectDB(ctx, &cfg.Database, log)
		if err != nil {
			return nil, err
		}
		a.closer = append(a.closer, pool.Close)
		return &stores{
			products:  repositories.NewProductRepository(pool),
			campaigns: repositories.NewCampaignRepository(pool),
			users:     repositories.NewUserRepository(pool),
			pinger:    pool,
		}, nil

	case config.DriverMongo:
		client, err := config.ConnectMongo(ctx, &cfg.Mongo, log)
		if err != nil {
			return nil, err
		}
		a.closer = append(a.closer, func() { _ = client.Disconnect(context.Background()) })

		db := client.Database(cfg.Mongo.Database)
		if err := repositories.EnsureMongoIndexes(ctx, db); err != nil {
			return nil, err
		}
		return &stores{
			products:  repositories.NewMongoProductRepository(db),
			campaigns: repositories.NewMongoCampaignRepository(db),
			users:     repositories.NewMongoUserRepository(db),
			pinger:    mongoPinger{client: client},
		}, nil

	default:
		log.Warn("using in-memory store, data is lost on restart")
		mem := repositories.NewMemoryStore()
		return &stores{products: mem, campaigns: mem, users: mem, pinger: mem}, nil
	}
}

// imageStore prefers Cloudinary and reports whether images land on local disk.
func imageStore(cfg *config.Config, log *zap.Logger) (services.ImageStore, bool) {
	if cfg.Cloudinary.Enabled() {
		store, err := libs.NewCloudinaryImageStore(&cfg.Cloudinary, cfg.App.MaxUploadSize, log)
		if err == nil {
			return store, false
		}
		log.Warn("cloudinary unavailable, storing images locally", zap.Error(err))
	}
	return libs.NewLocalImageStore(cfg.App.UploadDir, cfg.App.MaxUploadSize), true
}

func campaignNotifier(cfg *config.Config, log *zap.Logger) services.CampaignNotifier {
	if !cfg.SMTP.Enabled() {
		return nil
	}
	mailer, err := libs.NewCampaignMailer(&cfg.SMTP, log)
	if err != nil {
		log.Warn("campaign notifications disabled", zap.Error(err))
		return nil
	}
	return mailer
}

// New connects the configured store and cache and builds the router.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a := &App{}
	st, err := a.openStores(ctx, cfg, log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.App.StoreDriver, err)
	}

	redisClient := config.ConnectRedis(ctx, &cfg.Redis, log)
	if redisClient != nil {
		a.closer = append(a.closer, func() { _ = redisClient.Close() })
	}
	cache := repositories.NewListCache(redisClient, time.Duration(cfg.Redis.CacheTTL)*time.Second, log)

	tokens := utils.NewTokenManager(cfg.JWT.Secret, utils.ParseExpiry(cfg.JWT.Expiry))
	authService := services.NewAuthService(st.users, tokens, &cfg.App, log)
	if cfg.App.AdminEmail != "" {
		if err := authService.EnsureAdmin(ctx, cfg.App.AdminEmail, cfg.App.AdminPassword); err != nil {
			log.Warn("failed to bootstrap admin account", zap.Error(err))
		}
	}

	productService := services.NewProductService(st.products, cache, log)
	campaignService := services.NewCampaignService(st.campaigns, cache, campaignNotifier(cfg, log), log)
	images, local := imageStore(cfg, log)
	adminService := services.NewAdminService(productService, campaignService, images, log)
	storefrontService := services.NewStorefrontService(productService, campaignService, log)

	uploadDir := ""
	if local {
		if err := os.MkdirAll(cfg.App.UploadDir, os.ModePerm); err != nil {
			log.Warn("failed to create upload directory", zap.String("dir", cfg.App.UploadDir), zap.Error(err))
		} else {
			uploadDir = cfg.App.UploadDir
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORSMiddleware(cfg.App.AllowedOrigins))

	routes.SetupRoutes(router, routes.Handlers{
		Auth:          controllers.NewAuthController(authService, log),
		Products:      controllers.NewProductController(productService, adminService, log),
		Campaigns:     controllers.NewCampaignController(campaignService, adminService, log),
		Storefront:    controllers.NewStorefrontController(storefrontService, log),
		Health:        controllers.NewHealthController(st.pinger, cfg.App.StoreDriver, log),
		Authenticator: authService,
		UploadDir:     uploadDir,
	})

	a.Router = router
	return a, nil
}
