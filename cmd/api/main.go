package main

import (
	"context"

	appcontext "github.com/SeakMengs/DocSign/internal/app_context"
	"github.com/SeakMengs/DocSign/internal/config"
	"github.com/SeakMengs/DocSign/internal/constant"
	"github.com/SeakMengs/DocSign/internal/controller"
	"github.com/SeakMengs/DocSign/internal/converter"
	"github.com/SeakMengs/DocSign/internal/env"
	filestorage "github.com/SeakMengs/DocSign/internal/file_storage"
	"github.com/SeakMengs/DocSign/internal/middleware"
	ratelimiter "github.com/SeakMengs/DocSign/internal/rate_limiter"
	"github.com/SeakMengs/DocSign/internal/route"
	"github.com/SeakMengs/DocSign/internal/util"
	"github.com/SeakMengs/DocSign/pkg/docsign"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func newStorage(cfg *config.Config) (filestorage.Store, error) {
	if cfg.Storage.Driver == "minio" {
		s3, err := filestorage.NewMinioClient(&cfg.Minio)
		if err != nil {
			return nil, err
		}
		return filestorage.NewMinioStore(context.Background(), s3, cfg.Minio.BUCKET)
	}

	return filestorage.NewLocalStore(cfg.Storage.LocalDir)
}

func newSigner(cfg *config.Config, logger *zap.SugaredLogger) (*docsign.Signer, error) {
	mode, err := docsign.ParseMode(cfg.Sign.DefaultMode, docsign.ModeAppend)
	if err != nil {
		return nil, err
	}

	signCfg := docsign.NewDefaultConfig()
	signCfg.FontDir = cfg.Sign.FontDir
	signCfg.LayoutPath = cfg.Sign.LayoutPath
	signCfg.DefaultMode = mode
	if cfg.Sign.TmpDir != "" {
		signCfg.TmpDir = cfg.Sign.TmpDir
	}

	signer, problems, err := docsign.LoadSigner(signCfg)
	for _, problem := range problems {
		logger.Warnf("Font skipped: %v", problem)
	}
	if err != nil {
		return nil, err
	}

	fonts := signer.Fonts()
	if fonts.FullCoverage {
		logger.Infof("Using font family %s from %s", fonts.Family, fonts.Dir)
	} else {
		logger.Warnf("No font family with diacritics found in %q, names will be ASCII folded", cfg.Sign.FontDir)
	}
	logger.Infof("Default sign mode: %s", mode)

	return signer, nil
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	logger.Debugf("Configuration: %+v \n", cfg)

	storage, err := newStorage(&cfg)
	if err != nil {
		logger.Error("Error setting up storage")
		logger.Panic(err)
	}
	logger.Infof("Storage driver: %s", cfg.Storage.Driver)

	signer, err := newSigner(&cfg, logger)
	if err != nil {
		logger.Panic(err)
	}

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := util.RegisterValidations(v); err != nil {
			logger.Panic(err)
		}
	}

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)
	app := appcontext.Application{
		Config:    &cfg,
		Logger:    logger,
		Storage:   storage,
		Converter: converter.NewSofficeConverter(cfg.Converter, logger),
		Signer:    signer,
	}

	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.IsProduction() {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadSize

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Requested-With", "Accept"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", constant.PDF_VIEW_URL_HEAD}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.RateLimiterMiddleware)

	_controller := controller.NewController(&app)

	r.GET("/", _controller.Index.Index)
	route.Documents(r, _controller.Document, _middleware)

	rApi := r.Group("/api")
	route.V1_Documents(rApi, _controller.Document, _middleware)

	if err := r.Run("0.0.0.0:" + app.Config.Port); err != nil {
		logger.Panicf("Error running server: %v \n", err)
	}
}
