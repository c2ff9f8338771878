package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	rdb "github.com/redis/go-redis/v9"

	"github.com/Zee-2005/safara-sub000/internal/cache"
	memcache "github.com/Zee-2005/safara-sub000/internal/cache/memory"
	rediscache "github.com/Zee-2005/safara-sub000/internal/cache/redis"
	"github.com/Zee-2005/safara-sub000/internal/config"
	"github.com/Zee-2005/safara-sub000/internal/credential"
	"github.com/Zee-2005/safara-sub000/internal/document/blobstore"
	"github.com/Zee-2005/safara-sub000/internal/document/extract"
	verifctrl "github.com/Zee-2005/safara-sub000/internal/http/controllers/verification"
	"github.com/Zee-2005/safara-sub000/internal/http/router"
	verifsvc "github.com/Zee-2005/safara-sub000/internal/http/services/verification"
	"github.com/Zee-2005/safara-sub000/internal/metrics"
	"github.com/Zee-2005/safara-sub000/internal/notify"
	"github.com/Zee-2005/safara-sub000/internal/observability/logger"
	"github.com/Zee-2005/safara-sub000/internal/rate"
	"github.com/Zee-2005/safara-sub000/internal/security/secretbox"
	"github.com/Zee-2005/safara-sub000/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (optional; env-only without it)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		// a broken .env is worth knowing about, a missing one is not
		os.Stderr.WriteString("warning: could not load .env: " + err.Error() + "\n")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	key, err := cfg.MasterKey()
	if err != nil {
		log.Fatal("master key", logger.Err(err))
	}
	box, err := secretbox.New(key)
	if err != nil {
		log.Fatal("cipher init", logger.Err(err))
	}

	blobs, err := blobstore.New(cfg.Content.Dir, box)
	if err != nil {
		log.Fatal("blob store init", logger.Err(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := store.Open(ctx, store.Config{
		Driver:        cfg.Storage.Driver,
		MongoURI:      cfg.Storage.Mongo.URI,
		MongoDatabase: cfg.Storage.Mongo.Database,
		PostgresDSN:   cfg.Storage.Postgres.DSN,
	})
	if err != nil {
		log.Fatal("store open", logger.Err(err))
	}
	defer func() { _ = repo.Close(context.Background()) }()

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		log.Fatal("metrics register", logger.Err(err))
	}

	var engine extract.Engine
	if !cfg.OCR.Disabled {
		engine = &extract.TesseractCLI{Binary: cfg.OCR.Binary, Lang: cfg.OCR.Language}
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.SMTP.Host != "" {
		s := notify.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password)
		s.TLSMode = cfg.SMTP.TLS
		s.InsecureSkipVerify = cfg.SMTP.InsecureSkipVerify
		notifier = s
	}

	var issuer *credential.Issuer
	if cfg.Credential.SigningKey != "" {
		issuer = credential.NewIssuer([]byte(cfg.Credential.SigningKey), cfg.Credential.Issuer, cfg.CredentialTTL())
	}

	svc := verifsvc.NewService(repo, blobs, extract.New(engine), notifier, issuer)

	var uploadLimiter, verifyLimiter rate.Limiter
	if cfg.Rate.Enabled {
		var c cache.Cache
		if cfg.Cache.Kind == "redis" {
			client := rdb.NewClient(&rdb.Options{Addr: cfg.Cache.Redis.Addr, DB: cfg.Cache.Redis.DB})
			c = rediscache.New(client, cfg.Cache.Redis.Prefix)
		} else {
			ttl, _ := time.ParseDuration(cfg.Cache.Memory.DefaultTTL)
			c = memcache.New(ttl)
		}
		uw, _ := time.ParseDuration(cfg.Rate.Upload.Window)
		vw, _ := time.ParseDuration(cfg.Rate.Verify.Window)
		uploadLimiter = rate.NewWindowLimiter(c, "rl:upload:", cfg.Rate.Upload.Limit, uw)
		verifyLimiter = rate.NewWindowLimiter(c, "rl:verify:", cfg.Rate.Verify.Limit, vw)
	}

	handler := router.New(router.Deps{
		Controllers:   verifctrl.NewControllers(svc),
		Repo:          repo,
		UploadLimiter: uploadLimiter,
		VerifyLimiter: verifyLimiter,
	})

	srv := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// verify is OCR-backed and can take seconds
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			logger.String("addr", cfg.Server.Addr),
			logger.String("driver", cfg.Storage.Driver),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", logger.Err(err))
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", logger.Err(err))
		}
	}
}
