package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/harrylevesque/storefront/internal/api"
	"github.com/harrylevesque/storefront/internal/auth"
	"github.com/harrylevesque/storefront/internal/certs"
	"github.com/harrylevesque/storefront/internal/files"
	"github.com/harrylevesque/storefront/internal/metrics"
	"github.com/harrylevesque/storefront/internal/shop"
	"github.com/harrylevesque/storefront/internal/utils"
)

func main() {
	cfg, err := utils.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log, err := utils.NewLogger(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("build logger")
	}

	svc := shop.New(shop.Options{
		HashPasswords:    cfg.HashPasswords,
		AllowAdminSignup: cfg.AllowAdminSignup,
		Logger:           log,
	})

	if cfg.SeedFile != "" {
		seed, err := files.ReadSeedFile(cfg.SeedFile)
		if err != nil {
			log.WithError(err).Fatal("read seed file")
		}
		users, products, err := seed.Apply(svc)
		if err != nil {
			log.WithError(err).Fatal("apply seed file")
		}
		log.WithFields(logrus.Fields{"users": users, "products": products}).Info("seed data loaded")
	}

	opts := api.RouterOptions{
		Logger:         log,
		Metrics:        metrics.New(),
		AllowedOrigins: cfg.AllowedOrigins,
	}
	if cfg.RateLimitRPS > 0 {
		liveSession := func(tok auth.Token) bool {
			return auth.IsAuthenticated(svc.Identify(tok))
		}
		limiter := api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, liveSession, log)
		go func() {
			for range time.Tick(time.Minute) {
				if dropped := limiter.Cleanup(10 * time.Minute); dropped > 0 {
					log.WithField("dropped", dropped).Debug("idle rate limit buckets evicted")
				}
			}
		}()
		opts.RateLimiter = limiter
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(svc, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.TLSEnabled() {
		cm := certs.NewCertManager(cfg.TLSCertFile, cfg.TLSKeyFile)
		tlsCfg, cert, err := cm.TLSConfig()
		if err != nil {
			log.WithError(err).Fatal("load TLS certificate")
		}
		if cm.ExpiresWithin(cert, 30*24*time.Hour) {
			log.WithField("not_after", cert.NotAfter).Warn("TLS certificate expires within 30 days")
		}
		srv.TLSConfig = tlsCfg
	}

	go func() {
		log.WithFields(logrus.Fields{"addr": cfg.Addr, "tls": cfg.TLSEnabled()}).Info("server running")
		var err error
		if cfg.TLSEnabled() {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("serve")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown")
	}
	log.Info("server stopped")
}
