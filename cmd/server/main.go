package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"drivergate/internal/audit"
	driverhandler "drivergate/internal/driver/handler"
	drivermetrics "drivergate/internal/driver/metrics"
	"drivergate/internal/driver/sequence"
	"drivergate/internal/driver/service"
	driverstore "drivergate/internal/driver/store"
	"drivergate/internal/platform/config"
	"drivergate/internal/platform/httpserver"
	"drivergate/internal/platform/logger"
	platformredis "drivergate/internal/platform/redis"
	httptransport "drivergate/internal/transport/http"
	"drivergate/internal/upload"
)

// main wires stores, the identifier sequence, the audit pipeline, and
// the HTTP surface. Empty DRIVERGATE_POSTGRES_URL selects the in-memory
// stack so the service runs with zero infrastructure locally.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	var (
		drivers    driverstore.DriverStore
		auditStore audit.Store
		issuer     sequence.Issuer
		health     = map[string]httptransport.Pinger{}
	)

	if cfg.PostgresURL != "" {
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			log.Error("failed to open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := pingDB(db); err != nil {
			log.Error("postgres unreachable", "error", err)
			os.Exit(1)
		}
		drivers = driverstore.NewPostgres(db)
		auditStore = audit.NewPostgresStore(db)
		issuer = sequence.NewPostgres(db)
		health["postgres"] = dbPinger{db: db}
	} else {
		drivers = driverstore.NewInMemory()
		auditStore = audit.NewInMemoryStore()
		issuer = sequence.NewInMemory()
	}

	rds, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if rds != nil {
		defer rds.Close()
		issuer = sequence.NewRedis(rds.Client)
		health["redis"] = rds
	}

	var blobs upload.BlobStore
	if cfg.UploadDir != "" {
		disk, err := upload.NewDiskStore(cfg.UploadDir)
		if err != nil {
			log.Error("failed to prepare upload dir", "error", err)
			os.Exit(1)
		}
		blobs = disk
	} else {
		blobs = upload.NewInMemoryStore()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	publisher := audit.NewChannelPublisher(256, log)
	worker := audit.NewWorker(auditStore, publisher.Inbox(), log)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Run(ctx)
	}()

	svc := service.New(drivers, issuer,
		service.WithLogger(log),
		service.WithAuditPublisher(publisher),
		service.WithMetrics(drivermetrics.New()),
	)

	gateway := upload.NewGateway(blobs, cfg.PublicBaseURL, log)

	router := httptransport.NewRouter(httptransport.Deps{
		Log:     log,
		Drivers: driverhandler.New(svc, log),
		Uploads: upload.NewHandler(gateway),
		Health:  health,
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	<-workerDone
}

type dbPinger struct {
	db *sql.DB
}

func (p dbPinger) Health(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func pingDB(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}
