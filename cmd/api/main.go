package main

import (
	"context"
	"log"
	"time"

	"github.com/prelimpro/prelimpro-backend/config"
	"github.com/prelimpro/prelimpro-backend/internal/auth"
	"github.com/prelimpro/prelimpro-backend/internal/bootstrap"
	"github.com/prelimpro/prelimpro-backend/internal/storage/s3"

	fbauth "firebase.google.com/go/v4/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:       cfg.Database.DSN,
		ConnectTO: 5 * time.Second,
		PingTO:    2 * time.Second,
	})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	sqlDB, err := bootstrap.OpenSQLDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatalf("postgres (sql): %v", err)
	}
	defer sqlDB.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	var authClient *fbauth.Client
	if cfg.Firebase.CredentialsPath != "" {
		authClient, err = auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
	} else if cfg.App.Environment == "development" {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, running with header-based dev auth")
	} else {
		log.Fatal("FIREBASE_CREDENTIALS_PATH is required outside development")
	}

	store, err := s3.NewStore(ctx, cfg.Storage.Bucket, cfg.Storage.Region)
	if err != nil {
		log.Fatalf("s3: %v", err)
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Cfg:        cfg,
		DB:         pool,
		SQLDB:      sqlDB,
		Redis:      rdb,
		AuthClient: authClient,
		Store:      store,
	})

	log.Printf("prelimpro-backend %s listening on :%s", cfg.App.Version, cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
