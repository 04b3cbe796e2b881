package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/prelimpro/prelimpro-backend/config"
	"github.com/prelimpro/prelimpro-backend/internal/audit"
	"github.com/prelimpro/prelimpro-backend/internal/bootstrap"
	"github.com/prelimpro/prelimpro-backend/internal/projects"
	"github.com/prelimpro/prelimpro-backend/internal/push"
	"github.com/prelimpro/prelimpro-backend/internal/reminders"
)

// The scan runs nightly at 02:00 UTC. One pass is also run at startup so a
// restarted worker never misses a day.
const reminderSpec = "0 0 2 * * *"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN})
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

	svc := reminders.NewService(
		projects.NewRepo(pool),
		reminders.NewMarkerRepo(rdb),
		push.NewClient(cfg.Push.ExpoURL, cfg.Push.AccessToken),
		audit.NewRepo(sqlDB),
		cfg.App.ReminderDays,
	)

	runScan := func() {
		scanCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()

		sent, err := svc.Scan(scanCtx, time.Now().UTC())
		if err != nil {
			log.Printf("reminder scan failed: %v", err)
			return
		}
		log.Printf("reminder scan done, sent=%d", sent)
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(reminderSpec, runScan); err != nil {
		log.Fatalf("cron: %v", err)
	}

	runScan()
	c.Start()
	log.Printf("reminder worker started, schedule=%q window=%dd", reminderSpec, cfg.App.ReminderDays)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	cronCtx := c.Stop()
	<-cronCtx.Done()
	log.Println("reminder worker stopped")
}
