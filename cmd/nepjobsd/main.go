package main

import (
	"context"
	"log/slog"
	"time"

	"nepjobs-backend/lib/configutil"
	configsqlite "nepjobs-backend/lib/configutil/sqlite"
	"nepjobs-backend/lib/jobstore"
	"nepjobs-backend/lib/jobstore/db"
	"nepjobs-backend/lib/serviceutil"
	"nepjobs-backend/lib/telemetry"
	"nepjobs-backend/services/pipeline"
)

type Config struct {
	Database configsqlite.Struct `json:"database"`
	// hours between pipeline runs, defaults to a weekly cadence
	IntervalHours int `json:"interval_hours"`
}

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.InitSlog(false)

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.IntervalHours <= 0 {
		config.IntervalHours = 24 * 7
	}

	database, err := config.Database.OpenDB(db.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	t, err := telemetry.SetupFromEnv(ctx, "nepjobsd")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	p, err := pipeline.New(jobstore.NewStore(database), pipeline.Options{})
	if err != nil {
		serviceutil.Fatal("failed to construct pipeline", err)
	}

	interval := time.Duration(config.IntervalHours) * time.Hour
	slog.InfoContext(ctx, "starting scheduler", "interval", interval)

	p.RunAll(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.RunAll(ctx)
		}
	}
}
