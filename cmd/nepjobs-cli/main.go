package main

import (
	"context"

	"nepjobs-backend/cmd/nepjobs-cli/commands"
	"nepjobs-backend/lib/telemetry"
)

func main() {
	telemetry.InitSlog(true)
	telemetry.SetupFromEnv(context.Background(), "nepjobs-cli")
	commands.ExecuteContext(context.Background())
}
