package main

import (
	"github.com/skyatlas/missionq/internal/server"
	"github.com/skyatlas/missionq/internal/util"
	"github.com/skyatlas/missionq/pkg/logger"
	"github.com/skyatlas/missionq/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
