package main

import (
	"github.com/relatiq-ai/newsgraph/backend/internal/server"
	"github.com/relatiq-ai/newsgraph/backend/internal/util"
	"github.com/relatiq-ai/newsgraph/backend/pkg/logger"
	"github.com/relatiq-ai/newsgraph/backend/pkg/logger/console"

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
