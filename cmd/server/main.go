package main

import (
	"github.com/Verridian-ai/legal-gsw/internal/server"
	"github.com/Verridian-ai/legal-gsw/internal/util"
	"github.com/Verridian-ai/legal-gsw/pkg/logger"
	"github.com/Verridian-ai/legal-gsw/pkg/logger/console"
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
