package main

import (
	stdLog "log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/libhub/library-service/app"
	"github.com/libhub/library-service/config"
)

// @title		Library Management API
// @version	1.0
// @description	Book catalog, user accounts and the borrow/return lifecycle.
//
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Println("no .env file loaded:", err)
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)

	app.Run(cfg)
}
