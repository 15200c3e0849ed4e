package main

import (
	_ "pinboard/docs"
	"pinboard/internal/config"
	"pinboard/internal/logger"
	"pinboard/internal/server"

	"github.com/rs/zerolog/log"
)

// @title           Pinboard API
// @version         1.0
// @description     Pin images, collect them on boards, comment and like.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token. Browsers use the session_token cookie instead.

// @schemes http
func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Server initialization failed")
	}

	s.Run()
}
