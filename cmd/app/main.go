package main

import (
	"vidstream/internal/app"
	"vidstream/pkg/config"
)

// @title           vidstream API
// @version         1.0
// @description     Video platform backend: registration, token-based auth, channel profiles and watch history.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Refuse to run on the placeholder secrets
	if cfg.AccessTokenSecret == "change-me-access-secret" || cfg.RefreshTokenSecret == "change-me-refresh-secret" {
		panic("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set in environment variables")
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}
