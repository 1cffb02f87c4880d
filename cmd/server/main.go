// Reference authentication backend for the login dialog.
//
// It serves POST /auth/login, POST /auth/logout, GET /auth/me and GET /health.
package main

import (
	"github.com/andrasnagy-data/authdialog/internal/components/auth"
	"github.com/andrasnagy-data/authdialog/internal/server"
	"github.com/andrasnagy-data/authdialog/internal/shared/config"
	"github.com/andrasnagy-data/authdialog/internal/shared/database"
	"github.com/andrasnagy-data/authdialog/internal/shared/logging"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fx.Provide(
			config.NewConfig,
			logging.NewLogger,
			database.NewPgxPool,
			server.NewServer,
			server.NewHealthSrvc,
			server.NewHealthHandler,
			auth.NewRepo,
			auth.NewAuthService,
			fx.Annotate(auth.NewRouter, fx.ResultTags(`name:"authRouter"`)),
		),
		fx.Invoke(server.Register),
	).Run()
}
