package main

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/giveshare/giveshare-back/internal/auth"
	"github.com/giveshare/giveshare-back/internal/config"
	"github.com/giveshare/giveshare-back/internal/db"
	"github.com/giveshare/giveshare-back/internal/service"
	"github.com/giveshare/giveshare-back/internal/storage"
	"github.com/giveshare/giveshare-back/internal/transport"
)

func main() {
	app := fx.New(
		config.Module,
		db.Module,
		auth.Module,
		storage.Module,
		service.Module,
		transport.Module,
		fx.Provide(
			func() (*zap.SugaredLogger, error) {
				l, err := zap.NewProduction()
				if err != nil {
					return nil, err
				}
				return l.Sugar(), nil
			},
		),
		fx.Invoke(func(server *transport.HTTPServer) {}),
	)

	app.Run()
}
