package storage

import (
	"go.uber.org/fx"
)

var (
	Module = fx.Provide(
		NewUploader,
	)
)
