package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/tmvalente/escala/internal/config"
	"github.com/tmvalente/escala/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg    *config.Config
	DB     *postgres.DB
	Logger *zap.Logger
	Ctx    context.Context
}
