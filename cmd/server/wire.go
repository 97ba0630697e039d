//go:build wireinject
// +build wireinject

package main

import (
	"database/sql"

	"github.com/google/wire"

	"marketplace/config"
	"marketplace/internal/api"
	"marketplace/internal/auth"
	"marketplace/internal/email"
)

func InitializeServer(db *sql.DB, cfg *config.Config) *api.Server {
	wire.Build(email.Set, auth.Set, api.Set)
	return nil
}
