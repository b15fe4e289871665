// Command migrate aplica o revierte las migraciones embebidas.
//
//	migrate up       aplica todas las pendientes
//	migrate down     revierte la última
//	migrate version  muestra la versión aplicada
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/Facturador-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Facturador-api/pkg/config"
	"github.com/jhoicas/Facturador-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: migrate up|down|version")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("migrate")

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir migrador")
	}
	defer m.Close()

	switch cmd := os.Args[1]; cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
	default:
		log.Fatal().Str("command", cmd).Msg("comando desconocido")
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("migración fallida")
	}

	v, dirty, err := m.Version()
	if err != nil {
		log.Fatal().Err(err).Msg("leer versión")
	}
	log.Info().Uint("version", v).Bool("dirty", dirty).Msg("estado de migraciones")
}
