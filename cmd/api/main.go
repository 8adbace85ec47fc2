// @title Step Counter API
// @description API for the personal step counter and weight-loss tracker "Stride"
// @schemes http
package main

import (
	"log"

	"github.com/limbo/stride/internal/api"
	"github.com/limbo/stride/internal/repository"
	"github.com/limbo/stride/internal/service"
	"github.com/limbo/stride/pkg/cleanup"
	"github.com/limbo/stride/pkg/config"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	if err := repository.Migrate(&dbCfg, cfg.GetStringOrDefault("MIGRATIONS_DIR", "./migrations")); err != nil {
		log.Fatal("migrations error: " + err.Error())
	}
	stepsRepo := repository.NewStepsRepo(&dbCfg)
	goalsRepo := repository.NewGoalsRepo(&dbCfg)
	serv := api.New(&api.ServicesList{
		StepsService:     service.NewStepsService(stepsRepo),
		DashboardService: service.NewDashboardService(stepsRepo, goalsRepo),
	}, cfg.GetString("FRONTEND_ORIGINS"))
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
	cleanup.CleanUp()
}
