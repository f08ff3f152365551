package main

import (
	"context"
	"net/http"

	"pharmacy-duty-api/internal/config"
	"pharmacy-duty-api/internal/dutydate"
	"pharmacy-duty-api/internal/handler"
	"pharmacy-duty-api/internal/regions"
	"pharmacy-duty-api/internal/repository"
	"pharmacy-duty-api/internal/service"

	_ "pharmacy-duty-api/docs"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title        Pharmacy Duty API
// @version      1.0
// @description  Locates on-duty pharmacies for the effective roster date and ranks them by proximity.
// @BasePath     /api
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	location, err := config.Location()
	if err != nil {
		log.Fatal().Err(err).Str("timezone", config.DutyTimezone).Msg("cannot load duty timezone")
	}

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewRepository(conn)
	resolver := dutydate.NewResolver(location, config.DutyCutoffHour)
	regionTable := regions.Default()

	directoryService := service.NewDirectoryService(repo, regionTable, resolver)
	proximityService := service.NewProximityService(repo, resolver)

	cityHandler := handler.NewCityHandler(directoryService)
	districtHandler := handler.NewDistrictHandler(directoryService)
	pharmacyHandler := handler.NewPharmacyHandler(directoryService)
	proximityHandler := handler.NewProximityHandler(proximityService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/api")
	api.GET("/cities", cityHandler.ListCities)
	api.GET("/districts", districtHandler.ListDistricts)
	api.GET("/pharmacies", pharmacyHandler.ListPharmacies)
	api.GET("/pharmacies/closest", proximityHandler.Closest)
	api.GET("/pharmacies/nearby", proximityHandler.Nearby)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.Run(config.ServerAddress)
}
