// Package cmd wires the CLI: serve runs the HTTP API, migrate applies the
// schema, seed loads a demo project.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ev-energy-analytics/internal/config"
	"ev-energy-analytics/internal/controller"
	"ev-energy-analytics/internal/metrics"
	"ev-energy-analytics/internal/middleware"
	"ev-energy-analytics/internal/model"
	"ev-energy-analytics/internal/repository"
	"ev-energy-analytics/internal/service"
	"ev-energy-analytics/internal/solar"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "ev-energy-analytics",
	Short: "EV charging energy balance forecasting service",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a demo project into the database",
	RunE:  runSeed,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Project{},
		&model.GenerationConfig{},
		&model.StorageConfig{},
		&model.GridConfig{},
		&model.ChargingProfile{},
		&model.ChargingProfileBehaviour{},
		&model.ChargingHub{},
		&model.EnergyForecast{},
		&model.CostEntry{},
	)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	if err := migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	fmt.Println("✓ Schema migrated")
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	if err := migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return repository.NewSeedRepository(db).SeedDatabase()
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	if err := migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	dataset, err := solar.Load(cfg.Simulation.SolarDatasetPath)
	if err != nil {
		return fmt.Errorf("load solar dataset: %w", err)
	}

	registry := prometheus.DefaultRegisterer
	pipelineMetrics, err := metrics.NewPipelineMetrics(registry)
	if err != nil {
		return fmt.Errorf("register pipeline metrics: %w", err)
	}
	httpMetrics, err := middleware.NewHTTPMetrics(registry)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	projectRepo := repository.NewProjectRepository(db)
	forecastRepo := repository.NewForecastRepository(db)

	profileService := service.NewProfileService(projectRepo, logger)
	forecastService := service.NewForecastService(
		projectRepo,
		forecastRepo,
		dataset,
		service.ForecastOptions{
			ProjectLife: cfg.Simulation.ProjectLife,
			Location:    cfg.Simulation.Location,
		},
		logger,
		pipelineMetrics,
	)

	projectController := controller.NewProjectController(projectRepo, profileService, logger)
	analysisController := controller.NewAnalysisController(forecastService, projectRepo, forecastRepo, logger)

	router := newRouter(logger, httpMetrics, projectController, analysisController)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(
	logger *slog.Logger,
	httpMetrics *middleware.HTTPMetrics,
	projects *controller.ProjectController,
	analysis *controller.AnalysisController,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.StructuredLoggingMiddleware(logger))
	router.Use(httpMetrics.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", middleware.MetricsHandler(nil))

	v1 := router.Group("/v1")
	{
		v1.POST("/projects", projects.CreateProject)
		v1.GET("/projects", projects.ListProjects)
		v1.GET("/projects/:project_id", projects.GetProject)
		v1.DELETE("/projects/:project_id", projects.DeleteProject)

		v1.PUT("/projects/:project_id/generation", projects.PutGenerationConfig)
		v1.GET("/projects/:project_id/generation", projects.GetGenerationConfig)
		v1.PUT("/projects/:project_id/storage", projects.PutStorageConfig)
		v1.GET("/projects/:project_id/storage", projects.GetStorageConfig)
		v1.PUT("/projects/:project_id/grid", projects.PutGridConfig)
		v1.GET("/projects/:project_id/grid", projects.GetGridConfig)

		v1.GET("/projects/:project_id/hubs", projects.ListHubs)
		v1.POST("/projects/:project_id/hubs", projects.CreateHub)
		v1.PUT("/projects/:project_id/hubs/:hub_id", projects.UpdateHub)
		v1.DELETE("/projects/:project_id/hubs/:hub_id", projects.DeleteHub)

		v1.GET("/projects/:project_id/charging-profiles", projects.ListChargingProfiles)
		v1.POST("/projects/:project_id/charging-profiles", projects.CreateChargingProfile)
		v1.GET("/projects/:project_id/charging-profiles/:profile_id", projects.GetChargingProfile)
		v1.DELETE("/projects/:project_id/charging-profiles/:profile_id", projects.DeleteChargingProfile)
		v1.PUT("/projects/:project_id/charging-profiles/:profile_id/behaviour", projects.PutBehaviour)
		v1.POST("/projects/:project_id/charging-profiles/:profile_id/behaviour/calibrate", projects.CalibrateBehaviour)

		v1.POST("/projects/:project_id/costs", projects.CreateCostEntry)
		v1.GET("/projects/:project_id/costs", projects.ListCostEntries)
		v1.DELETE("/projects/:project_id/costs/:cost_id", projects.DeleteCostEntry)

		v1.POST("/projects/:project_id/analysis", analysis.RunAnalysis)
		v1.GET("/projects/:project_id/forecast", analysis.GetForecast)
		v1.GET("/projects/:project_id/forecast/flows", analysis.GetFlows)
	}

	return router
}
