package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinica/historias/internal/config"
	"github.com/clinica/historias/internal/domain/curso"
	"github.com/clinica/historias/internal/domain/historia"
	"github.com/clinica/historias/internal/platform/db"
	"github.com/clinica/historias/internal/platform/middleware"
	"github.com/clinica/historias/internal/platform/openapi"
	"github.com/clinica/historias/pkg/respond"
)

const version = "1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "historias-server",
		Short: "API de Historias Clínicas",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Apply pending migrations on boot so a fresh database is usable
	// without a separate step.
	migrator := db.NewMigrator(pool, "./migrations")
	if count, err := migrator.Up(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	} else if count > 0 {
		logger.Info().Int("applied", count).Msg("migrations applied")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Unmatched routes and echo-level errors share the JSON envelope.
	e.HTTPErrorHandler = httpErrorHandler(logger)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	// Domain routes
	historiaHandler := historia.NewHandler(historia.NewService(historia.NewRepoPG(pool)))
	historiaHandler.RegisterRoutes(e.Group("/historias-clinicas"))

	cursoHandler := curso.NewHandler(curso.NewService(curso.NewRepoPG(pool)))
	cursoHandler.RegisterRoutes(e.Group("/cursos"))

	// API documentation
	docs := newDocsGenerator()
	docs.RegisterRoutes(e.Group("/api-docs"))

	// API info
	e.GET("/api", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "API de Historias Clínicas",
			"version": version,
			"endpoints": map[string]string{
				"listar":        "GET /historias-clinicas",
				"obtener":       "GET /historias-clinicas/:id",
				"buscar":        "GET /historias-clinicas/cedula/:cedula",
				"crear":         "POST /historias-clinicas",
				"actualizar":    "PUT /historias-clinicas/:id",
				"eliminar":      "DELETE /historias-clinicas/:id",
				"documentacion": "GET /api-docs",
			},
		})
	})

	// Health check
	e.GET("/health", db.HealthHandler(pool, version))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// httpErrorHandler maps echo-level errors, including unmatched routes,
// onto the JSON response envelope.
func httpErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		message := "Error interno del servidor"
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			if s, ok := he.Message.(string); ok {
				message = s
			}
		}
		if status == http.StatusNotFound {
			message = "Ruta no encontrada"
		}
		if err := respond.Fail(c, status, message); err != nil {
			logger.Error().Err(err).Msg("failed to write error response")
		}
	}
}

func newDocsGenerator() *openapi.Generator {
	g := openapi.NewGenerator("API de Historias Clínicas", version)

	edadMin, edadMax := 0, 150
	g.AddResource(openapi.Resource{
		Name:  "HistoriaClinica",
		Path:  "/historias-clinicas",
		Title: "historia clínica",
		Fields: []openapi.Field{
			{Name: "paciente_nombre", Type: "string", Required: true, MaxLen: 200},
			{Name: "paciente_edad", Type: "integer", Required: true, Min: &edadMin, Max: &edadMax},
			{Name: "paciente_cedula", Type: "string", Required: true, MaxLen: 50},
			{Name: "fecha_consulta", Type: "date", Required: true},
			{Name: "sintomas", Type: "string", Nullable: true},
			{Name: "diagnostico", Type: "string", Required: true},
			{Name: "tratamiento", Type: "string", Required: true},
			{Name: "medico", Type: "string", Required: true, MaxLen: 200},
			{Name: "observaciones", Type: "string", Nullable: true},
		},
		SecondaryKey: "cedula",
	})

	duracionMin, duracionMax := 1, 1000
	g.AddResource(openapi.Resource{
		Name:  "Curso",
		Path:  "/cursos",
		Title: "curso",
		Fields: []openapi.Field{
			{Name: "nombre", Type: "string", Required: true, MaxLen: 200},
			{Name: "descripcion", Type: "string", Nullable: true},
			{Name: "duracion_horas", Type: "integer", Required: true, Min: &duracionMin, Max: &duracionMax},
			{Name: "profesor", Type: "string", Required: true, MaxLen: 200},
		},
	})

	return g
}
