package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/clinicadelvalle/ops-api/internal/application/analytics"
	"github.com/clinicadelvalle/ops-api/internal/application/auth"
	appcirugia "github.com/clinicadelvalle/ops-api/internal/application/cirugia"
	"github.com/clinicadelvalle/ops-api/internal/application/farmacia"
	"github.com/clinicadelvalle/ops-api/internal/application/inventario"
	"github.com/clinicadelvalle/ops-api/internal/application/reportes"
	infrapdf "github.com/clinicadelvalle/ops-api/internal/infrastructure/pdf"
	"github.com/clinicadelvalle/ops-api/internal/infrastructure/postgres"
	"github.com/clinicadelvalle/ops-api/internal/infrastructure/storage"
	httpRouter "github.com/clinicadelvalle/ops-api/internal/interfaces/http"
	"github.com/clinicadelvalle/ops-api/pkg/config"
	"github.com/clinicadelvalle/ops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		App:   cfg.App.Name,
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}

	fotoStorage, err := storage.NewLocalFotoStorage(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de uploads")
	}

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	movimientoRepo := postgres.NewMovimientoRepository(pool)
	farmaciaRepo := postgres.NewFarmaciaRepository(pool)
	cirugiaRepo := postgres.NewCirugiaRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productoUC := inventario.NewProductoUseCase(productoRepo, fotoStorage)
	movimientoUC := inventario.NewRegistrarMovimientoUseCase(txRunner, movimientoRepo)
	farmaciaUC := farmacia.NewPendientesUseCase(farmaciaRepo, fotoStorage)
	cirugiaUC := appcirugia.NewCirugiaUseCase(cirugiaRepo, txRunner, fotoStorage)
	dashboardUC := analytics.NewDashboardUseCase(dashboardRepo)

	// Reportes PDF: corte de inventario y programa de quirófano
	pdfGenerator := infrapdf.NewMarotoReporteGenerator(cfg.App.Name)
	reportesUC := reportes.NewReportesUseCase(productoRepo, cirugiaRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.Uploads.MaxMB * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Clínica Ops API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Fotos de evidencia, órdenes quirúrgicas e imágenes de producto
	app.Static("/uploads", cfg.Uploads.Dir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductoUC:   productoUC,
		MovimientoUC: movimientoUC,
		FarmaciaUC:   farmaciaUC,
		CirugiaUC:    cirugiaUC,
		DashboardUC:  dashboardUC,
		ReportesUC:   reportesUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
