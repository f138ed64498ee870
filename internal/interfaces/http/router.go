package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicadelvalle/ops-api/internal/application/analytics"
	"github.com/clinicadelvalle/ops-api/internal/application/auth"
	"github.com/clinicadelvalle/ops-api/internal/application/cirugia"
	"github.com/clinicadelvalle/ops-api/internal/application/farmacia"
	"github.com/clinicadelvalle/ops-api/internal/application/inventario"
	"github.com/clinicadelvalle/ops-api/internal/application/reportes"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductoUC   *inventario.ProductoUseCase
	MovimientoUC *inventario.RegistrarMovimientoUseCase
	FarmaciaUC   *farmacia.PendientesUseCase
	CirugiaUC    *cirugia.CirugiaUseCase
	DashboardUC  *analytics.DashboardUseCase
	ReportesUC   *reportes.ReportesUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
//
// Acceso por rol: productos, movimientos y farmacia son de farmacia (y admin);
// cirugías son de quirofano (y admin); el dashboard es de cualquier usuario
// autenticado y cada quien ve solo su bloque.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, registro solo admin.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos (farmacia)
	productos := protected.Group("/productos", RequireRole(entity.RoleFarmacia))
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Post("/", productoHandler.Create)
	productos.Get("/", productoHandler.List)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", productoHandler.Update)
	productos.Delete("/:id", productoHandler.Delete)
	productos.Post("/:id/imagen", productoHandler.SubirImagen)

	// Movimientos de stock (farmacia)
	movimientos := protected.Group("/movimientos", RequireRole(entity.RoleFarmacia))
	movimientoHandler := NewMovimientoHandler(deps.MovimientoUC)
	movimientos.Post("/", movimientoHandler.Registrar)
	movimientos.Get("/", movimientoHandler.List)

	// Registros pendientes de farmacia
	farmaciaGroup := protected.Group("/farmacia", RequireRole(entity.RoleFarmacia))
	farmaciaHandler := NewFarmaciaHandler(deps.FarmaciaUC)
	farmaciaGroup.Post("/registros", farmaciaHandler.CrearRegistro)
	farmaciaGroup.Get("/registros", farmaciaHandler.List)
	farmaciaGroup.Post("/registros/:id/fotos", farmaciaHandler.SubirFoto)
	farmaciaGroup.Post("/registros/:id/resolver", farmaciaHandler.MarcarResuelto)

	// Cirugías (quirófano)
	cirugias := protected.Group("/cirugias", RequireRole(entity.RoleQuirofano))
	cirugiaHandler := NewCirugiaHandler(deps.CirugiaUC)
	cirugias.Post("/", cirugiaHandler.Programar)
	cirugias.Get("/", cirugiaHandler.List)
	cirugias.Get("/:id", cirugiaHandler.GetByID)
	cirugias.Post("/:id/estado", cirugiaHandler.CambiarEstado)
	cirugias.Post("/:id/orden", cirugiaHandler.SubirOrdenFoto)

	// Dashboard (cualquier usuario autenticado; el bloque depende del rol)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/resumen", dashboardHandler.Resumen)

	// Reportes PDF
	reportesHandler := NewReportesHandler(deps.ReportesUC)
	reportesGroup := protected.Group("/reportes")
	reportesGroup.Get("/inventario", RequireRole(entity.RoleFarmacia), reportesHandler.Inventario)
	reportesGroup.Get("/cirugias", RequireRole(entity.RoleQuirofano), reportesHandler.ProgramaCirugias)
}
