package dto

// ProductoAlertaDTO resumen de un producto para las alertas del dashboard.
type ProductoAlertaDTO struct {
	ProductoID     string `json:"producto_id"`
	Codigo         string `json:"codigo"`
	Nombre         string `json:"nombre"`
	CantidadPiezas int64  `json:"cantidad_piezas"`
	Cantidad       int64  `json:"cantidad"`
	StockMinimo    int64  `json:"stock_minimo"`
	Caducidad      string `json:"caducidad,omitempty"` // "2006-01-02"
}

// InventarioResumenDTO bloque de inventario/farmacia del dashboard.
type InventarioResumenDTO struct {
	BajoStock           []ProductoAlertaDTO `json:"bajo_stock"`
	PorCaducar          []ProductoAlertaDTO `json:"por_caducar"`
	EntradasHoy         int64               `json:"entradas_hoy"`
	SalidasHoy          int64               `json:"salidas_hoy"`
	RegistrosPendientes int64               `json:"registros_pendientes"`
}

// CirugiaResumenDTO bloque de quirófano del dashboard.
type CirugiaResumenDTO struct {
	CirugiasHoy []CirugiaResponse `json:"cirugias_hoy"`
	PorEstado   map[string]int64  `json:"por_estado"`
}

// DashboardResumenDTO respuesta de GET /api/dashboard/resumen.
// Los bloques se llenan según el rol del usuario: admin recibe ambos,
// farmacia solo Inventario, quirofano solo Cirugias.
type DashboardResumenDTO struct {
	Rol        string                `json:"rol"`
	FechaLabel string                `json:"fecha_label"` // ej: "Agosto 2026"
	Inventario *InventarioResumenDTO `json:"inventario,omitempty"`
	Cirugias   *CirugiaResumenDTO    `json:"cirugias,omitempty"`
}
