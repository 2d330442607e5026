package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"` // campo -> regla violada
}

// PeriodDTO mes calendario de un listado o reporte.
type PeriodDTO struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	StartDate string `json:"start_date"` // primer día del mes
	EndDate   string `json:"end_date"`   // último día del mes
}

// MonthQuery parámetros year/month comunes a listados y reportes.
type MonthQuery struct {
	Year        int    `query:"year"`
	Month       int    `query:"month"`
	Marketplace string `query:"marketplace"` // vacío o "Todos" = sin filtro
}
