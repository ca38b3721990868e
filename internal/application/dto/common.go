package dto

// ErrorResponse cuerpo estándar de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Detalle numérico del rechazo por disponibilidad, cuando aplica.
	MaterialID string `json:"material_id,omitempty"`
	Requested  int64  `json:"requested,omitempty"`
	Available  int64  `json:"available,omitempty"`
}
