package dto

// ErrorResponse cuerpo de error HTTP. Property y EntityID van solo en
// errores de validación; Size/Requested/Available solo en stock insuficiente.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Property  string `json:"property,omitempty"`
	EntityID  string `json:"entity_id,omitempty"`
	Size      string `json:"size,omitempty"`
	Requested int    `json:"requested,omitempty"`
	Available int    `json:"available,omitempty"`
}
