package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse confirmación simple para operaciones sin cuerpo propio.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoadingResponse cuerpo de 202 mientras el contexto de auth del cliente resuelve su perfil.
type LoadingResponse struct {
	Loading bool `json:"loading"`
}

// ListResponse envoltura de listados.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewList arma un ListResponse; nunca serializa items como null.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}
