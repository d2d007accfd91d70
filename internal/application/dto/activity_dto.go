package dto

import "github.com/jhoicas/dany-shop/internal/domain/entity"

// ActivityResponse actividad reciente (más nueva primero) y no leídas.
type ActivityResponse struct {
	Items  []entity.ActivityEntry `json:"items"`
	Unread int                    `json:"noLeidas"`
}

// ThemeRequest cambio de tema de la interfaz.
type ThemeRequest struct {
	Theme string `json:"tema" validate:"required,oneof=claro oscuro"`
}
