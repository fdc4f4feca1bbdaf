package dto

type CrearClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=120"`
	Correo    *string `json:"correo"    validate:"omitempty,email"`
	Telefono  *string `json:"telefono"  validate:"omitempty,max=30"`
	Direccion *string `json:"direccion" validate:"omitempty,max=200"`
}

type ActualizarClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=120"`
	Correo    *string `json:"correo"    validate:"omitempty,email"`
	Telefono  *string `json:"telefono"  validate:"omitempty,max=30"`
	Direccion *string `json:"direccion" validate:"omitempty,max=200"`
}

type ClienteFilter struct {
	Busqueda string `form:"busqueda"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type ClienteResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Correo    *string `json:"correo"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
	CreatedAt string  `json:"created_at"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
