package dto

type ActualizarPerfilRequest struct {
	NombreNegocio string `json:"nombre_negocio" validate:"required,min=2,max=120"`
}

type PerfilResponse struct {
	ID            string `json:"id"`
	NombreNegocio string `json:"nombre_negocio"`
}
