package models

// Rol es una enumeración cerrada; todo valor desconocido queda sin permisos.
type Rol string

const (
	RolAdmin    Rol = "admin"
	RolPaciente Rol = "paciente"
)

type Permiso string

const (
	PermisoGestionCatalogo Permiso = "gestion_catalogo"
	PermisoGestionUsuarios Permiso = "gestion_usuarios"
	PermisoVerReportes     Permiso = "ver_reportes"
)

var permisosPorRol = map[Rol][]Permiso{
	RolAdmin:    {PermisoGestionCatalogo, PermisoGestionUsuarios, PermisoVerReportes},
	RolPaciente: {},
}

func (r Rol) Valida() bool {
	_, ok := permisosPorRol[r]
	return ok
}

func (r Rol) Puede(p Permiso) bool {
	for _, tiene := range permisosPorRol[r] {
		if tiene == p {
			return true
		}
	}
	return false
}
