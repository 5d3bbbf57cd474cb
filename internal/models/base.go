package models

type UsuarioLogin struct {
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
	Codigo   string `json:"codigo"`
}

type UsuarioRegistro struct {
	Nombres         string `json:"nombres" validate:"required"`
	Apellidos       string `json:"apellidos" validate:"required"`
	Telefono        string `json:"telefono" validate:"required"`
	Correo          string `json:"correo" validate:"required,email"`
	FechaNacimiento string `json:"fecha_nacimiento" validate:"required,datetime=2006-01-02"`
	IDTipoSangre    int    `json:"id_tipo_sangre" validate:"required"`
	Usuario         string `json:"usuario" validate:"required,min=4"`
	Password        string `json:"password" validate:"required,min=6"`
}

// UsuarioBD representa lo que viene de la base de datos al autenticar.
type UsuarioBD struct {
	ID         int
	Nombres    string
	Password   string
	Rol        Rol
	TOTPSecret string
}

type UsuarioListado struct {
	ID      int    `json:"id"`
	Nombres string `json:"nombres"`
	Correo  string `json:"correo"`
	Usuario string `json:"usuario"`
	Rol     Rol    `json:"rol"`
}

type TipoSangre struct {
	ID   int    `json:"id"`
	Tipo string `json:"tipo"`
}

type Patologia struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type Horario struct {
	ID   int    `json:"id"`
	Hora string `json:"hora"`
}

type CarritoEntrada struct {
	ID          int    `json:"id"`
	IDPatologia int    `json:"id_patologia"`
	Patologia   string `json:"patologia"`
	Fecha       string `json:"fecha"`
	IDHorario   int    `json:"id_horario"`
	Hora        string `json:"hora"`
}

type CarritoAlta struct {
	IDPatologia int    `json:"id_patologia" validate:"required"`
	Fecha       string `json:"fecha" validate:"required,datetime=2006-01-02"`
	IDHorario   int    `json:"id_horario" validate:"required"`
}

type CarritoBaja struct {
	Fecha string `json:"fecha" validate:"required"`
	Hora  string `json:"hora" validate:"required"`
}

// HorarioOcupado es un par (fecha, hora) para el bloqueo de calendario.
type HorarioOcupado struct {
	Fecha string `json:"fecha"`
	Hora  string `json:"hora"`
}

type FacturarSolicitud struct {
	Subtotal float64 `json:"subtotal" validate:"required,gt=0"`
	IVA      float64 `json:"iva" validate:"gte=0"`
	Total    float64 `json:"total" validate:"required,gt=0"`
}

type Cita struct {
	ID        int     `json:"id"`
	Usuario   string  `json:"usuario"`
	Patologia string  `json:"patologia"`
	Fecha     string  `json:"fecha"`
	Hora      string  `json:"hora"`
	Precio    float64 `json:"precio"`
}

type Factura struct {
	ID       int     `json:"id"`
	Folio    string  `json:"folio"`
	Usuario  string  `json:"usuario"`
	Fecha    string  `json:"fecha"`
	Subtotal float64 `json:"subtotal"`
	IVA      float64 `json:"iva"`
	Total    float64 `json:"total"`
}

type FacturaLinea struct {
	Patologia string  `json:"patologia"`
	Fecha     string  `json:"fecha"`
	Hora      string  `json:"hora"`
	Precio    float64 `json:"precio"`
}

type FacturaDetalle struct {
	ID       int            `json:"id"`
	Folio    string         `json:"folio"`
	Cliente  string         `json:"cliente"`
	Fecha    string         `json:"fecha"`
	Subtotal float64        `json:"subtotal"`
	IVA      float64        `json:"iva"`
	Total    float64        `json:"total"`
	Lineas   []FacturaLinea `json:"lineas"`
}

type SoporteAlta struct {
	Asunto  string `json:"asunto" validate:"required"`
	Mensaje string `json:"mensaje" validate:"required"`
}

type SoporteMensaje struct {
	ID      int    `json:"id"`
	Usuario string `json:"usuario"`
	Asunto  string `json:"asunto"`
	Mensaje string `json:"mensaje"`
	Fecha   string `json:"fecha"`
}
