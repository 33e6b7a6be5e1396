package service

import (
	"context"

	"github.com/grcflow/notifcomposer/pkg/variables"
)

// DefaultSampleEntity is used when a preview names no entity type or an
// entity type without sample data.
const DefaultSampleEntity = "riesgo"

var sampleContexts = map[string]variables.Context{
	"riesgo": {
		Name:        "Riesgo de fraude en pagos a proveedores",
		Description: "Se detectaron transacciones duplicadas en el proceso de pagos a proveedores durante el cierre mensual.",
		Date:        "15/03/2025",
		Responsible: variables.UserRef{Name: "María García", Initials: "MG"},
		Entity:      variables.EntityType{Label: "Riesgo", Icon: "exclamation-triangle"},
		Severity:    variables.Severity{Label: "Alta", Level: "danger"},
		Status:      variables.Status{Label: "En evaluación", ColorClass: "bg-yellow-100 text-yellow-800"},
		Creator:     variables.UserRef{Name: "Juan Pérez", Initials: "JP"},
		Link:        "https://grc.example.com/riesgos/1042",
	},
	"control": {
		Name:        "Conciliación bancaria mensual",
		Description: "Control de detección sobre las diferencias entre extractos bancarios y libro mayor.",
		Date:        "31/03/2025",
		Responsible: variables.UserRef{Name: "Carlos Rodríguez", Initials: "CR"},
		Entity:      variables.EntityType{Label: "Control", Icon: "shield"},
		Severity:    variables.Severity{Label: "Media", Level: "warn"},
		Status:      variables.Status{Label: "Vencido", ColorClass: "bg-red-100 text-red-800"},
		Creator:     variables.UserRef{Name: "Ana Martínez", Initials: "AM"},
		Link:        "https://grc.example.com/controles/318",
	},
	"incidente": {
		Name:        "Caída del portal de clientes",
		Description: "El portal estuvo indisponible durante 47 minutos por la expiración de un certificado TLS.",
		Date:        "02/04/2025",
		Responsible: variables.UserRef{Name: "Lucía Fernández", Initials: "LF"},
		Entity:      variables.EntityType{Label: "Incidente", Icon: "bolt"},
		Severity:    variables.Severity{Label: "Crítica", Level: "danger"},
		Status:      variables.Status{Label: "Abierto", ColorClass: "bg-red-100 text-red-800"},
		Creator:     variables.UserRef{Name: "Mesa de Ayuda", Initials: "MA"},
		Link:        "https://grc.example.com/incidentes/77",
	},
	"auditoria": {
		Name:        "Auditoría interna de compras 2025",
		Description: "Revisión del ciclo de compras, desde la solicitud hasta el pago.",
		Date:        "10/05/2025",
		Responsible: variables.UserRef{Name: "Sofía López", Initials: "SL"},
		Entity:      variables.EntityType{Label: "Auditoría", Icon: "search"},
		Severity:    variables.Severity{Label: "Informativa", Level: "info"},
		Status:      variables.Status{Label: "Planificada", ColorClass: "bg-blue-100 text-blue-800"},
		Creator:     variables.UserRef{Name: "Comité de Auditoría", Initials: "CA"},
		Link:        "https://grc.example.com/auditorias/12",
	},
	"hallazgo": {
		Name:        "Segregación de funciones insuficiente",
		Description: "El mismo usuario puede crear proveedores y aprobar sus pagos.",
		Date:        "22/05/2025",
		Responsible: variables.UserRef{Name: "Diego Torres", Initials: "DT"},
		Entity:      variables.EntityType{Label: "Hallazgo", Icon: "flag"},
		Severity:    variables.Severity{Label: "Alta", Level: "danger"},
		Status:      variables.Status{Label: "En remediación", ColorClass: "bg-orange-100 text-orange-800"},
		Creator:     variables.UserRef{Name: "Sofía López", Initials: "SL"},
		Link:        "https://grc.example.com/hallazgos/205",
	},
	"politica": {
		Name:        "Política de seguridad de la información",
		Description: "Nueva versión con requisitos de autenticación multifactor para accesos remotos.",
		Date:        "01/06/2025",
		Responsible: variables.UserRef{Name: "Valentina Ruiz", Initials: "VR"},
		Entity:      variables.EntityType{Label: "Política", Icon: "file-text"},
		Severity:    variables.Severity{Label: "Baja", Level: "success"},
		Status:      variables.Status{Label: "Publicada", ColorClass: "bg-green-100 text-green-800"},
		Creator:     variables.UserRef{Name: "Oficial de Cumplimiento", Initials: "OC"},
		Link:        "https://grc.example.com/politicas/9",
	},
}

// StaticPreviewData serves fixed sample records per entity type so the
// editor can preview a rule before any real event exists.
type StaticPreviewData struct{}

func NewStaticPreviewData() *StaticPreviewData {
	return &StaticPreviewData{}
}

func (p *StaticPreviewData) SampleContext(ctx context.Context, entityType string) (variables.Context, error) {
	if err := ctx.Err(); err != nil {
		return variables.Context{}, err
	}
	if c, ok := sampleContexts[entityType]; ok {
		return c, nil
	}
	return sampleContexts[DefaultSampleEntity], nil
}

// SampleEntityTypes lists the entity types with dedicated sample data
func SampleEntityTypes() []string {
	return []string{"riesgo", "control", "incidente", "auditoria", "hallazgo", "politica"}
}
