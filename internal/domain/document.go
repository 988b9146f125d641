package domain

import "time"

// Document types accepted by the document service.
const (
	DocumentTypeInforme = "Informe"
	DocumentTypeReporte = "Reporte"
	DocumentTypeResumen = "Resumen"
)

// ValidDocumentType reports whether t is one of the accepted document types.
func ValidDocumentType(t string) bool {
	switch t {
	case DocumentTypeInforme, DocumentTypeReporte, DocumentTypeResumen:
		return true
	}
	return false
}

type Document struct {
	ID        string
	UserID    string // Owner; all access is owner-scoped
	Type      string
	Content   string
	CreatedAt time.Time
}
