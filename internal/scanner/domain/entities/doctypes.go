package entities

import "slices"

// DocCategory разделяет многостраничные документы (PDF) и одиночные изображения.
type DocCategory string

const (
	CategoryDocument DocCategory = "document"
	CategoryImage    DocCategory = "image"
)

// DocumentTypes - типы, которые загружаются как PDF.
var DocumentTypes = []string{
	"GDPR", "CONTRACT", "AVIZ", "AVIZ PSIHOLOGIC", "AVIZ MEDICAL", "CAZIER", "CAZIER AUTO",
	"ADEVERINTA MEDICALA", "LIVRET", "EXTRAS DE CONT", "ADEVERINTA PRIMARIE", "DECLARATIE ANAF",
	"DECIZIE", "DECIZIE INCETARE", "ADEVERINTA CIM", "CARTE DE MUNCA", "DECLARATIE", "DIVERSE",
}

// ImageTypes - типы, которые загружаются как изображение.
var ImageTypes = []string{
	"CI", "Poza", "Calificare", "CertificatNastere", "CertificatNastereCopil", "CertificatNastereIntretinut",
	"CI_Sotie", "CI_Sot", "CI_Copil", "CI_Intretinut", "AdeverintaANAF", "AdeverintaVechime", "CertificatCasatorie",
	"ActeStudii", "Adeverinta scoala copil", "Permis", "Atestat", "Card Tahograf", "Atestat Auto", "Declaratie", "CI VECHI",
}

func IsImageType(t string) bool {
	return slices.Contains(ImageTypes, t)
}

func IsDocumentType(t string) bool {
	return slices.Contains(DocumentTypes, t)
}

// CategoryOf возвращает категорию типа документа. ok=false для неизвестного типа.
func CategoryOf(t string) (DocCategory, bool) {
	switch {
	case IsDocumentType(t):
		return CategoryDocument, true
	case IsImageType(t):
		return CategoryImage, true
	default:
		return "", false
	}
}
