package models

// Vocabulário clínico usado nas avaliações. Os valores são os mesmos
// gravados no banco e esperados pelo modelo de predição.

type GeneralState string

const (
	GeneralStateBom     GeneralState = "Bom"
	GeneralStateRegular GeneralState = "Regular"
	GeneralStateRuim    GeneralState = "Ruim"
)

type Severity string

const (
	SeverityAusente Severity = "Ausente"
	SeverityLeve    Severity = "Leve"
	SeverityGrave   Severity = "Grave"
)

type NutritionalState string

const (
	NutritionalStateAdequado     NutritionalState = "Adequado/Eutrófico"
	NutritionalStateLeveModerado NutritionalState = "Leve a Moderado"
	NutritionalStateGrave        NutritionalState = "Grave (Caquético)"
)

type LesionSeverity string

const (
	LesionSeverityNormal        LesionSeverity = "Normal"
	LesionSeverityLevesModerada LesionSeverity = "Leves/Moderadas"
	LesionSeverityGraves        LesionSeverity = "Graves"
)

type PresenceAbsence string

const (
	Presente PresenceAbsence = "Presente"
	Ausente  PresenceAbsence = "Ausente"
)

type DiagnosisResult string

const (
	DiagnosisPositivo DiagnosisResult = "Positivo"
	DiagnosisNegativo DiagnosisResult = "Negativo"
)

type MucosaColor string

const (
	MucosaNormal      MucosaColor = "Normal (Rosa-claro)"
	MucosaHipercorada MucosaColor = "Levemente Hipercorada"
	MucosaCianotica   MucosaColor = "Cianótica (azulada)"
	MucosaCongesta    MucosaColor = "Congesta (vermelho-escuro)"
	MucosaIcterica    MucosaColor = "Ictérica (amarelada)"
	MucosaPalida      MucosaColor = "Pálida"
)

func (v GeneralState) Valid() bool {
	switch v {
	case GeneralStateBom, GeneralStateRegular, GeneralStateRuim:
		return true
	}
	return false
}

func (v Severity) Valid() bool {
	switch v {
	case SeverityAusente, SeverityLeve, SeverityGrave:
		return true
	}
	return false
}

func (v NutritionalState) Valid() bool {
	switch v {
	case NutritionalStateAdequado, NutritionalStateLeveModerado, NutritionalStateGrave:
		return true
	}
	return false
}

func (v LesionSeverity) Valid() bool {
	switch v {
	case LesionSeverityNormal, LesionSeverityLevesModerada, LesionSeverityGraves:
		return true
	}
	return false
}

func (v PresenceAbsence) Valid() bool {
	return v == Presente || v == Ausente
}

func (v DiagnosisResult) Valid() bool {
	return v == DiagnosisPositivo || v == DiagnosisNegativo
}

func (v MucosaColor) Valid() bool {
	switch v {
	case MucosaNormal, MucosaHipercorada, MucosaCianotica,
		MucosaCongesta, MucosaIcterica, MucosaPalida:
		return true
	}
	return false
}
