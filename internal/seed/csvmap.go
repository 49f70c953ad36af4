package seed

import "github.com/infopontes/leishai-backend/internal/models"

// Tabelas fixas que traduzem o vocabulário do dataset legado para o
// canônico. São mantidas literalmente como vieram da equipe de campo;
// não generalizar.
var lesionMapping = map[string]string{
	"Alterada":   "Leves/Moderadas",
	"Aumentados": "Leves/Moderadas",
	"Grave":      "Graves",
}

var generalStateMapping = map[string]string{
	"Moderado": "Regular",
	"Grave":    "Ruim",
}

var nutritionalStateMapping = map[string]string{
	"Grave/Caquético": "Grave (Caquético)",
}

var mucosaColorMapping = map[string]string{
	"Congesta": "Congesta (vermelho-escuro)",
}

func remap(table map[string]string, value string) string {
	if mapped, ok := table[value]; ok {
		return mapped
	}
	return value
}

// clinicalFromRow mapeia as colunas clínicas de uma linha do CSV para
// os campos da avaliação. Valor fora do vocabulário fica nulo.
func clinicalFromRow(row map[string]string) models.Assessment {
	var as models.Assessment

	as.GeneralState = generalStatePtr(remap(generalStateMapping, row["estado_geral"]))
	as.Ectoparasites = severityPtr(row["ectoparas"])
	as.NutritionalState = nutritionalStatePtr(remap(nutritionalStateMapping, row["est_nutri"]))
	as.Coat = lesionSeverityPtr(remap(lesionMapping, row["pelagem"]))
	as.Nails = lesionSeverityPtr(remap(lesionMapping, row["unhas"]))
	as.MucosaColor = mucosaColorPtr(remap(mucosaColorMapping, row["color_mucosa"]))
	as.MuzzleEarLesion = presenceAbsencePtr(row["lesao_focinho_orelha"])
	as.LymphNodes = lesionSeverityPtr(remap(lesionMapping, row["linfonodos"]))
	as.Blepharitis = presenceAbsencePtr(row["blefarite"])
	as.Conjunctivitis = presenceAbsencePtr(row["conjuntivite"])
	as.Alopecia = presenceAbsencePtr(row["alopecia"])
	as.Bleeding = presenceAbsencePtr(row["sangramento"])
	as.SkinLesion = presenceAbsencePtr(row["lesao_de_pele"])
	as.MuzzleLipDepigmentation = presenceAbsencePtr(row["despigmentacao_focinho_labio"])
	as.Culture = diagnosisResultPtr(row["cultura"])
	as.Slide = diagnosisResultPtr(row["lamina"])
	as.Diagnosis = diagnosisResultPtr(row["diagnostico"])

	return as
}

func generalStatePtr(v string) *models.GeneralState {
	e := models.GeneralState(v)
	if !e.Valid() {
		return nil
	}
	return &e
}

func severityPtr(v string) *models.Severity {
	e := models.Severity(v)
	if !e.Valid() {
		return nil
	}
	return &e
}

func nutritionalStatePtr(v string) *models.NutritionalState {
	e := models.NutritionalState(v)
	if !e.Valid() {
		return nil
	}
	return &e
}

func lesionSeverityPtr(v string) *models.LesionSeverity {
	e := models.LesionSeverity(v)
	if !e.Valid() {
		return nil
	}
	return &e
}

func presenceAbsencePtr(v string) *models.PresenceAbsence {
	e := models.PresenceAbsence(v)
	if !e.Valid() {
		return nil
	}
	return &e
}

func mucosaColorPtr(v string) *models.MucosaColor {
	e := models.MucosaColor(v)
	if !e.Valid() {
		return nil
	}
	return &e
}

func diagnosisResultPtr(v string) *models.DiagnosisResult {
	e := models.DiagnosisResult(v)
	if !e.Valid() {
		return nil
	}
	return &e
}
