package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infopontes/leishai-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestClinicalFieldsApplySetsValidValues(t *testing.T) {
	req := ClinicalFieldsRequest{
		GeneralState: strPtr("Bom"),
		MucosaColor:  strPtr("Pálida"),
		Diagnosis:    strPtr("Negativo"),
	}

	var as models.Assessment
	require.NoError(t, req.apply(&as))

	require.NotNil(t, as.GeneralState)
	assert.Equal(t, models.GeneralStateBom, *as.GeneralState)
	require.NotNil(t, as.MucosaColor)
	assert.Equal(t, models.MucosaPalida, *as.MucosaColor)
	require.NotNil(t, as.Diagnosis)
	assert.Equal(t, models.DiagnosisNegativo, *as.Diagnosis)
	assert.Nil(t, as.Ectoparasites)
}

func TestClinicalFieldsApplyRejectsUnknownValue(t *testing.T) {
	req := ClinicalFieldsRequest{GeneralState: strPtr("Péssimo")}

	var as models.Assessment
	err := req.apply(&as)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "general_state")
	assert.Nil(t, as.GeneralState)
}

func TestClinicalFieldsApplyClearsWithEmptyString(t *testing.T) {
	existing := models.GeneralStateBom
	as := models.Assessment{GeneralState: &existing}

	req := ClinicalFieldsRequest{GeneralState: strPtr("")}
	require.NoError(t, req.apply(&as))
	assert.Nil(t, as.GeneralState)
}

func TestClinicalFieldsApplyLeavesAbsentFieldsAlone(t *testing.T) {
	existing := models.GeneralStateRuim
	as := models.Assessment{GeneralState: &existing}

	req := ClinicalFieldsRequest{Diagnosis: strPtr("Positivo")}
	require.NoError(t, req.apply(&as))

	require.NotNil(t, as.GeneralState)
	assert.Equal(t, models.GeneralStateRuim, *as.GeneralState)
	require.NotNil(t, as.Diagnosis)
	assert.Equal(t, models.DiagnosisPositivo, *as.Diagnosis)
}
