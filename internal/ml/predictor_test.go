package ml

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModel(t *testing.T, model modelArtifact, columns []string) string {
	t.Helper()
	dir := t.TempDir()

	data, err := json.Marshal(model)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leish_model_v1.json"), data, 0o644))

	data, err = json.Marshal(columns)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "training_columns_v1.json"), data, 0o644))

	return dir
}

func TestNewPredictorMissingArtifacts(t *testing.T) {
	_, err := NewPredictor(t.TempDir())
	assert.Error(t, err)
}

func TestNewPredictorRejectsNonBinaryModel(t *testing.T) {
	dir := writeModel(t, modelArtifact{
		Classes:      []string{"A", "B", "C"},
		Coefficients: map[string]float64{},
	}, nil)

	_, err := NewPredictor(dir)
	assert.Error(t, err)
}

func TestNewPredictorDefaultsThreshold(t *testing.T) {
	dir := writeModel(t, modelArtifact{
		Classes:      []string{"Negativo", "Positivo"},
		Coefficients: map[string]float64{},
	}, nil)

	p, err := NewPredictor(dir)
	require.NoError(t, err)
	assert.Equal(t, 0.5, p.model.Threshold)
}

func TestPredictPositiveAboveThreshold(t *testing.T) {
	dir := writeModel(t, modelArtifact{
		Classes:   []string{"Negativo", "Positivo"},
		Intercept: -1.0,
		Coefficients: map[string]float64{
			"general_state_Ruim":       3.0,
			"diagnosis_never_seen_col": 9.0,
		},
		Threshold: 0.5,
	}, []string{"general_state_Ruim", "lymph_nodes_Graves"})

	p, err := NewPredictor(dir)
	require.NoError(t, err)

	// z = -1 + 3 = 2, sigmoid(2) ~= 0.88
	res := p.Predict(PredictionInput{GeneralState: "Ruim"})
	assert.Equal(t, "Positivo", res.Prediction)
	assert.InDelta(t, 0.8808, res.Confidence, 0.001)
}

func TestPredictNegativeBelowThreshold(t *testing.T) {
	dir := writeModel(t, modelArtifact{
		Classes:   []string{"Negativo", "Positivo"},
		Intercept: -2.0,
		Coefficients: map[string]float64{
			"general_state_Bom": -1.0,
		},
		Threshold: 0.5,
	}, []string{"general_state_Bom"})

	p, err := NewPredictor(dir)
	require.NoError(t, err)

	// z = -3, sigmoid(-3) ~= 0.047, confiança é 1 - p
	res := p.Predict(PredictionInput{GeneralState: "Bom"})
	assert.Equal(t, "Negativo", res.Prediction)
	assert.InDelta(t, 0.9526, res.Confidence, 0.001)
}

func TestPredictIgnoresColumnsOutsideTrainingSet(t *testing.T) {
	dir := writeModel(t, modelArtifact{
		Classes:   []string{"Negativo", "Positivo"},
		Intercept: 0,
		Coefficients: map[string]float64{
			"general_state_Ruim": 5.0,
		},
		Threshold: 0.5,
	}, []string{"general_state_Ruim"})

	p, err := NewPredictor(dir)
	require.NoError(t, err)

	// Raça desconhecida não vira coluna de treino: z fica em 0,
	// sigmoid(0) = 0.5 cruza o threshold.
	res := p.Predict(PredictionInput{BreedName: "Raça Inexistente"})
	assert.Equal(t, "Positivo", res.Prediction)
	assert.InDelta(t, 0.5, res.Confidence, 0.0001)
}

func TestEncodeSkipsEmptyFields(t *testing.T) {
	p := &Predictor{}
	features := p.encode(PredictionInput{
		GeneralState: "Bom",
		AnimalSex:    "M",
	})

	assert.Equal(t, map[string]bool{
		"general_state_Bom": true,
		"animal_sex_M":      true,
	}, features)
}

func TestCommittedArtifactsLoad(t *testing.T) {
	p, err := NewPredictor(filepath.Join("..", "..", "ml_models"))
	require.NoError(t, err)

	res := p.Predict(PredictionInput{
		GeneralState:     "Ruim",
		NutritionalState: "Grave (Caquético)",
		LymphNodes:       "Graves",
		Blepharitis:      "Presente",
	})
	assert.Contains(t, []string{"Negativo", "Positivo"}, res.Prediction)
	assert.GreaterOrEqual(t, res.Confidence, 0.5)
	assert.LessOrEqual(t, res.Confidence, 1.0)
}
