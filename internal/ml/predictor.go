package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// PredictionInput é o payload clínico aceito pelo modelo. Campos vazios
// simplesmente não geram coluna no one-hot.
type PredictionInput struct {
	GeneralState            string `json:"general_state"`
	Ectoparasites           string `json:"ectoparasites"`
	NutritionalState        string `json:"nutritional_state"`
	Coat                    string `json:"coat"`
	Nails                   string `json:"nails"`
	MucosaColor             string `json:"mucosa_color"`
	MuzzleEarLesion         string `json:"muzzle_ear_lesion"`
	LymphNodes              string `json:"lymph_nodes"`
	Blepharitis             string `json:"blepharitis"`
	Conjunctivitis          string `json:"conjunctivitis"`
	Alopecia                string `json:"alopecia"`
	Bleeding                string `json:"bleeding"`
	SkinLesion              string `json:"skin_lesion"`
	MuzzleLipDepigmentation string `json:"muzzle_lip_depigmentation"`
	AnimalSex               string `json:"animal_sex"`
	BreedName               string `json:"breed_name"`
}

type Result struct {
	Prediction string
	Confidence float64
}

// modelArtifact é o export em JSON da regressão logística treinada:
// intercepto, peso por coluna de treino e classes na ordem do modelo.
type modelArtifact struct {
	Classes      []string           `json:"classes"`
	Intercept    float64            `json:"intercept"`
	Coefficients map[string]float64 `json:"coefficients"`
	Threshold    float64            `json:"threshold"`
}

// Predictor é carregado uma vez na subida do processo e injetado no
// handler; não existe singleton de pacote.
type Predictor struct {
	model           modelArtifact
	trainingColumns []string
}

func NewPredictor(modelDir string) (*Predictor, error) {
	var model modelArtifact
	if err := readJSON(filepath.Join(modelDir, "leish_model_v1.json"), &model); err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	var columns []string
	if err := readJSON(filepath.Join(modelDir, "training_columns_v1.json"), &columns); err != nil {
		return nil, fmt.Errorf("load training columns: %w", err)
	}

	if len(model.Classes) != 2 {
		return nil, fmt.Errorf("expected binary classifier, got %d classes", len(model.Classes))
	}
	if model.Threshold <= 0 || model.Threshold >= 1 {
		model.Threshold = 0.5
	}

	return &Predictor{model: model, trainingColumns: columns}, nil
}

// Predict replica o pipeline de inferência original: one-hot do payload
// no padrão coluna_valor, reindex contra as colunas de treino com zero
// para ausentes, probabilidade da classe positiva e corte no threshold.
func (p *Predictor) Predict(in PredictionInput) Result {
	features := p.encode(in)

	z := p.model.Intercept
	for _, col := range p.trainingColumns {
		if features[col] {
			z += p.model.Coefficients[col]
		}
	}

	positive := sigmoid(z)

	result := Result{
		Prediction: p.model.Classes[0],
		Confidence: 1 - positive,
	}
	if positive >= p.model.Threshold {
		result.Prediction = p.model.Classes[1]
		result.Confidence = positive
	}
	return result
}

func (p *Predictor) encode(in PredictionInput) map[string]bool {
	raw := map[string]string{
		"general_state":             in.GeneralState,
		"ectoparasites":             in.Ectoparasites,
		"nutritional_state":         in.NutritionalState,
		"coat":                      in.Coat,
		"nails":                     in.Nails,
		"mucosa_color":              in.MucosaColor,
		"muzzle_ear_lesion":         in.MuzzleEarLesion,
		"lymph_nodes":               in.LymphNodes,
		"blepharitis":               in.Blepharitis,
		"conjunctivitis":            in.Conjunctivitis,
		"alopecia":                  in.Alopecia,
		"bleeding":                  in.Bleeding,
		"skin_lesion":               in.SkinLesion,
		"muzzle_lip_depigmentation": in.MuzzleLipDepigmentation,
		"animal_sex":                in.AnimalSex,
		"breed_name":                in.BreedName,
	}

	features := make(map[string]bool, len(raw))
	for field, value := range raw {
		if value == "" {
			continue
		}
		features[field+"_"+value] = true
	}
	return features
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
