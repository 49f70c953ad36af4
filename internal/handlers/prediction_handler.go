package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/infopontes/leishai-backend/internal/httperr"
	"github.com/infopontes/leishai-backend/internal/httpresp"
	"github.com/infopontes/leishai-backend/internal/ml"
)

type PredictionHandler struct {
	predictor *ml.Predictor
}

func NewPredictionHandler(predictor *ml.Predictor) *PredictionHandler {
	return &PredictionHandler{predictor: predictor}
}

type PredictionResponse struct {
	DiagnosisPrediction string  `json:"diagnosis_prediction"`
	ConfidenceScore     float64 `json:"confidence_score"`
}

// Predict é um pass-through de inferência: sem treino, sem feedback.
func (h *PredictionHandler) Predict(c *gin.Context) {
	if h.predictor == nil {
		httperr.Internal(c, "model_not_loaded", "Prediction model is not available")
		return
	}

	var input ml.PredictionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httperr.Unprocessable(c, "validation_error", err.Error())
		return
	}

	result := h.predictor.Predict(input)

	httpresp.OK(c, PredictionResponse{
		DiagnosisPrediction: result.Prediction,
		ConfidenceScore:     result.Confidence,
	})
}
