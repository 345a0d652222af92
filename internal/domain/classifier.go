package domain

import "context"

// ModelPrediction is one inference result from a trained classifier:
// the predicted label in the model's training vocabulary and the highest
// class probability, unrenormalized.
type ModelPrediction struct {
	Label      string
	Confidence float64
}

// Classifier is an externally trained artifact consumed at inference time.
// Implementations may fail (service down, malformed response); callers treat
// any error as "unavailable for this call" and fall back to ScoreByRules.
type Classifier interface {
	Predict(ctx context.Context, f FeatureVector) (ModelPrediction, error)
}
