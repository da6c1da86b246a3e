// Package tokenizer approximates how many tokens a snapshot document will
// consume in the context windows of popular model families.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// encodingName is the canonical scheme every model estimate derives from.
const encodingName = "cl100k_base"

// textEncoder is the subset of the tiktoken API the estimator needs.
// Narrowing the dependency keeps estimates testable without the real
// encoding tables.
type textEncoder interface {
	Encode(text string, allowedSpecial []string, disallowedSpecial []string) []int
}

// modelSpecification pairs a model family with its scaling against the
// canonical encoding and its advertised context window.
type modelSpecification struct {
	name       string
	multiplier float64
	maxContext int
}

// modelSpecifications is ordered; reports and rendered sections follow it.
var modelSpecifications = []modelSpecification{
	{name: "GPT-4", multiplier: 1.00, maxContext: 8192},
	{name: "GPT-3.5", multiplier: 1.00, maxContext: 4096},
	{name: "Claude", multiplier: 0.80, maxContext: 100000},
	{name: "GPT-O1", multiplier: 1.10, maxContext: 4096},
	{name: "Ollama-Llama2-7B", multiplier: 0.90, maxContext: 4096},
	{name: "Ollama-Llama2-13B", multiplier: 0.85, maxContext: 4096},
}

// ModelEstimate carries the per-model figures derived from one base count.
type ModelEstimate struct {
	Model        string
	Tokens       int
	MaxContext   int
	UsagePercent float64
	Remaining    int
}

// Report lists model estimates in model-table order. An empty report means
// estimation was unavailable and callers render a "no estimate" notice.
type Report []ModelEstimate

// Estimator converts text into per-model token estimates.
type Estimator struct {
	encoder textEncoder
}

// NewEstimator loads the canonical encoding. The first call downloads the
// encoding tables unless they are cached or vendored.
func NewEstimator() (*Estimator, error) {
	encoding, encodingError := tiktoken.GetEncoding(encodingName)
	if encodingError != nil {
		return nil, fmt.Errorf("initialize %s tokenizer: %w", encodingName, encodingError)
	}
	return &Estimator{encoder: encoding}, nil
}

// Estimate derives the full model report from one pass over text. Empty
// text still yields a complete, all-zero report.
func (estimator *Estimator) Estimate(text string) Report {
	baseCount := len(estimator.encoder.Encode(text, nil, nil))
	report := make(Report, 0, len(modelSpecifications))
	for _, specification := range modelSpecifications {
		estimatedTokens := int(float64(baseCount) * specification.multiplier)
		report = append(report, ModelEstimate{
			Model:        specification.name,
			Tokens:       estimatedTokens,
			MaxContext:   specification.maxContext,
			UsagePercent: float64(estimatedTokens) / float64(specification.maxContext) * 100,
			Remaining:    specification.maxContext - estimatedTokens,
		})
	}
	return report
}
