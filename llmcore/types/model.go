package types

// InputType names a modality a model accepts.
type InputType string

const (
	InputText  InputType = "text"
	InputImage InputType = "image"
)

// ModelCost is the dollars-per-million-tokens price table for a model.
// Nothing in this module reads it: provider engines take cost only
// from the provider's usage payload, and observability.CostCalculator
// keeps its own price table.
type ModelCost struct {
	Input      float64
	Output     float64
	CacheRead  float64
	CacheWrite float64
}

// Model is the read-only descriptor the core is handed for every
// call. The core never mutates it.
type Model struct {
	ID             string
	Name           string
	API            API
	Provider       Provider
	BaseURL        string
	Reasoning      bool
	Input          []InputType
	Cost           ModelCost
	ContextWindow  uint32
	MaxTokens      uint32
	Headers        map[string]string
	Compat         *CompatOverrides
}

// AcceptsImages reports whether the model declares image input support.
func (m Model) AcceptsImages() bool {
	for _, in := range m.Input {
		if in == InputImage {
			return true
		}
	}
	return false
}
