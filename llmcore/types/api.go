package types

import "fmt"

// API tags the wire protocol a model speaks.
type API string

const (
	APIOpenAICompletions API = "openai-completions"
	APIMinimaxCompletions API = "minimax-completions"
)

// KnownProvider enumerates providers this repo has direct compat
// knowledge of. Providers outside this set still work via Provider's
// Custom variant.
type KnownProvider string

const (
	ProviderOpenAI    KnownProvider = "openai"
	ProviderXai       KnownProvider = "xai"
	ProviderGroq      KnownProvider = "groq"
	ProviderCerebras  KnownProvider = "cerebras"
	ProviderOpenRouter KnownProvider = "openrouter"
	ProviderZai       KnownProvider = "zai"
	ProviderMistral   KnownProvider = "mistral"
	ProviderMinimax   KnownProvider = "minimax"
	ProviderMinimaxCN KnownProvider = "minimax-cn"
)

// Provider identifies who is serving the model: a known provider or a
// custom string for anything else.
type Provider struct {
	Known  KnownProvider
	Custom string
}

// KnownProviderOf builds a Provider wrapping a known provider.
func KnownProviderOf(p KnownProvider) Provider { return Provider{Known: p} }

// CustomProvider builds a Provider for an unrecognized identity.
func CustomProvider(name string) Provider { return Provider{Custom: name} }

func (p Provider) String() string {
	if p.Custom != "" {
		return p.Custom
	}
	return string(p.Known)
}

func (p Provider) IsKnown(k KnownProvider) bool {
	return p.Custom == "" && p.Known == k
}

// TargetModel identifies the model a transformer rewrite is aimed at,
// without requiring the full Model descriptor.
type TargetModel struct {
	API      API
	Provider Provider
	ModelID  string
}

func (t TargetModel) String() string {
	return fmt.Sprintf("%s/%s/%s", t.API, t.Provider, t.ModelID)
}
