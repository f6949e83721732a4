package observability

import "sync"

// ModelPrice is the USD-per-1K-token rate for a single provider/model pair.
type ModelPrice struct {
	Provider    string
	Model       string
	PriceInput  float64
	PriceOutput float64
}

// CostCalculator estimates request cost from a provider-independent
// price table. It exists because most OpenAI-compatible gateways
// don't return a cost field on their usage block, only token counts.
type CostCalculator struct {
	mu     sync.RWMutex
	prices map[string]ModelPrice // key: provider:model
}

// NewCostCalculator builds a calculator preloaded with public list
// prices for the providers this module talks to.
func NewCostCalculator() *CostCalculator {
	c := &CostCalculator{prices: make(map[string]ModelPrice)}
	c.loadDefaultPrices()
	return c
}

func (c *CostCalculator) loadDefaultPrices() {
	defaults := []ModelPrice{
		{Provider: "openai", Model: "gpt-4o", PriceInput: 0.005, PriceOutput: 0.015},
		{Provider: "openai", Model: "gpt-4o-mini", PriceInput: 0.00015, PriceOutput: 0.0006},
		{Provider: "openai", Model: "gpt-4-turbo", PriceInput: 0.01, PriceOutput: 0.03},
		{Provider: "openai", Model: "gpt-3.5-turbo", PriceInput: 0.0005, PriceOutput: 0.0015},
		{Provider: "xai", Model: "grok-3", PriceInput: 0.003, PriceOutput: 0.015},
		{Provider: "xai", Model: "grok-3-mini", PriceInput: 0.0003, PriceOutput: 0.0005},
		{Provider: "groq", Model: "llama-3.3-70b-versatile", PriceInput: 0.00059, PriceOutput: 0.00079},
		{Provider: "cerebras", Model: "llama-3.3-70b", PriceInput: 0.0006, PriceOutput: 0.0006},
		{Provider: "mistral", Model: "mistral-large-latest", PriceInput: 0.002, PriceOutput: 0.006},
		{Provider: "openrouter", Model: "openrouter/auto", PriceInput: 0.0, PriceOutput: 0.0},
		{Provider: "zai", Model: "glm-4.6", PriceInput: 0.0006, PriceOutput: 0.0022},
		{Provider: "minimax", Model: "abab6.5s-chat", PriceInput: 0.0004, PriceOutput: 0.0016},
		{Provider: "minimax-cn", Model: "abab6.5s-chat", PriceInput: 0.0004, PriceOutput: 0.0016},
	}
	for _, p := range defaults {
		c.SetPrice(p.Provider, p.Model, p.PriceInput, p.PriceOutput)
	}
}

// SetPrice registers or overrides a per-model rate.
func (c *CostCalculator) SetPrice(provider, model string, priceInput, priceOutput float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prices[provider+":"+model] = ModelPrice{Provider: provider, Model: model, PriceInput: priceInput, PriceOutput: priceOutput}
}

// Price returns the registered rate, or ok=false when none is known.
func (c *CostCalculator) Price(provider, model string) (ModelPrice, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.prices[provider+":"+model]
	return p, ok
}

// Calculate returns the estimated USD cost for the given token
// counts, or zero when no price is registered for provider/model.
func (c *CostCalculator) Calculate(provider, model string, tokensInput, tokensOutput int) float64 {
	price, ok := c.Price(provider, model)
	if !ok {
		return 0
	}
	return float64(tokensInput)/1000*price.PriceInput + float64(tokensOutput)/1000*price.PriceOutput
}

// Summary aggregates cost and token usage across a run of requests.
type Summary struct {
	TotalCost       float64
	TotalTokens     int
	TokensInput     int
	TokensOutput    int
	RequestCount    int
	AvgCostPerReq   float64
	AvgTokensPerReq float64
}

// Tracker accumulates cost across a session's worth of requests.
type Tracker struct {
	calculator *CostCalculator
	mu         sync.Mutex
	summary    Summary
}

func NewTracker(calculator *CostCalculator) *Tracker {
	return &Tracker{calculator: calculator}
}

// Track prices a single request and folds it into the running summary.
func (t *Tracker) Track(provider, model string, tokensInput, tokensOutput int) float64 {
	cost := t.calculator.Calculate(provider, model, tokensInput, tokensOutput)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.summary.TotalCost += cost
	t.summary.TokensInput += tokensInput
	t.summary.TokensOutput += tokensOutput
	t.summary.TotalTokens += tokensInput + tokensOutput
	t.summary.RequestCount++
	t.summary.AvgCostPerReq = t.summary.TotalCost / float64(t.summary.RequestCount)
	t.summary.AvgTokensPerReq = float64(t.summary.TotalTokens) / float64(t.summary.RequestCount)

	return cost
}

func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summary
}

func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.summary = Summary{}
}
