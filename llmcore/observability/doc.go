// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package observability carries the ambient cost, usage, and metrics
concerns around a streaming completion: CostCalculator turns raw
token counts into a USD estimate when a provider didn't report one,
Metrics publishes OpenTelemetry counters and histograms per request,
and EstimateTokens supplies a tiktoken-based token count for the rare
case a provider's usage block omits an output count entirely.
*/
package observability
