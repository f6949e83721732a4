// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package registry is the boundary layer between the process
environment and the core: it holds a small built-in catalog of model
descriptors, reads `{PROVIDER}_API_KEY`-shaped environment variables
for credentials, and resolves a model id to a concrete
dispatch.Provider. No other package in this module reads the
environment or owns a hardcoded model list.
*/
package registry
