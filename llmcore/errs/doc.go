// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package errs defines the error taxonomy shared by every provider and
by the dispatcher: a single [Code] enum plus an [Error] type carrying
an HTTP status and the provider that raised it, with retryability
derived from the code and status by [Error.Retryable].
*/
package errs
