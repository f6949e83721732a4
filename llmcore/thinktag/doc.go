// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package thinktag splits an incrementally-arriving text stream into
plain-text and reasoning fragments delimited by inline <think>...
</think> tags, for providers that inline reasoning into the content
stream instead of reporting it as a separate field.
*/
package thinktag
