package openaicompat

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/agentflow/internal/tlsutil"
	"github.com/BaSui01/agentflow/llmcore/errs"
	"github.com/BaSui01/agentflow/llmcore/eventstream"
	"github.com/BaSui01/agentflow/llmcore/overflow"
	"github.com/BaSui01/agentflow/llmcore/types"
)

// Provider drives streaming chat completions against any
// OpenAI-compatible endpoint.
type Provider struct {
	Client *http.Client
	Logger *zap.Logger
}

// New builds a Provider with a hardened HTTP client. A nil logger
// installs a no-op logger.
func New(logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		Client: tlsutil.SecureHTTPClient(0),
		Logger: logger,
	}
}

// Stream starts a streaming completion and returns immediately with
// an eventstream.Stream; events and the terminal message arrive
// asynchronously as the response is read.
func (p *Provider) Stream(ctx context.Context, apiKey string, model types.Model, convCtx types.Context) (*eventstream.Stream, error) {
	if apiKey == "" {
		return nil, errs.NoAPIKey(model.Provider.String())
	}

	compat := ResolveCompat(model)
	body := buildParams(model, convCtx, compat, convCtx.ReasoningEffort)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errs.InvalidJSON(model.Provider.String(), err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, model.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, errs.Transport(model.Provider.String(), err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	for k, v := range model.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return nil, errs.Transport(model.Provider.String(), err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		msg := readErrorMessage(resp.Body)
		return nil, apiError(model, resp.StatusCode, msg)
	}

	stream, sender := eventstream.New()
	machine := NewMachine(model)
	sender.Push(machine.Start())

	go p.runStream(ctx, resp.Body, model, sender, machine)

	return stream, nil
}

func (p *Provider) runStream(ctx context.Context, body io.ReadCloser, model types.Model, sender *eventstream.Sender, machine *Machine) {
	defer body.Close()
	defer sender.Close()

	reader := bufio.NewReader(body)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				p.pushError(ctx, sender, machine, errs.Transport(model.Provider.String(), err))
			}
			return
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ":") || !strings.HasPrefix(line, "data:") {
			continue
		}

		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			return
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Malformed chunks are swallowed; a well-behaved provider
			// eventually sends [DONE] or closes the connection.
			p.Logger.Debug("openaicompat: skipping malformed SSE chunk", zap.Error(err))
			continue
		}

		for _, ev := range machine.HandleChunk(chunk) {
			select {
			case <-ctx.Done():
				return
			default:
			}
			sender.Push(ev)
		}
	}
}

func (p *Provider) pushError(ctx context.Context, sender *eventstream.Sender, machine *Machine, err *errs.Error) {
	msg := machine.msg.Clone()
	errMsg := err.Error()
	msg.ErrorMessage = &errMsg
	msg.StopReason = types.StopReasonError
	sender.Push(types.AssistantMessageEvent{Kind: types.EventError, ErrorReason: types.ErrorReasonError, Message: msg})
}

func apiError(model types.Model, status int, message string) *errs.Error {
	e := errs.API(model.Provider.String(), status, message)
	if overflow.IsContextOverflow(types.AssistantMessage{
		StopReason:   types.StopReasonError,
		ErrorMessage: &message,
	}, &model.ContextWindow) {
		return errs.ContextOverflow(model.Provider.String(), message)
	}
	return e
}

func readErrorMessage(body io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(body, 8192))
	if err != nil {
		return fmt.Sprintf("failed to read error body: %v", err)
	}
	return strings.TrimSpace(string(b))
}
