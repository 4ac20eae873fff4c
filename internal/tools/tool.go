// Package tools exposes the agents as the named tool-call surface consumed
// by the hosting voice/LLM orchestrator. Each tool carries an OpenAI
// function schema (the format orchestrators register with the model) and a
// handler that mutates one session and returns speakable text.
package tools

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ashureev/voicebooth/internal/improv"
	"github.com/ashureev/voicebooth/internal/session"
	"github.com/ashureev/voicebooth/internal/shop"
	"github.com/openai/openai-go/v3"
)

const (
	// AgentImprov and AgentShop name the two demo agents.
	AgentImprov = "improv"
	AgentShop   = "shop"
)

const (
	unknownToolReply = "Sorry, that's not something I can do here."
	badArgsReply     = "Sorry, I didn't catch that. Could you say it again?"
)

// Handler executes a tool against one session and returns speakable text.
type Handler func(ctx context.Context, sess *session.Session, args json.RawMessage) string

// Tool is one named operation of the external contract.
type Tool struct {
	Name       string
	Agent      string
	Definition openai.ChatCompletionToolUnionParam
	Handle     Handler
}

// Registry holds the full tool surface in registration order.
type Registry struct {
	order []string
	tools map[string]Tool
}

// NewRegistry builds the registry over both demo agents.
func NewRegistry(host *improv.Host, assistant *shop.Assistant) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range improvTools(host) {
		r.register(t)
	}
	for _, t := range shopTools(assistant) {
		r.register(t)
	}
	return r
}

func (r *Registry) register(t Tool) {
	if _, dup := r.tools[t.Name]; dup {
		panic("duplicate tool name: " + t.Name)
	}
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
}

// Dispatch runs the named tool against the session. Unknown tools degrade
// to polite text, matching the rest of the error surface.
func (r *Registry) Dispatch(ctx context.Context, sess *session.Session, name string, args json.RawMessage) string {
	t, ok := r.tools[name]
	if !ok {
		slog.Warn("Unknown tool invoked", "tool", name, "user_id", sess.UserID, "session_id", sess.SessionID)
		return unknownToolReply
	}
	return t.Handle(ctx, sess, args)
}

// Tools returns all tools in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Definitions returns the OpenAI function schemas in registration order.
func (r *Registry) Definitions() []openai.ChatCompletionToolUnionParam {
	out := make([]openai.ChatCompletionToolUnionParam, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].Definition)
	}
	return out
}

// functionTool wraps a function definition the way the OpenAI API expects.
func functionTool(def openai.FunctionDefinitionParam) openai.ChatCompletionToolUnionParam {
	return openai.ChatCompletionToolUnionParam{
		OfFunction: &openai.ChatCompletionFunctionToolParam{Function: def},
	}
}

// decodeArgs unmarshals tool arguments; empty input decodes to zero values.
func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return nil
	}
	return json.Unmarshal(args, v)
}
