package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ashureev/voicebooth/internal/improv"
	"github.com/ashureev/voicebooth/internal/session"
	"github.com/openai/openai-go/v3"
)

var startShowDefinition = functionTool(openai.FunctionDefinitionParam{
	Name:        "start_show",
	Description: openai.String("Start a new Improv Battle show: introduce the rules and hand out the first scenario."),
	Parameters: openai.FunctionParameters{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]string{
				"type":        "string",
				"description": "Player/contestant name (optional)",
			},
			"max_rounds": map[string]string{
				"type":        "integer",
				"description": "Number of rounds (3-5 recommended)",
			},
		},
	},
})

var nextScenarioDefinition = functionTool(openai.FunctionDefinitionParam{
	Name:        "next_scenario",
	Description: openai.String("Advance to the next improv scenario, or wrap up the show when all rounds are played."),
	Parameters: openai.FunctionParameters{
		"type":       "object",
		"properties": map[string]any{},
	},
})

var recordPerformanceDefinition = functionTool(openai.FunctionDefinitionParam{
	Name:        "record_performance",
	Description: openai.String("Save the player's improvisation and react to it as the host."),
	Parameters: openai.FunctionParameters{
		"type": "object",
		"properties": map[string]any{
			"performance": map[string]string{
				"type":        "string",
				"description": "Player's improv performance (transcribed text)",
			},
		},
		"required": []string{"performance"},
	},
})

var summarizeShowDefinition = functionTool(openai.FunctionDefinitionParam{
	Name:        "summarize_show",
	Description: openai.String("Produce the closing recap of the show and the player's style profile."),
	Parameters: openai.FunctionParameters{
		"type":       "object",
		"properties": map[string]any{},
	},
})

var stopShowDefinition = functionTool(openai.FunctionDefinitionParam{
	Name:        "stop_show",
	Description: openai.String("Stop the show early. Requires explicit confirmation."),
	Parameters: openai.FunctionParameters{
		"type": "object",
		"properties": map[string]any{
			"confirm": map[string]string{
				"type":        "boolean",
				"description": "Confirm stop",
			},
		},
	},
})

func improvTools(host *improv.Host) []Tool {
	return []Tool{
		{
			Name:       "start_show",
			Agent:      AgentImprov,
			Definition: startShowDefinition,
			Handle: func(ctx context.Context, sess *session.Session, args json.RawMessage) string {
				var in struct {
					Name      string `json:"name"`
					MaxRounds int    `json:"max_rounds"`
				}
				if err := decodeArgs(args, &in); err != nil {
					return badArgsReply
				}
				out := host.StartShow(&sess.Show, in.Name, in.MaxRounds)
				sess.RecordEvent("start_show", 0, sess.Show.PlayerName)
				sess.RecordEvent("present_scenario", sess.Show.CurrentRound, sess.Show.CurrentScenario)
				return out
			},
		},
		{
			Name:       "next_scenario",
			Agent:      AgentImprov,
			Definition: nextScenarioDefinition,
			Handle: func(ctx context.Context, sess *session.Session, args json.RawMessage) string {
				before := sess.Show.CurrentRound
				out := host.NextScenario(&sess.Show)
				if sess.Show.CurrentRound > before {
					sess.RecordEvent("present_scenario", sess.Show.CurrentRound, sess.Show.CurrentScenario)
				} else if sess.Show.Phase == improv.PhaseDone {
					sess.RecordEvent("show_finished", before, "")
				}
				return out
			},
		},
		{
			Name:       "record_performance",
			Agent:      AgentImprov,
			Definition: recordPerformanceDefinition,
			Handle: func(ctx context.Context, sess *session.Session, args json.RawMessage) string {
				var in struct {
					Performance string `json:"performance"`
				}
				if err := decodeArgs(args, &in); err != nil {
					return badArgsReply
				}
				if strings.TrimSpace(in.Performance) == "" {
					return "I didn't catch your performance — could you run the scene again?"
				}
				// Accept out-of-phase submissions, but note them.
				if sess.Show.Phase != improv.PhaseAwaitingImprov {
					sess.RecordEvent("record_performance_out_of_phase", sess.Show.CurrentRound, "")
				}
				out := host.RecordPerformance(&sess.Show, in.Performance)
				sess.RecordEvent("record_performance", sess.Show.CurrentRound, "")
				return out
			},
		},
		{
			Name:       "summarize_show",
			Agent:      AgentImprov,
			Definition: summarizeShowDefinition,
			Handle: func(ctx context.Context, sess *session.Session, args json.RawMessage) string {
				out := host.SummarizeShow(&sess.Show)
				sess.RecordEvent("summarize_show", 0, "")
				return out
			},
		},
		{
			Name:       "stop_show",
			Agent:      AgentImprov,
			Definition: stopShowDefinition,
			Handle: func(ctx context.Context, sess *session.Session, args json.RawMessage) string {
				var in struct {
					Confirm bool `json:"confirm"`
				}
				if err := decodeArgs(args, &in); err != nil {
					return badArgsReply
				}
				out := host.StopShow(&sess.Show, in.Confirm)
				if in.Confirm {
					sess.RecordEvent("stop_show", sess.Show.CurrentRound, "")
				}
				return out
			},
		},
	}
}
