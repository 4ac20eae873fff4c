// chatctl is a local text harness for the voice agents: it runs the tool
// surface in-process against an OpenAI-compatible chat endpoint, so the
// improv host and the shopping assistant can be exercised without the
// voice orchestrator.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ashureev/voicebooth/internal/catalog"
	"github.com/ashureev/voicebooth/internal/improv"
	"github.com/ashureev/voicebooth/internal/orders"
	"github.com/ashureev/voicebooth/internal/session"
	"github.com/ashureev/voicebooth/internal/shop"
	"github.com/ashureev/voicebooth/internal/tools"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const systemPrompt = "You are the voice of a live demo booth with two " +
	"personas: the host of the Improv Battle game show, and a friendly " +
	"shopping assistant for a small product catalog. Use the provided tools " +
	"for every game or shopping action and speak their replies back to the " +
	"user. Keep responses short enough to say out loud."

func getEnv(name, fallback string) string {
	if value, ok := os.LookupEnv(name); ok {
		return value
	}
	return fallback
}

func main() {
	apiURL := flag.String("api", getEnv("OPENAI_URL", "https://api.openai.com/v1"), "URL for the OpenAI API endpoint")
	model := flag.String("model", getEnv("OPENAI_MODEL", "gpt-4o-mini"), "Technical name of the LLM")
	userMessage := flag.String("message", "", "Send one message and exit")
	ordersPath := flag.String("orders", "./data/orders.json", "Path to the JSON order file")
	seed := flag.Uint64("seed", 0, "Scenario shuffle seed (0 = random)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	registry, sess, err := buildAgents(*ordersPath, *seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Fatal:", err)
		os.Exit(1)
	}

	options := []option.RequestOption{option.WithBaseURL(*apiURL)}
	if apiKey := getEnv("OPENAI_API_KEY", ""); apiKey != "" {
		options = append(options, option.WithAPIKey(apiKey))
	}
	client := openai.NewClient(options...)

	param := openai.ChatCompletionNewParams{
		Model:    *model,
		Messages: []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(systemPrompt)},
		Tools:    registry.Definitions(),
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		prompt := *userMessage
		if prompt == "" {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			prompt = scanner.Text()
		}
		if prompt == "" {
			continue
		}

		param.Messages = append(param.Messages, openai.UserMessage(prompt))
		if err := runPrompt(context.Background(), client, &param, registry, sess); err != nil {
			fmt.Fprintln(os.Stderr, "Fatal:", err)
			os.Exit(1)
		}

		if *userMessage != "" {
			break
		}
	}
}

// buildAgents wires the in-process tool stack the same way the server does.
func buildAgents(ordersPath string, seed uint64) (*tools.Registry, *session.Session, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, nil, err
	}
	scenarios, err := improv.LoadScenarios()
	if err != nil {
		return nil, nil, err
	}
	store, err := orders.NewFileStore(ordersPath)
	if err != nil {
		return nil, nil, err
	}

	host := improv.NewHost(scenarios, seed)
	assistant := shop.NewAssistant(cat, store)
	registry := tools.NewRegistry(host, assistant)
	sess := session.NewManager(nil).GetOrCreate("local", "chatctl")
	return registry, sess, nil
}

// runPrompt drives one model turn, looping while the model keeps asking for
// tool calls.
func runPrompt(ctx context.Context, client openai.Client, param *openai.ChatCompletionNewParams, registry *tools.Registry, sess *session.Session) error {
	for {
		completion, err := client.Chat.Completions.New(ctx, *param)
		if err != nil {
			return err
		}
		if len(completion.Choices) == 0 {
			return fmt.Errorf("model returned no choices")
		}

		message := completion.Choices[0].Message
		param.Messages = append(param.Messages, message.ToParam())

		if message.Content != "" {
			fmt.Println(message.Content)
		}

		if len(message.ToolCalls) == 0 {
			return nil
		}

		for _, toolCall := range message.ToolCalls {
			fmt.Println("Tool Call:", toolCall.Function.Name, toolCall.Function.Arguments)
			reply := registry.Dispatch(ctx, sess, toolCall.Function.Name, []byte(toolCall.Function.Arguments))
			fmt.Println("Result:", reply)
			param.Messages = append(param.Messages, openai.ToolMessage(reply, toolCall.ID))
		}
	}
}
