// Package testcases runs the router against a real model. The tests are
// skipped unless INTENTAGENT_RUN_LIVE_TESTS=1 and ../config.json exist.
package testcases

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/tbxark/intentagent/agent"
	"github.com/tbxark/intentagent/catalog"
	"github.com/tbxark/intentagent/dialogue"
	"github.com/tbxark/intentagent/extract"
	"github.com/tbxark/intentagent/intent"
)

type Config struct {
	APIKey      string `json:"api_key"`
	BaseURL     string `json:"base_url"`
	IntentModel string `json:"intent_model"`
	ChatModel   string `json:"chat_model"`
}

func loadConfig(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var conf Config
	if err := json.Unmarshal(file, &conf); err != nil {
		return nil, err
	}
	if conf.IntentModel == "" {
		conf.IntentModel = "tongyi-intent-detect-v3"
	}
	if conf.ChatModel == "" {
		conf.ChatModel = "qwen-flash"
	}
	return &conf, nil
}

func initChatModel(t *testing.T, conf *Config, name string) *openai.ChatModel {
	t.Helper()
	chatModel, err := openai.NewChatModel(context.Background(), &openai.ChatModelConfig{
		APIKey:  conf.APIKey,
		Model:   name,
		BaseURL: conf.BaseURL,
	})
	if err != nil {
		t.Fatalf("failed to init chat model %s: %v", name, err)
	}
	return chatModel
}

type routerOptions struct {
	functionCalling bool
	opts            []agent.Option
}

type RouterOption func(*routerOptions)

// WithFunctionCalling extracts through native tool calls instead of <tool_call> text.
func WithFunctionCalling() RouterOption {
	return func(o *routerOptions) {
		o.functionCalling = true
	}
}

func WithRouterOptions(opts ...agent.Option) RouterOption {
	return func(o *routerOptions) {
		o.opts = append(o.opts, opts...)
	}
}

func NewTestRouter(t *testing.T, opts ...RouterOption) *agent.Router {
	t.Helper()
	if os.Getenv("INTENTAGENT_RUN_LIVE_TESTS") != "1" {
		t.Skip("set INTENTAGENT_RUN_LIVE_TESTS=1 to run live LLM tests")
	}
	conf, err := loadConfig("../config.json")
	if err != nil {
		t.Skipf("failed to load config: %v", err)
	}
	if conf.APIKey == "" {
		t.Skip("config.json api_key is empty")
	}

	o := &routerOptions{}
	for _, opt := range opts {
		opt(o)
	}
	intentModel := initChatModel(t, conf, conf.IntentModel)
	chatModel := initChatModel(t, conf, conf.ChatModel)

	var extractor extract.Extractor = extract.NewTagExtractor(intentModel)
	if o.functionCalling {
		extractor = extract.NewFunctionCallExtractor(chatModel)
	}
	r, err := agent.NewRouter(
		catalog.Default(),
		intent.NewToolBasedClassifier(intentModel),
		extractor,
		dialogue.NewToolBasedPhraser(chatModel),
		o.opts...,
	)
	if err != nil {
		t.Fatalf("failed to create router: %v", err)
	}
	return r
}
