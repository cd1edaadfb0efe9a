package main

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/tbxark/intentagent/agent"
	"github.com/tbxark/intentagent/catalog"
	"github.com/tbxark/intentagent/config"
	"github.com/tbxark/intentagent/dialogue"
	"github.com/tbxark/intentagent/extract"
	"github.com/tbxark/intentagent/intent"
)

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.Catalog)
}

func newChatModel(ctx context.Context, cfg *config.Config, name string) (*openai.ChatModel, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.Model.APIKey,
		Model:   name,
		BaseURL: cfg.Model.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("init chat model %s: %w", name, err)
	}
	return cm, nil
}

func buildRouter(ctx context.Context, cfg *config.Config) (*agent.Router, error) {
	if cfg.Model.APIKey == "" {
		return nil, fmt.Errorf("model.api_key is empty, set INTENTAGENT_MODEL_API_KEY or DASHSCOPE_API_KEY")
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	intentModel, err := newChatModel(ctx, cfg, cfg.Model.IntentModel)
	if err != nil {
		return nil, err
	}
	chatModel, err := newChatModel(ctx, cfg, cfg.Model.ChatModel)
	if err != nil {
		return nil, err
	}

	labels := agent.DefaultLabels()
	classifier := intent.NewFailbackClassifier(
		intent.NewToolBasedClassifier(intentModel),
		intent.NewLocalClassifier(agent.LocalKeywords(cat, labels)),
	)
	var extractor extract.Extractor
	switch cfg.Extractor {
	case config.ExtractorFunction:
		extractor = extract.NewFunctionCallExtractor(chatModel)
	default:
		extractor = extract.NewTagExtractor(intentModel)
	}
	phraser := dialogue.NewFailbackPhraser(
		dialogue.NewToolBasedPhraser(chatModel),
		&dialogue.LocalPhraser{},
	)

	return agent.NewRouter(cat, classifier, extractor, phraser,
		agent.WithLabels(labels),
		agent.WithRetry(cfg.RetryPolicy()),
		agent.WithCallbackReconfirm(cfg.Router.ReconfirmCallback),
		agent.WithArgumentMerge(cfg.Router.MergeArguments),
	)
}
