// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"

	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/recommend"
)

// OpenAIModel ranks through the OpenAI Responses API.
type OpenAIModel struct {
	client    openai.Client
	model     string
	maxTokens int64
}

// NewOpenAI creates an OpenAI-backed model. Extra options are appended
// after the configured ones (tests use them to disable retries).
func NewOpenAI(cfg *config.AIConfig, extra ...option.RequestOption) *OpenAIModel {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, extra...)

	return &OpenAIModel{
		client:    openai.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxOutputTokens,
	}
}

// Name implements recommend.RankingModel.
func (m *OpenAIModel) Name() string { return "openai" }

// Complete implements recommend.RankingModel.
func (m *OpenAIModel) Complete(ctx context.Context, p recommend.Prompt) (*recommend.Completion, error) {
	params, err := m.buildParams(p)
	if err != nil {
		return nil, err
	}

	resp, err := m.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses: %w", err)
	}

	c := &recommend.Completion{Text: resp.OutputText()}
	for _, item := range resp.Output {
		if item.Type == "function_call" {
			c.ToolName = item.Name
			c.ToolArguments = []byte(item.Arguments)
			break
		}
	}
	return c, nil
}

func (m *OpenAIModel) buildParams(p recommend.Prompt) (responses.ResponseNewParams, error) {
	schema, err := Schema(p.Tool.Parameters)
	if err != nil {
		return responses.ResponseNewParams{}, fmt.Errorf("tool schema: %w", err)
	}

	tool := responses.ToolParamOfFunction(p.Tool.Name, schema, true)
	if p.Tool.Description != "" {
		tool.OfFunction.Description = openai.String(p.Tool.Description)
	}

	input := responses.ResponseInputParam{
		responses.ResponseInputItemParamOfMessage(p.System, responses.EasyInputMessageRoleSystem),
		responses.ResponseInputItemParamOfMessage(p.User, responses.EasyInputMessageRoleUser),
	}

	return responses.ResponseNewParams{
		Model: shared.ResponsesModel(m.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: input,
		},
		MaxOutputTokens: openai.Int(m.maxTokens),
		Tools:           []responses.ToolUnionParam{tool},
		ToolChoice: responses.ResponseNewParamsToolChoiceUnion{
			OfFunctionTool: &responses.ToolChoiceFunctionParam{Name: p.Tool.Name},
		},
	}, nil
}
