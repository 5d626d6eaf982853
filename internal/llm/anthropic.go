// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/recommend"
)

// AnthropicModel ranks through the Anthropic Messages API.
type AnthropicModel struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropic creates an Anthropic-backed model.
func NewAnthropic(cfg *config.AIConfig, extra ...option.RequestOption) *AnthropicModel {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, extra...)

	return &AnthropicModel{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxOutputTokens,
	}
}

// Name implements recommend.RankingModel.
func (m *AnthropicModel) Name() string { return "anthropic" }

// Complete implements recommend.RankingModel.
func (m *AnthropicModel) Complete(ctx context.Context, p recommend.Prompt) (*recommend.Completion, error) {
	params, err := m.buildParams(p)
	if err != nil {
		return nil, err
	}

	msg, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic messages: %w", err)
	}

	var (
		c    recommend.Completion
		text strings.Builder
	)
	for _, block := range msg.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			text.WriteString(b.Text)
		case anthropic.ToolUseBlock:
			if c.ToolName == "" {
				args, err := b.Input.MarshalJSON()
				if err != nil {
					return nil, fmt.Errorf("tool input: %w", err)
				}
				c.ToolName = b.Name
				c.ToolArguments = args
			}
		}
	}
	c.Text = text.String()
	return &c, nil
}

func (m *AnthropicModel) buildParams(p recommend.Prompt) (anthropic.MessageNewParams, error) {
	schema, err := Schema(p.Tool.Parameters)
	if err != nil {
		return anthropic.MessageNewParams{}, fmt.Errorf("tool schema: %w", err)
	}

	tool := anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        p.Tool.Name,
			Description: anthropic.String(p.Tool.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: schema[propertiesKey],
				Required:   requiredFields(schema),
			},
		},
	}

	return anthropic.MessageNewParams{
		Model:     anthropic.Model(m.model),
		MaxTokens: m.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: p.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(p.User)),
		},
		Tools: []anthropic.ToolUnionParam{tool},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: p.Tool.Name},
		},
	}, nil
}
