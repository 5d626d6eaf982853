// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// ErrUnparseableSelection means neither the tool call nor the text carried ids.
var ErrUnparseableSelection = errors.New("model reply contains no content ids")

// uuidPattern matches canonical UUIDs. Free-text scanning is best effort;
// the tool-call arguments are the contract.
var uuidPattern = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\b`)

var (
	selectionValidate     *validator.Validate
	selectionValidateOnce sync.Once
)

func selectionValidator() *validator.Validate {
	selectionValidateOnce.Do(func() {
		selectionValidate = validator.New(validator.WithRequiredStructEnabled())
	})
	return selectionValidate
}

// ParseSelection extracts content ids from a model reply.
// Strict decoding of the tool arguments is tried first, then a UUID scan
// over the free text.
func ParseSelection(c *Completion) (ids []string, strict bool, err error) {
	if c == nil {
		return nil, false, ErrUnparseableSelection
	}

	if len(c.ToolArguments) > 0 && (c.ToolName == "" || c.ToolName == SelectionToolName) {
		sel, decodeErr := decodeSelection(c.ToolArguments)
		if decodeErr == nil {
			return sel.ContentIDs, true, nil
		}
		err = decodeErr
	}

	found := uuidPattern.FindAllString(c.Text, -1)
	if len(found) == 0 {
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrUnparseableSelection, err)
		}
		return nil, false, ErrUnparseableSelection
	}
	return found, false, nil
}

func decodeSelection(raw []byte) (*ContentSelection, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var sel ContentSelection
	if err := dec.Decode(&sel); err != nil {
		return nil, fmt.Errorf("decode tool arguments: %w", err)
	}
	if err := selectionValidator().Struct(&sel); err != nil {
		return nil, fmt.Errorf("validate tool arguments: %w", err)
	}
	return &sel, nil
}

// acceptSelection keeps ids that name an offered candidate, in the order
// returned, without duplicates, up to limit items.
func acceptSelection(ids []string, offered []CandidateItem, limit int) []CandidateItem {
	byID := make(map[string]int, len(offered))
	for i := range offered {
		byID[offered[i].ID] = i
	}

	out := make([]CandidateItem, 0, min(len(ids), limit))
	used := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if len(out) == limit {
			break
		}
		id = strings.TrimSpace(id)
		idx, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := used[id]; dup {
			continue
		}
		used[id] = struct{}{}
		out = append(out, offered[idx])
	}
	return out
}
