// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package validation

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Kind  string `json:"kind" validate:"required,oneof=watched rated"`
	Limit int    `json:"limit" validate:"gte=1,lte=50"`
	Inner struct {
		Port int `koanf:"port" validate:"gt=0"`
	} `koanf:"server"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	valid := sample{Kind: "rated", Limit: 10}
	valid.Inner.Port = 8080
	if err := ValidateStruct(&valid); err != nil {
		t.Fatalf("ValidateStruct(valid) = %v", err)
	}

	invalid := sample{Kind: "deleted", Limit: 0}
	err := ValidateStruct(&invalid)

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if len(verr.Fields) != 3 {
		t.Fatalf("len(Fields) = %d, want 3: %v", len(verr.Fields), verr)
	}

	msg := err.Error()
	for _, want := range []string{
		"kind must be one of: watched rated",
		"limit must be at least 1",
		"server.port must be greater than 0",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}

	details := verr.Details()
	if _, ok := details["fields"]; !ok {
		t.Error("Details() missing fields")
	}
}
