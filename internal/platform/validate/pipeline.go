// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/reelhub/internal/platform/apperr"
	"github.com/taibuivan/reelhub/internal/platform/constants"
	"github.com/taibuivan/reelhub/internal/platform/respond"
)

// # Fields

// Fields is the decoded JSON object a [Pipeline] evaluates.
type Fields map[string]any

// Has reports whether the field is present and not null.
func (fields Fields) Has(name string) bool {
	value, ok := fields[name]
	return ok && value != nil
}

// String returns the field rendered as text. Missing and null fields are "".
func (fields Fields) String(name string) string {
	value, ok := fields[name]
	if !ok || value == nil {
		return ""
	}
	if text, ok := value.(string); ok {
		return text
	}
	return fmt.Sprint(value)
}

// # Rules

// Lookup reports whether a value is already taken in persistent storage.
type Lookup func(ctx context.Context, value string) (bool, error)

// Rule is one check against one field. Rules are immutable values; build them
// once at route registration.
type Rule struct {
	field   string
	message string
	check   func(ctx context.Context, fields Fields) (bool, error)
}

// Field returns the name of the field the rule inspects.
func (rule Rule) Field() string { return rule.field }

// Message returns the text reported when the rule fails.
func (rule Rule) Message() string { return rule.message }

// WithMessage returns a copy of the rule reporting msg on failure.
func (rule Rule) WithMessage(msg string) Rule {
	rule.message = msg
	return rule
}

// Required fails when the field is missing, null or blank.
func Required(field string) Rule {
	return Rule{
		field:   field,
		message: field + " is required",
		check: func(_ context.Context, fields Fields) (bool, error) {
			return fields.Has(field) && strings.TrimSpace(fields.String(field)) != "", nil
		},
	}
}

// MinLength fails when the field has fewer than n characters.
func MinLength(field string, n int) Rule {
	return Rule{
		field:   field,
		message: fmt.Sprintf("%s minimum %d characters", field, n),
		check: func(_ context.Context, fields Fields) (bool, error) {
			return utf8.RuneCountInString(fields.String(field)) >= n, nil
		},
	}
}

// EqualsField fails when field differs from other.
func EqualsField(field, other string) Rule {
	return Rule{
		field:   field,
		message: field + " not match",
		check: func(_ context.Context, fields Fields) (bool, error) {
			return fields.String(field) == fields.String(other), nil
		},
	}
}

// Unique fails when lookup finds the value already in use. A lookup error
// aborts evaluation.
func Unique(field string, lookup Lookup) Rule {
	return Rule{
		field:   field,
		message: field + " already used",
		check: func(ctx context.Context, fields Fields) (bool, error) {
			taken, err := lookup(ctx, fields.String(field))
			if err != nil {
				return false, err
			}
			return !taken, nil
		},
	}
}

// # Pipeline

// Pipeline is an ordered rule set bound to one route.
//
// # Modes
//
// By default evaluation stops at the first failing rule, so lookups placed
// after it are never issued. [Pipeline.CollectAll] evaluates every rule. The
// response message is always the first failure.
type Pipeline struct {
	rules       []Rule
	normalizers map[string]func(string) string
	collectAll  bool
	maxBody     int64
}

// NewPipeline returns a first-failure pipeline over rules, in order.
func NewPipeline(rules ...Rule) *Pipeline {
	return &Pipeline{
		rules:   append([]Rule(nil), rules...),
		maxBody: constants.MaxRequestBodyBytes,
	}
}

// CollectAll returns a copy of the pipeline that reports every violation.
func (pipeline *Pipeline) CollectAll() *Pipeline {
	clone := *pipeline
	clone.collectAll = true
	return &clone
}

/*
Normalize returns a copy of the pipeline that rewrites the named text field
with fn before any rule sees it. Rules then judge the value the handler will
store, not the raw input. The request body itself is left untouched.
*/
func (pipeline *Pipeline) Normalize(field string, fn func(string) string) *Pipeline {
	clone := *pipeline
	clone.normalizers = make(map[string]func(string) string, len(pipeline.normalizers)+1)
	for name, normalize := range pipeline.normalizers {
		clone.normalizers[name] = normalize
	}
	clone.normalizers[field] = fn
	return &clone
}

func (pipeline *Pipeline) normalize(fields Fields) Fields {
	if len(pipeline.normalizers) == 0 {
		return fields
	}

	view := make(Fields, len(fields))
	for name, value := range fields {
		view[name] = value
	}
	for name, normalize := range pipeline.normalizers {
		if text, ok := view[name].(string); ok {
			view[name] = normalize(text)
		}
	}
	return view
}

/*
Evaluate runs the rules against fields, after applying any normalizers.

Returns:
  - nil when every rule passes
  - *apperr.AppError VALIDATION_ERROR carrying the first failure as its message
  - *apperr.AppError INTERNAL_ERROR when a lookup fails
*/
func (pipeline *Pipeline) Evaluate(ctx context.Context, fields Fields) error {
	var failures []apperr.FieldError
	fields = pipeline.normalize(fields)

	for _, rule := range pipeline.rules {
		ok, err := rule.check(ctx, fields)
		if err != nil {
			return apperr.Internal(fmt.Errorf("validate_rule_%s_failed: %w", rule.field, err))
		}
		if ok {
			continue
		}

		failures = append(failures, apperr.FieldError{Field: rule.field, Message: rule.message})
		if !pipeline.collectAll {
			break
		}
	}

	if len(failures) == 0 {
		return nil
	}
	return apperr.ValidationError(failures[0].Message, failures...)
}

/*
Middleware adapts the pipeline to the router.

# Flow

 1. Buffer the body (bounded by MaxRequestBodyBytes).
 2. Decode it as a JSON object; an empty body counts as {}.
 3. Evaluate the rules and answer 400 on the first violation.
 4. Restore the buffered body so the handler decodes the same bytes.
*/
func (pipeline *Pipeline) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			raw, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, pipeline.maxBody))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					respond.Error(writer, request, apperr.ValidationError("Request body too large"))
					return
				}
				respond.Error(writer, request, ErrInvalidJSON)
				return
			}

			fields := Fields{}
			if len(bytes.TrimSpace(raw)) > 0 {
				if err := json.Unmarshal(raw, &fields); err != nil {
					respond.Error(writer, request, ErrInvalidJSON)
					return
				}
			}

			if err := pipeline.Evaluate(request.Context(), fields); err != nil {
				respond.Error(writer, request, err)
				return
			}

			request.Body = io.NopCloser(bytes.NewReader(raw))
			next.ServeHTTP(writer, request)
		})
	}
}
