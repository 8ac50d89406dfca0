package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jllopis/maestro/pkg/core"
	"github.com/jllopis/maestro/pkg/errors"
	"github.com/jllopis/maestro/pkg/telemetry"
)

// Scoring weights. Confidence is 0.5 + 0.15 per point, capped at 0.95.
const (
	keywordWeight     = 1
	problemTypeWeight = 2
	urgencyBonus      = 1

	baseConfidence     = 0.5
	pointConfidence    = 0.15
	maxConfidence      = 0.95
	fallbackConfidence = 0.3
)

type roleScore struct {
	role    core.Role
	score   int
	matches []string
}

// DetermineRole picks the role best suited to input. situation may be nil.
//
// Each role scores one point per keyword found as a word in the lower-cased
// input (see matchKeyword) and two more when it lists the situation's problem
// type. High urgency adds a point to the leader. Ties go to the lower priority number, then catalog
// order. With no signal at all the default role is chosen at low confidence.
func (o *Orchestrator) DetermineRole(ctx context.Context, input string, situation *core.Situation) (core.Decision, error) {
	ctx, span := o.startSpan(ctx, "Orchestrator.DetermineRole",
		attribute.Int(telemetry.AttrInputLength, len(input)),
	)
	defer span.End()
	if situation != nil {
		span.SetAttributes(telemetry.SituationAttributes(situation.ProblemType, situation.Urgency)...)
	}

	if strings.TrimSpace(input) == "" {
		err := errors.New(errors.CodeInvalidInput, "input must not be empty", nil)
		o.fail(ctx, span, err, "determine_role")
		return core.Decision{}, err
	}

	decision := o.score(input, situation)

	o.mu.Lock()
	o.decisions = append(o.decisions, DecisionRecord{
		Input:     input,
		Situation: situation,
		Decision:  decision,
		At:        o.now(),
	})
	o.mu.Unlock()

	span.SetAttributes(telemetry.RoleAttributes(string(decision.Role), o.role(decision.Role).Name)...)
	span.SetAttributes(attribute.Float64(telemetry.AttrRoleConfidence, decision.Confidence))
	o.metrics.RecordInference(ctx, string(decision.Role), decision.Confidence)
	o.emitter.Emit(ctx, core.NewEvent(core.EventRoleDetermined, decision.Role, "", map[string]any{
		"input":      input,
		"confidence": decision.Confidence,
	}))
	o.logger.DebugContext(ctx, "orchestrator.role.determined",
		slog.String("role", string(decision.Role)),
		slog.Float64("confidence", decision.Confidence),
		slog.String("reasoning", decision.Reasoning),
	)
	return decision, nil
}

func (o *Orchestrator) score(input string, situation *core.Situation) core.Decision {
	text := strings.ToLower(input)

	var best *roleScore
	for _, r := range o.catalog.All() {
		s := roleScore{role: r}
		for _, kw := range r.Keywords {
			if word, ok := matchKeyword(text, kw); ok {
				s.score += keywordWeight
				s.matches = append(s.matches, word)
			}
		}
		if situation != nil && situation.ProblemType != "" && r.HandlesProblem(situation.ProblemType) {
			s.score += problemTypeWeight
		}
		if s.score == 0 {
			continue
		}
		if best == nil || s.score > best.score || (s.score == best.score && r.Priority < best.role.Priority) {
			candidate := s
			best = &candidate
		}
	}

	if best == nil {
		return core.Decision{
			Role:       o.defaultRole,
			Confidence: fallbackConfidence,
			Reasoning:  "no role-specific signal, falling back to the default role",
		}
	}

	points := best.score
	if situation != nil && strings.EqualFold(situation.Urgency, "high") {
		points += urgencyBonus
	}
	confidence := math.Min(maxConfidence, baseConfidence+pointConfidence*float64(points))

	return core.Decision{
		Role:       best.role.Key,
		Confidence: math.Round(confidence*100) / 100,
		Reasoning:  reasoning(best, situation),
	}
}

// matchKeyword reports whether kw occurs in text on word boundaries. A
// trailing "*" makes kw a stem that may be followed by more word characters.
func matchKeyword(text, kw string) (string, bool) {
	stem := strings.HasSuffix(kw, "*")
	word := strings.TrimSuffix(kw, "*")
	if word == "" {
		return "", false
	}
	for from := 0; from < len(text); {
		i := strings.Index(text[from:], word)
		if i < 0 {
			return "", false
		}
		start := from + i
		end := start + len(word)
		if wordBoundaryBefore(text, start) && (stem || wordBoundaryAfter(text, end)) {
			return word, true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		from = start + size
	}
	return "", false
}

func wordBoundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func wordBoundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func reasoning(s *roleScore, situation *core.Situation) string {
	var parts []string
	if len(s.matches) > 0 {
		parts = append(parts, fmt.Sprintf("matched %s", strings.Join(s.matches, ", ")))
	}
	if situation != nil && s.role.HandlesProblem(situation.ProblemType) {
		parts = append(parts, fmt.Sprintf("handles %s problems", situation.ProblemType))
	}
	if situation != nil && strings.EqualFold(situation.Urgency, "high") {
		parts = append(parts, "high urgency")
	}
	return strings.Join(parts, "; ")
}

func (o *Orchestrator) fail(ctx context.Context, span trace.Span, err error, operation string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	o.metrics.RecordError(ctx, err, operation)
	o.logger.ErrorContext(ctx, "orchestrator.error",
		slog.String("operation", operation),
		slog.Any("error", errors.As(err)),
	)
}
