// Package engine evaluates dice formulas and records their outcomes.
package engine

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/dice-engine/internal/core/check"
	"github.com/louisbranch/dice-engine/internal/core/dice"
	"github.com/louisbranch/dice-engine/internal/core/formula"
	"github.com/louisbranch/dice-engine/internal/engine/storage"
	"github.com/louisbranch/dice-engine/internal/platform/id"
)

const tracerName = "github.com/louisbranch/dice-engine/internal/engine"

// Request describes one formula evaluation.
type Request struct {
	// Expression is the formula text, e.g. "(2d6 + 3) * 2".
	Expression string
	// Seed pins the die roller for reproducible results. When nil a
	// cryptographically random seed is generated.
	Seed *int64
	// Difficulty, when set, compares the evaluated total against a target
	// number.
	Difficulty *int
}

// Result is the outcome of one formula evaluation.
type Result struct {
	// ID identifies the persisted history entry. Empty when the service has
	// no store configured.
	ID string
	// Expression is the normalized formula text.
	Expression string
	// Value is the evaluated total.
	Value float64
	// Seed is the seed the roller used, client-provided or generated.
	Seed int64
	// Rolls lists individual die outcomes in roll order.
	Rolls []dice.Record
	// Check holds the difficulty check outcome when one was requested.
	Check *check.Result
}

// Service parses and evaluates dice formulas.
type Service struct {
	store      storage.Store
	seedSource func() (int64, error)
	tracer     trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithStore enables roll history persistence.
func WithStore(store storage.Store) Option {
	return func(s *Service) { s.store = store }
}

// WithSeedSource overrides how seeds are generated when the request does not
// provide one.
func WithSeedSource(source func() (int64, error)) Option {
	return func(s *Service) { s.seedSource = source }
}

// New creates an evaluation service.
func New(opts ...Option) *Service {
	svc := &Service{
		seedSource: dice.CryptoSeed,
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Evaluate parses the request's formula, rolls it with a seeded roller, and
// returns the total alongside the individual die outcomes. When a store is
// configured the roll is appended to the history.
func (s *Service) Evaluate(ctx context.Context, req Request) (Result, error) {
	ctx, span := s.tracer.Start(ctx, "engine.Evaluate")
	defer span.End()

	expression := strings.TrimSpace(req.Expression)
	span.SetAttributes(attribute.String("formula.expression", expression))

	expr, err := formula.ParseString(expression)
	if err != nil {
		return Result{}, spanError(span, err)
	}

	seed, err := s.resolveSeed(req.Seed)
	if err != nil {
		return Result{}, spanError(span, fmt.Errorf("resolve seed: %w", err))
	}
	span.SetAttributes(attribute.Int64("dice.seed", seed))

	logger := dice.NewLogger()
	value, err := formula.Eval(expr, dice.NewSeeded(seed), logger)
	if err != nil {
		return Result{}, spanError(span, err)
	}

	result := Result{
		Expression: expr.String(),
		Value:      value,
		Seed:       seed,
		Rolls:      logger.Records(),
	}
	if req.Difficulty != nil {
		outcome := check.Check(value, *req.Difficulty)
		result.Check = &outcome
	}

	if s.store != nil {
		// The roll already happened; a history write failure should not
		// discard the result.
		rollID, err := id.NewID()
		if err != nil {
			span.RecordError(err)
			log.Printf("generate roll id: %v", err)
			return result, nil
		}
		entry := storage.Entry{
			ID:         rollID,
			Expression: result.Expression,
			Value:      result.Value,
			Seed:       result.Seed,
			Rolls:      result.Rolls,
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.store.SaveRoll(ctx, entry); err != nil {
			span.RecordError(err)
			log.Printf("save roll %s: %v", entry.ID, err)
		} else {
			result.ID = entry.ID
		}
	}

	return result, nil
}

// Validate parses the formula without rolling it and returns the normalized
// expression text.
func (s *Service) Validate(ctx context.Context, expression string) (string, error) {
	_, span := s.tracer.Start(ctx, "engine.Validate")
	defer span.End()

	expr, err := formula.ParseString(strings.TrimSpace(expression))
	if err != nil {
		return "", spanError(span, err)
	}
	return expr.String(), nil
}

// History returns the most recent rolls, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]storage.Entry, error) {
	ctx, span := s.tracer.Start(ctx, "engine.History")
	defer span.End()

	if s.store == nil {
		return nil, nil
	}
	entries, err := s.store.ListRolls(ctx, limit)
	if err != nil {
		return nil, spanError(span, err)
	}
	return entries, nil
}

// Roll returns a single persisted roll by id.
func (s *Service) Roll(ctx context.Context, rollID string) (storage.Entry, error) {
	ctx, span := s.tracer.Start(ctx, "engine.Roll")
	defer span.End()

	if s.store == nil {
		return storage.Entry{}, fmt.Errorf("roll history is not configured")
	}
	entry, err := s.store.GetRoll(ctx, rollID)
	if err != nil {
		return storage.Entry{}, spanError(span, err)
	}
	return entry, nil
}

func (s *Service) resolveSeed(seed *int64) (int64, error) {
	if seed != nil {
		return *seed, nil
	}
	return s.seedSource()
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
