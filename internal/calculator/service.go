// Package calculator is the entry point shared by the CLI and the REST API.
// It guards input size, logs each evaluation and records statistics.
package calculator

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"yqhp/calculator/internal/config"
	"yqhp/calculator/internal/expression"
	"yqhp/calculator/internal/keypad"
	"yqhp/calculator/internal/metrics"
)

// ErrInputTooLong is returned when an expression exceeds the configured limit.
var ErrInputTooLong = errors.New("expression too long")

// Evaluation is the outcome of one Service.Evaluate call.
type Evaluation struct {
	Input   string
	Result  expression.Result
	Trace   *expression.Trace // nil for blank input
	Elapsed time.Duration
}

// KeyPress is the outcome of one Service.Press call.
type KeyPress struct {
	Buffer keypad.Buffer
	Result expression.Result
}

// Service evaluates expressions on behalf of callers.
type Service struct {
	cfg      config.CalculatorConfig
	log      *zap.Logger
	recorder *metrics.Recorder
	now      func() time.Time
}

// NewService creates a Service. A nil logger disables logging and a nil
// recorder gets a fresh one.
func NewService(cfg config.CalculatorConfig, log *zap.Logger, recorder *metrics.Recorder) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	return &Service{
		cfg:      cfg,
		log:      log.Named("calculator"),
		recorder: recorder,
		now:      time.Now,
	}
}

// Evaluate runs the pipeline on raw. The only error it returns is
// ErrInputTooLong; evaluation failures are reported in the Result.
func (s *Service) Evaluate(raw string) (*Evaluation, error) {
	if err := s.checkLength(raw); err != nil {
		return nil, err
	}
	return s.evaluate(raw), nil
}

// Press applies one key to expr and returns the new buffer with its preview.
// For "=" the result is the evaluation of the buffer before it was replaced.
// Previews are recorded in Stats like direct evaluations.
func (s *Service) Press(expr, key string) (*KeyPress, error) {
	if err := s.checkLength(expr); err != nil {
		return nil, err
	}

	if key == keypad.KeyEquals {
		result := s.evaluate(expr).Result
		next := keypad.New("")
		if result.Outcome == expression.OutcomeValue {
			next = keypad.New(result.Text)
		}
		s.log.Debug("keypad equals",
			zap.String("expression", expr),
			zap.String("outcome", result.Outcome.String()),
		)
		return &KeyPress{Buffer: next, Result: result}, nil
	}

	next, err := keypad.New(expr).Press(key)
	if err != nil {
		return nil, err
	}
	s.log.Debug("keypad press",
		zap.String("key", key),
		zap.String("before", expr),
		zap.String("after", next.String()),
	)
	return &KeyPress{Buffer: next, Result: s.evaluate(next.String()).Result}, nil
}

// Stats returns the statistics of every evaluation so far, keypad
// previews included.
func (s *Service) Stats() metrics.Snapshot {
	return s.recorder.Snapshot()
}

func (s *Service) evaluate(raw string) *Evaluation {
	start := s.now()
	trace, err := expression.Explain(raw)
	elapsed := s.now().Sub(start)

	var text string
	if err == nil {
		text = trace.Formatted
	}
	result := expression.NewResult(text, err)
	s.recorder.Record(result, elapsed)

	if s.cfg.Trace && trace != nil {
		s.logTrace(trace)
	}
	s.logResult(raw, result, elapsed)

	return &Evaluation{
		Input:   raw,
		Result:  result,
		Trace:   trace,
		Elapsed: elapsed,
	}
}

func (s *Service) checkLength(raw string) error {
	if s.cfg.MaxInputLength > 0 && len(raw) > s.cfg.MaxInputLength {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrInputTooLong, len(raw), s.cfg.MaxInputLength)
	}
	return nil
}

func (s *Service) logResult(raw string, result expression.Result, elapsed time.Duration) {
	fields := []zap.Field{
		zap.String("expression", raw),
		zap.String("outcome", result.Outcome.String()),
		zap.Duration("elapsed", elapsed),
	}
	switch result.Outcome {
	case expression.OutcomeValue:
		s.log.Debug("evaluated", append(fields, zap.String("result", result.Text))...)
	case expression.OutcomeNoResult:
		s.log.Debug("evaluation failed", append(fields,
			zap.String("kind", expression.ErrorKind(result.Err)),
			zap.Error(result.Err),
		)...)
	default:
		s.log.Debug("empty input", fields...)
	}
}

func (s *Service) logTrace(trace *expression.Trace) {
	s.log.Debug("trace",
		zap.String("input", trace.Input),
		zap.String("normalized", trace.Normalized),
		zap.Stringers("tokens", trace.Tokens),
		zap.Stringers("postfix", trace.Postfix),
		zap.String("formatted", trace.Formatted),
	)
}
