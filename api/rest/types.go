package rest

import (
	"time"

	"yqhp/calculator/internal/expression"
	"yqhp/calculator/internal/metrics"
)

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// EvaluateRequest represents an evaluation request.
type EvaluateRequest struct {
	Expression string `json:"expression"`
	Trace      bool   `json:"trace"`
}

// EvaluateResponse represents an evaluation result.
type EvaluateResponse struct {
	Outcome string         `json:"outcome"`
	Result  string         `json:"result,omitempty"`
	Error   string         `json:"error,omitempty"`
	Trace   *TraceResponse `json:"trace,omitempty"`
}

// TraceResponse lists the intermediate forms of a successful evaluation.
type TraceResponse struct {
	Input      string   `json:"input"`
	Normalized string   `json:"normalized"`
	Tokens     []string `json:"tokens"`
	Postfix    []string `json:"postfix"`
	Value      float64  `json:"value"`
	Formatted  string   `json:"formatted"`
}

// KeypadRequest represents one key press against an expression buffer.
type KeypadRequest struct {
	Expression string `json:"expression"`
	Key        string `json:"key"`
}

// KeypadResponse carries the edited buffer and its live preview.
type KeypadResponse struct {
	Expression string `json:"expression"`
	Outcome    string `json:"outcome"`
	Result     string `json:"result,omitempty"`
}

// StatsResponse represents evaluation statistics.
type StatsResponse struct {
	Total     int64                   `json:"total"`
	Outcomes  map[string]int64        `json:"outcomes"`
	Errors    map[string]int64        `json:"errors"`
	Latency   metrics.LatencySnapshot `json:"latency"`
	Uptime    string                  `json:"uptime"`
	StartTime string                  `json:"start_time"`
}

func toEvaluateResponse(result expression.Result) *EvaluateResponse {
	return &EvaluateResponse{
		Outcome: result.Outcome.String(),
		Result:  result.Text,
		Error:   expression.ErrorKind(result.Err),
	}
}

func toTraceResponse(trace *expression.Trace) *TraceResponse {
	return &TraceResponse{
		Input:      trace.Input,
		Normalized: trace.Normalized,
		Tokens:     literals(trace.Tokens),
		Postfix:    literals(trace.Postfix),
		Value:      trace.Value,
		Formatted:  trace.Formatted,
	}
}

func toStatsResponse(snap metrics.Snapshot) *StatsResponse {
	return &StatsResponse{
		Total: snap.Total,
		Outcomes: map[string]int64{
			expression.OutcomeEmpty.String():    snap.Empty,
			expression.OutcomeValue.String():    snap.Value,
			expression.OutcomeNoResult.String(): snap.NoResult,
		},
		Errors:    snap.Errors,
		Latency:   snap.Latency,
		Uptime:    snap.Uptime.Round(time.Second).String(),
		StartTime: formatTime(snap.StartTime),
	}
}

func literals(tokens []expression.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Literal
	}
	return out
}
