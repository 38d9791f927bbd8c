package rest

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"yqhp/calculator/internal/calculator"
	"yqhp/calculator/internal/expression"
	"yqhp/calculator/internal/keypad"
)

// healthCheck handles health check requests.
func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "healthy",
		Timestamp: formatTime(time.Now()),
	})
}

// evaluate handles expression evaluation requests.
// POST /api/v1/evaluate
func (s *Server) evaluate(c *fiber.Ctx) error {
	var req EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body: "+err.Error())
	}

	ev, err := s.svc.Evaluate(req.Expression)
	if err != nil {
		if errors.Is(err, calculator.ErrInputTooLong) {
			return badRequest(c, err.Error())
		}
		return err
	}

	resp := toEvaluateResponse(ev.Result)
	if req.Trace && ev.Result.Outcome == expression.OutcomeValue {
		resp.Trace = toTraceResponse(ev.Trace)
	}
	return success(c, resp)
}

// pressKey applies one key press to an expression.
// POST /api/v1/keypad
func (s *Server) pressKey(c *fiber.Ctx) error {
	var req KeypadRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body: "+err.Error())
	}
	if req.Key == "" {
		return badRequest(c, "key is required")
	}

	kp, err := s.svc.Press(req.Expression, req.Key)
	if err != nil {
		if errors.Is(err, calculator.ErrInputTooLong) || errors.Is(err, keypad.ErrUnknownKey) {
			return badRequest(c, err.Error())
		}
		return err
	}

	return success(c, KeypadResponse{
		Expression: kp.Buffer.String(),
		Outcome:    kp.Result.Outcome.String(),
		Result:     kp.Result.Text,
	})
}

// stats returns evaluation statistics.
// GET /api/v1/stats
func (s *Server) stats(c *fiber.Ctx) error {
	return success(c, toStatsResponse(s.svc.Stats()))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
