package orders

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo"
	"go.uber.org/zap"

	"orderbridge/httputils"
)

type successResponse struct {
	Success bool            `json:"success"`
	Invoice json.RawMessage `json:"invoice"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Handler returns the echo handler for order submissions.
//
// Malformed bodies answer 400 with the plain text "Invalid JSON"; a missing
// or empty item list answers 400 with {"error":"Invalid order data"}; any
// terminal failure of the outbound chain answers 500. Payment recording
// never influences the response.
func (s *Service) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ri := httputils.FromRequest(req)

		body, err := io.ReadAll(req.Body)
		if err != nil {
			ordersRejected.WithLabelValues("bad_request").Inc()
			return c.String(http.StatusBadRequest, "Invalid JSON")
		}

		// The content type is deliberately not trusted: sendBeacon clients
		// deliver JSON flagged as text/plain, so both paths parse the raw
		// body as JSON.
		order, err := ParseOrder(body)
		switch err {
		case nil:
		case ErrInvalidJSON:
			ordersRejected.WithLabelValues("bad_request").Inc()
			return c.String(http.StatusBadRequest, "Invalid JSON")
		default:
			ordersRejected.WithLabelValues("invalid_order").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid order data"})
		}

		raw, err := s.Submit(order)
		if err != nil {
			ordersRejected.WithLabelValues("upstream").Inc()
			s.l.Warn(
				"failed submit order",
				zap.String("request_id", ri.RequestID),
				zap.String("real_ip", ri.RealIP),
				zap.Error(err),
			)
			if werr := c.JSON(http.StatusInternalServerError, errorResponse{
				Error:   "Internal Server Error",
				Message: err.Error(),
			}); werr != nil {
				return werr
			}
			return err
		}

		ordersAccepted.Inc()
		s.l.Info(
			"order accepted",
			zap.String("request_id", ri.RequestID),
			zap.Int("items", len(order.Items)),
		)
		return c.JSON(http.StatusOK, successResponse{Success: true, Invoice: raw})
	}
}
