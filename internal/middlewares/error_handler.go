package middlewares

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/visiongate/visiongate/pkg/clients/prediction"
	"github.com/visiongate/visiongate/pkg/domain"
)

// ErrorResponse is the envelope every failed request returns.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler turns the errors handlers return into the {error, details}
// envelope. Handlers set their own status through fiber.NewError; domain and
// upstream errors map to 500 with the most specific details available.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse{
			Error: fiberErr.Message,
		})
	}

	if configErr, ok := domain.AsConfigurationError(err); ok {
		log.Error().Strs("missing", configErr.Missing).Msg("Classification rejected, prediction keys missing")

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "server configuration error",
			Details: configErr.Error(),
		})
	}

	if predictionErr, ok := prediction.AsPredictionError(err); ok {
		log.Error().
			Int("status", predictionErr.StatusCode).
			Str("message", predictionErr.Message).
			Msg("Upstream predictor failed")

		// Surface the remote error payload verbatim when the endpoint sent
		// one; the extracted message is the fallback.
		details := predictionErr.Body
		if details == "" {
			details = predictionErr.Message
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "classification failed",
			Details: details,
		})
	}

	// Everything else stays generic on the wire; the log line carries the
	// actual error for operators.
	log.Error().Err(err).Str("path", ctx.Path()).Msg("Unhandled request error")

	return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal server error",
		Details: "an unexpected error occurred",
	})
}
