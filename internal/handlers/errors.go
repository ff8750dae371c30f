package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/scoreboard/internal/leaderboard"
)

// statusFor maps a refusal to its HTTP status.
func statusFor(kind leaderboard.Kind) int {
	switch kind {
	case leaderboard.KindEmptyName, leaderboard.KindNameTooLong,
		leaderboard.KindInvalidScore, leaderboard.KindInvalidLevel:
		return http.StatusBadRequest
	case leaderboard.KindTooSoon:
		return http.StatusTooManyRequests
	case leaderboard.KindNotPermitted:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// toHTTPError turns a leaderboard error into a problem response whose first error detail
// carries the refusal kind. Storage details are not leaked to clients.
func toHTTPError(err error, location string) huma.StatusError {
	kind := leaderboard.KindOf(err)
	status := statusFor(kind)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "the leaderboard could not be saved, try again later"
	}

	return huma.NewError(status, msg, &huma.ErrorDetail{
		Message:  string(kind),
		Location: location,
		Value:    string(kind),
	})
}
