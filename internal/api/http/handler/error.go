package handler

import (
	"errors"
	"net/http"

	"github.com/postline/postline-auth/internal/model"
)

// unauthorizedMessage is the single message used for every credential
// failure. Wrong secret, unknown account and bad tokens must all read the
// same to the client.
const unauthorizedMessage = "invalid credentials"

type conflictingDetails struct {
	Handle bool `json:"handle"`
	Email  bool `json:"email"`
}

type conflictResponse struct {
	Message            string              `json:"message"`
	ConflictingDetails *conflictingDetails `json:"conflictingDetails,omitempty"`
	Email              string              `json:"email,omitempty"`
}

// handleError translates domain errors into HTTP responses: conflicts to
// 409 with a structured body, credential failures to 401, everything else
// to a generic 500.
func (h *Auth) handleError(w http.ResponseWriter, err error) {
	var regConflict *model.RegistrationConflictError
	var fedConflict *model.FederatedConflictError

	switch {
	case errors.As(err, &regConflict):
		h.writeJSON(w, http.StatusConflict, conflictResponse{
			Message: "account already exists with these details",
			ConflictingDetails: &conflictingDetails{
				Handle: regConflict.HandleTaken,
				Email:  regConflict.EmailTaken,
			},
		})
	case errors.As(err, &fedConflict):
		h.writeJSON(w, http.StatusConflict, conflictResponse{
			Message: "a password account already uses this email",
			Email:   fedConflict.Email,
		})
	case isUnauthorized(err):
		h.writeJSON(w, http.StatusUnauthorized, messageResponse{Message: unauthorizedMessage})
	default:
		h.writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
	}
}

func isUnauthorized(err error) bool {
	return errors.Is(err, model.ErrUnauthorized) ||
		errors.Is(err, model.ErrTokenExpired) ||
		errors.Is(err, model.ErrTokenInvalidSignature) ||
		errors.Is(err, model.ErrTokenInvalidType) ||
		errors.Is(err, model.ErrTokenMalformed)
}
