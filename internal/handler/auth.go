package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/brandforge/printshop/internal/middleware"
	"github.com/brandforge/printshop/internal/user"
)

type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	BusinessName string `json:"business_name" validate:"required,min=2"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	BusinessName string    `json:"business_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type AuthHandler struct {
	service  user.Service
	tokens   *user.TokenManager
	validate *validator.Validate
}

func NewAuthHandler(service user.Service, tokens *user.TokenManager) *AuthHandler {
	return &AuthHandler{
		service:  service,
		tokens:   tokens,
		validate: validator.New(),
	}
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var requestPayload RegisterRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode register request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:   "Validation failed",
				Details: formatValidationErrors(validationErrors),
			})
		} else {
			log.Error().Err(err).Msg("Unexpected error type during validation")
			respondWithError(w, http.StatusInternalServerError, "Internal validation error")
		}
		return
	}

	createdUser, err := h.service.Register(r.Context(), requestPayload.Email, requestPayload.Password, requestPayload.BusinessName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to register user via service")

		var clientMessage string
		if errors.Is(err, user.ErrEmailExists) {
			clientMessage = "Email already exists"
		} else {
			clientMessage = "Failed to register"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusCreated, toUserResponse(createdUser))
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var requestPayload LoginRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode login request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:   "Validation failed",
				Details: formatValidationErrors(validationErrors),
			})
		} else {
			log.Error().Err(err).Msg("Unexpected error type during validation")
			respondWithError(w, http.StatusInternalServerError, "Internal validation error")
		}
		return
	}

	authUser, err := h.service.Authenticate(r.Context(), requestPayload.Email, requestPayload.Password)
	if err != nil {
		// One generic message for every credential failure.
		if errors.Is(err, user.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Error().Err(err).Msg("Failed to authenticate via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to authenticate")
		return
	}

	token, err := h.tokens.Issue(authUser.ID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue token")
		respondWithError(w, http.StatusInternalServerError, "Failed to authenticate")
		return
	}

	respondWithJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		User:  toUserResponse(authUser),
	})
}

func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	foundUser, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get user by id via service")

		var clientMessage string
		if errors.Is(err, user.ErrNotFound) {
			clientMessage = "User not found"
		} else {
			clientMessage = "Failed to get user"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, toUserResponse(foundUser))
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		BusinessName: u.BusinessName,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
