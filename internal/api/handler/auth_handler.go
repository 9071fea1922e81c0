package handler

import (
	"encoding/json"
	"net/http"

	"cp_tracker/internal/api/middleware"
	"cp_tracker/internal/app/service"
	"cp_tracker/internal/common"
	"cp_tracker/internal/common/security"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
	tokens      *security.TokenIssuer
}

func NewAuthHandler(authService *service.AuthService, tokens *security.TokenIssuer) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Verifier(h.tokens))
		protected.Use(middleware.Authenticator)
		protected.Get("/profile", h.profile)
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if _, err := h.authService.Signup(r.Context(), req); err != nil {
		respondWithServiceError(w, r, err, "Server error while registering user")
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, common.MessageResponse{Message: "User registered successfully"})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	token, err := h.authService.Login(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, r, err, "Server error while logging in")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, service.LoginResponse{Message: "Login successful", Token: token})
}

func (h *AuthHandler) profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	user, err := h.authService.Profile(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, r, err, "Server error while loading profile")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}
