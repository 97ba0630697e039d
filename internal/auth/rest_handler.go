package auth

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"marketplace/infrastructure"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := decode(r, &req); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	if err := h.service.SignUp(r.Context(), req.Name, req.Email, req.Password); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "please check your inbox for the verification link!",
	})
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req VerifyTokenRequest
	if err := decode(r, &req); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	if err := h.service.VerifyEmail(r.Context(), req.OwnerID(), req.Token); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "your email is verified!",
	})
}

func (h *Handler) RequestVerificationLink(w http.ResponseWriter, r *http.Request) {
	identity, ok := UserFromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrUnauthorized)
		return
	}

	if err := h.service.RequestVerificationLink(r.Context(), identity.ID, identity.Email); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "please check your inbox for the verification link!",
	})
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := decode(r, &req); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	session, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := decode(r, &req); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	session, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	identity, ok := UserFromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrUnauthorized)
		return
	}

	var req RefreshTokenRequest
	if err := decode(r, &req); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	if err := h.service.SignOut(r.Context(), identity.ID, req.RefreshToken); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ForgetPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgetPasswordRequest
	if err := decode(r, &req); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "please check your inbox for the password reset link!",
	})
}

// VerifyPasswordResetToken runs behind the reset-token gate; reaching
// it means the link already checked out.
func (h *Handler) VerifyPasswordResetToken(w http.ResponseWriter, r *http.Request) {
	infrastructure.WriteJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := UserFromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrUnauthorized)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, map[string]Profile{
		"profile": {
			ID:       identity.ID,
			Email:    identity.Email,
			Name:     identity.Name,
			Verified: identity.Verified,
		},
	})
}

func (h *Handler) PublicProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		infrastructure.WriteError(w, infrastructure.NewValidationError("invalid user id!"))
		return
	}

	profile, err := h.service.PublicProfile(r.Context(), id)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, map[string]*PublicProfile{"profile": profile})
}

// SetupAuthRoutes mounts the auth surface on the router.
func SetupAuthRoutes(r *mux.Router, h *Handler, gate *Gate) {
	r.HandleFunc("/auth/sign-up", h.SignUp).Methods(http.MethodPost)
	r.HandleFunc("/auth/verify", h.VerifyEmail).Methods(http.MethodPost)
	r.HandleFunc("/auth/verify-token", gate.RequireAccessToken(h.RequestVerificationLink)).Methods(http.MethodGet)
	r.HandleFunc("/auth/sign-in", h.SignIn).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh-token", h.RefreshToken).Methods(http.MethodPost)
	r.HandleFunc("/auth/sign-out", gate.RequireAccessToken(h.SignOut)).Methods(http.MethodGet)
	r.HandleFunc("/auth/forget-pass", h.ForgetPassword).Methods(http.MethodPost)
	r.HandleFunc("/auth/verify-pass-reset-token", gate.RequireValidResetToken(h.VerifyPasswordResetToken)).Methods(http.MethodPost)
	r.HandleFunc("/auth/profile", gate.RequireAccessToken(h.Profile)).Methods(http.MethodGet)
	r.HandleFunc("/auth/profile/{id}", gate.RequireAccessToken(h.PublicProfile)).Methods(http.MethodGet)
}

type validator interface {
	Validate() error
}

func decode(r *http.Request, req validator) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return infrastructure.NewValidationError("invalid request body!")
	}
	return req.Validate()
}
