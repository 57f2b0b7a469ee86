package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/poseidoncap/refdata/pkg/audit"
	"github.com/poseidoncap/refdata/pkg/identity"
	"github.com/poseidoncap/refdata/pkg/model"
	"github.com/poseidoncap/refdata/pkg/server"
	"github.com/poseidoncap/refdata/pkg/server/middleware"
	"github.com/poseidoncap/refdata/pkg/server/store"
	"github.com/poseidoncap/refdata/pkg/validation"
)

// UserRequest is the write model for user management. The password is
// accepted on input only and never echoed back.
type UserRequest struct {
	ID       uint   `json:"id"`
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password"`
	FullName string `json:"full_name" validate:"max=100"`
	Email    string `json:"email" validate:"omitempty,email,max=100"`
	Role     string `json:"role" validate:"required,max=30"`
}

// RegisterRequest is the public self-registration model. Registered
// accounts always receive the user role.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"max=100"`
	Email    string `json:"email" validate:"omitempty,email,max=100"`
}

// RegisterUserEndpoints registers user management routes (admin only)
// and the public registration route.
func RegisterUserEndpoints(s *server.Server) {
	auth := middleware.NewTokenAuthenticator(s.Tokens)
	admin := middleware.RequireRole("admin")

	// Public self-registration. Registered before the subrouter so the
	// token middleware never sees it.
	s.Router.HandleFunc("/user/register", handleRegister(s.Identity)).Methods("POST")

	userRouter := s.Router.PathPrefix("/user").Subrouter()
	userRouter.Use(auth.Middleware)

	userRouter.Handle("", admin(handleCreateUser(s.Identity))).Methods("POST")
	userRouter.Handle("", admin(handleListUsers(s.Stores.Users, s.Config.APIListLimitMax))).Methods("GET")
	userRouter.Handle("/{id:[0-9]+}", admin(handleGetUser(s.Stores.Users))).Methods("GET")
	userRouter.Handle("/{id:[0-9]+}", admin(handleUpdateUser(s.Stores.Users, s.Identity))).Methods("PUT")
	userRouter.Handle("/{id:[0-9]+}", admin(handleDeleteUser(s.Stores.Users))).Methods("DELETE")
}

func handleRegister(provider identity.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		defer func() { _ = r.Body.Close() }()

		if errs := validation.Struct(req); errs != nil {
			respondWithValidationErrors(w, errs)
			return
		}

		const role = "user"
		if err := provider.EnsureRole(role); err != nil {
			respondWithInternalError(w, err)
			return
		}

		user := model.User{
			Username: req.Username,
			FullName: req.FullName,
			Email:    req.Email,
			Role:     role,
		}
		if err := provider.CreateUser(&user, req.Password); err != nil {
			auditRegister(r, req.Username, role, false, err.Error())
			respondWithCredentialError(w, err)
			return
		}

		if err := provider.AssignRole(user.ID, role); err != nil {
			auditRegister(r, req.Username, role, false, err.Error())
			respondWithInternalError(w, err)
			return
		}

		auditRegister(r, req.Username, role, true, "")
		w.Header().Set("Location", fmt.Sprintf("/user/%d", user.ID))
		respondWithJSON(w, http.StatusCreated, user)
	}
}

func handleCreateUser(provider identity.Provider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req UserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		defer func() { _ = r.Body.Close() }()

		errs := validation.Struct(req)
		if req.Password == "" {
			if errs == nil {
				errs = validation.Errors{}
			}
			errs.Add("Password", "Password is required.")
		}
		if errs != nil {
			respondWithValidationErrors(w, errs)
			return
		}

		if err := provider.EnsureRole(req.Role); err != nil {
			respondWithInternalError(w, err)
			return
		}

		user := model.User{
			Username: req.Username,
			FullName: req.FullName,
			Email:    req.Email,
			Role:     req.Role,
		}
		if err := provider.CreateUser(&user, req.Password); err != nil {
			auditRegister(r, req.Username, req.Role, false, err.Error())
			respondWithCredentialError(w, err)
			return
		}

		if err := provider.AssignRole(user.ID, req.Role); err != nil {
			auditRegister(r, req.Username, req.Role, false, err.Error())
			respondWithInternalError(w, err)
			return
		}

		auditRegister(r, req.Username, req.Role, true, "")
		w.Header().Set("Location", fmt.Sprintf("/user/%d", user.ID))
		respondWithJSON(w, http.StatusCreated, user)
	})
}

func handleListUsers(usersStore store.UsersStore, limit int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		users, err := usersStore.List(limit)
		if err != nil {
			respondWithInternalError(w, err)
			return
		}

		if users == nil {
			users = []model.User{}
		}
		respondWithJSON(w, http.StatusOK, users)
	})
}

func handleGetUser(usersStore store.UsersStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		user, err := usersStore.Get(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, fmt.Sprintf("user with id %d not found", id))
				return
			}
			respondWithInternalError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, user)
	})
}

func handleUpdateUser(usersStore store.UsersStore, provider identity.Provider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req UserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		defer func() { _ = r.Body.Close() }()

		if req.ID != 0 && req.ID != id {
			errs := validation.Errors{}
			errs.Add("Id", "Id must match the id in the request path.")
			respondWithValidationErrors(w, errs)
			return
		}

		if errs := validation.Struct(req); errs != nil {
			respondWithValidationErrors(w, errs)
			return
		}

		user, err := usersStore.Get(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, fmt.Sprintf("user with id %d not found", id))
				return
			}
			respondWithInternalError(w, err)
			return
		}

		user.Username = req.Username
		user.FullName = req.FullName
		user.Email = req.Email
		user.Role = req.Role

		if err := provider.EnsureRole(req.Role); err != nil {
			respondWithInternalError(w, err)
			return
		}
		if err := provider.AssignRole(user.ID, req.Role); err != nil {
			respondWithInternalError(w, err)
			return
		}

		if req.Password != "" {
			if err := provider.SetPassword(user.Username, req.Password); err != nil {
				auditPassword(r, user.Username, false, err.Error())
				respondWithCredentialError(w, err)
				return
			}
			auditPassword(r, user.Username, true, "")
		}

		if err := usersStore.Update(user); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, fmt.Sprintf("user with id %d not found", id))
				return
			}
			respondWithInternalError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, user)
	})
}

func handleDeleteUser(usersStore store.UsersStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := usersStore.Delete(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, fmt.Sprintf("user with id %d not found", id))
				return
			}
			respondWithInternalError(w, err)
			return
		}

		audit.Log(audit.ResourceEvent{
			Username:   usernameFrom(r),
			ClientIP:   clientIP(r),
			Operation:  "delete",
			Kind:       "user",
			ResourceID: strconv.FormatUint(uint64(id), 10),
			Success:    true,
		})
		w.WriteHeader(http.StatusNoContent)
	})
}

// respondWithCredentialError maps identity provider failures onto
// client-facing responses. Policy and duplicate-username problems are
// the caller's fault, anything else is ours.
func respondWithCredentialError(w http.ResponseWriter, err error) {
	var policyErr *identity.PolicyError
	if errors.As(err, &policyErr) {
		errs := validation.Errors{}
		for _, msg := range policyErr.Messages {
			errs.Add("Password", msg)
		}
		respondWithValidationErrors(w, errs)
		return
	}
	if errors.Is(err, identity.ErrUserExists) {
		errs := validation.Errors{}
		errs.Add("Username", "Username is already taken.")
		respondWithValidationErrors(w, errs)
		return
	}
	respondWithInternalError(w, err)
}

func auditRegister(r *http.Request, username, role string, success bool, errMsg string) {
	audit.Log(audit.RegisterEvent{
		Username:     username,
		Role:         role,
		ClientIP:     clientIP(r),
		Success:      success,
		ErrorMessage: errMsg,
	})
}

func auditPassword(r *http.Request, username string, success bool, errMsg string) {
	audit.Log(audit.PasswordEvent{
		Username:     username,
		ClientIP:     clientIP(r),
		Success:      success,
		ErrorMessage: errMsg,
	})
}
