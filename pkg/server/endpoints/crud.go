package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/poseidoncap/refdata/pkg/audit"
	"github.com/poseidoncap/refdata/pkg/identity"
	"github.com/poseidoncap/refdata/pkg/server"
	"github.com/poseidoncap/refdata/pkg/server/middleware"
	"github.com/poseidoncap/refdata/pkg/server/store"
	"github.com/poseidoncap/refdata/pkg/validation"
)

// EntityDef describes one entity kind to the generic CRUD handlers.
// The ID accessors let the handlers ignore client-sent ids on create
// and enforce path/body id agreement on update.
type EntityDef[E any] struct {
	Kind  store.Kind
	ID    func(*E) uint
	SetID func(*E, uint)
}

// RegisterCrudEndpoints mounts the five CRUD routes for one entity
// under /{kind}. Reads need authentication, mutations need the user or
// admin role, deletes need admin.
func RegisterCrudEndpoints[E any](s *server.Server, def EntityDef[E], crudStore store.Crud[E]) {
	auth := middleware.NewTokenAuthenticator(s.Tokens)
	name := def.Kind.String()

	entityRouter := s.Router.PathPrefix("/" + name).Subrouter()
	entityRouter.Use(auth.Middleware)

	mutate := middleware.RequireRole("user", "admin")
	admin := middleware.RequireRole("admin")

	entityRouter.Handle("", mutate(handleCreate(def, crudStore))).Methods("POST")
	entityRouter.HandleFunc("", handleList(def, crudStore, s.Config.APIListLimitMax)).Methods("GET")
	entityRouter.HandleFunc("/{id:[0-9]+}", handleGet(def, crudStore)).Methods("GET")
	entityRouter.Handle("/{id:[0-9]+}", mutate(handleUpdate(def, crudStore))).Methods("PUT")
	entityRouter.Handle("/{id:[0-9]+}", admin(handleDelete(def, crudStore))).Methods("DELETE")
}

func handleCreate[E any](def EntityDef[E], crudStore store.Crud[E]) http.Handler {
	name := def.Kind.String()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var entity E
		if err := json.NewDecoder(r.Body).Decode(&entity); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		defer func() { _ = r.Body.Close() }()

		// Ids are assigned by the store
		def.SetID(&entity, 0)

		if errs := validation.Struct(entity); errs != nil {
			respondWithValidationErrors(w, errs)
			return
		}

		username := usernameFrom(r)
		if err := crudStore.Create(&entity); err != nil {
			audit.Log(audit.ResourceEvent{
				Username:     username,
				ClientIP:     clientIP(r),
				Operation:    "create",
				Kind:         name,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondWithInternalError(w, err)
			return
		}

		id := def.ID(&entity)
		audit.Log(audit.ResourceEvent{
			Username:   username,
			ClientIP:   clientIP(r),
			Operation:  "create",
			Kind:       name,
			ResourceID: strconv.FormatUint(uint64(id), 10),
			Success:    true,
		})

		w.Header().Set("Location", fmt.Sprintf("/%s/%d", name, id))
		respondWithJSON(w, http.StatusCreated, entity)
	})
}

func handleGet[E any](def EntityDef[E], crudStore store.Crud[E]) http.HandlerFunc {
	name := def.Kind.String()
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		entity, err := crudStore.Get(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, fmt.Sprintf("%s with id %d not found", name, id))
				return
			}
			respondWithInternalError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, entity)
	}
}

func handleList[E any](def EntityDef[E], crudStore store.Crud[E], limit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entities, err := crudStore.List(limit)
		if err != nil {
			respondWithInternalError(w, err)
			return
		}

		if entities == nil {
			entities = []E{}
		}
		respondWithJSON(w, http.StatusOK, entities)
	}
}

func handleUpdate[E any](def EntityDef[E], crudStore store.Crud[E]) http.Handler {
	name := def.Kind.String()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var entity E
		if err := json.NewDecoder(r.Body).Decode(&entity); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		defer func() { _ = r.Body.Close() }()

		if bodyID := def.ID(&entity); bodyID != 0 && bodyID != id {
			errs := validation.Errors{}
			errs.Add("Id", "Id must match the id in the request path.")
			respondWithValidationErrors(w, errs)
			return
		}
		def.SetID(&entity, id)

		if errs := validation.Struct(entity); errs != nil {
			respondWithValidationErrors(w, errs)
			return
		}

		username := usernameFrom(r)
		if err := crudStore.Update(&entity); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, fmt.Sprintf("%s with id %d not found", name, id))
				return
			}
			audit.Log(audit.ResourceEvent{
				Username:     username,
				ClientIP:     clientIP(r),
				Operation:    "update",
				Kind:         name,
				ResourceID:   strconv.FormatUint(uint64(id), 10),
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondWithInternalError(w, err)
			return
		}

		audit.Log(audit.ResourceEvent{
			Username:   username,
			ClientIP:   clientIP(r),
			Operation:  "update",
			Kind:       name,
			ResourceID: strconv.FormatUint(uint64(id), 10),
			Success:    true,
		})
		respondWithJSON(w, http.StatusOK, entity)
	})
}

func handleDelete[E any](def EntityDef[E], crudStore store.Crud[E]) http.Handler {
	name := def.Kind.String()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		username := usernameFrom(r)
		if err := crudStore.Delete(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, fmt.Sprintf("%s with id %d not found", name, id))
				return
			}
			audit.Log(audit.ResourceEvent{
				Username:     username,
				ClientIP:     clientIP(r),
				Operation:    "delete",
				Kind:         name,
				ResourceID:   strconv.FormatUint(uint64(id), 10),
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondWithInternalError(w, err)
			return
		}

		audit.Log(audit.ResourceEvent{
			Username:   username,
			ClientIP:   clientIP(r),
			Operation:  "delete",
			Kind:       name,
			ResourceID: strconv.FormatUint(uint64(id), 10),
			Success:    true,
		})
		w.WriteHeader(http.StatusNoContent)
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func usernameFrom(r *http.Request) string {
	if id, ok := identity.Get(r.Context()); ok {
		return id.Username
	}
	return ""
}
