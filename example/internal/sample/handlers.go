// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package sample

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/z5labs/apidocs/rest"
)

// DefaultLimit is the page size used when the limit query parameter is omitted.
const DefaultLimit = 20

// ListPets lists the stored pets, honoring the "limit" query parameter.
func ListPets(store *Store) rest.Handler {
	return rest.ProduceJson(func(ctx context.Context) (*[]Pet, error) {
		limit := DefaultLimit
		if vs := rest.QueryParamValue(ctx, "limit"); len(vs) > 0 {
			n, err := strconv.Atoi(vs[0])
			if err != nil {
				return nil, rest.BadRequestError{Cause: err}
			}
			limit = n
		}

		pets := store.List(ctx, limit)
		return &pets, nil
	})
}

// GetPet returns the pet named by the "id" path parameter.
func GetPet(store *Store) rest.Handler {
	return rest.ProduceJson(func(ctx context.Context) (*Pet, error) {
		p, err := store.Get(ctx, rest.PathParamValue(ctx, "id"))
		if err != nil {
			return nil, err
		}
		return &p, nil
	})
}

// NewPet is the body accepted by [AddPet].
type NewPet struct {
	Name    string `json:"name"`
	Species string `json:"species,omitempty"`
}

// AddPet stores the pet from the request body.
func AddPet(store *Store) rest.Handler {
	return rest.HandleJson(func(ctx context.Context, req *NewPet) (*Pet, error) {
		p := store.Add(ctx, Pet{
			Name:    req.Name,
			Species: req.Species,
		})
		return &p, nil
	})
}

// OnPetError answers 404 for unknown pets and defers to the error's own
// response otherwise.
func OnPetError() rest.OperationOption {
	return rest.OnError(rest.ErrorHandlerFunc(func(ctx context.Context, w http.ResponseWriter, err error) {
		if errors.Is(err, ErrPetNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var hrw rest.HttpResponseWriter
		if errors.As(err, &hrw) {
			hrw.WriteHttpResponse(ctx, w)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
}
