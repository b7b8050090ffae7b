// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package sample holds the pet store shared by the example services.
package sample

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// ErrPetNotFound is returned for unknown pet ids.
var ErrPetNotFound = errors.New("pet not found")

// Pet is a pet up for adoption.
type Pet struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species,omitempty"`
}

// Store is an in-memory pet store.
type Store struct {
	mu   sync.RWMutex
	next int
	pets map[string]Pet
}

// NewStore returns an empty [Store].
func NewStore() *Store {
	return &Store{
		pets: make(map[string]Pet),
	}
}

// Add stores p under a new id.
func (s *Store) Add(ctx context.Context, p Pet) Pet {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	p.ID = strconv.Itoa(s.next)
	s.pets[p.ID] = p
	return p
}

// Get returns the pet with the given id.
func (s *Store) Get(ctx context.Context, id string) (Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pets[id]
	if !ok {
		return Pet{}, ErrPetNotFound
	}
	return p, nil
}

// List returns at most limit pets ordered by id.
func (s *Store) List(ctx context.Context, limit int) []Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pets := make([]Pet, 0, len(s.pets))
	for _, p := range s.pets {
		pets = append(pets, p)
	}
	slices.SortFunc(pets, func(a, b Pet) int {
		if len(a.ID) != len(b.ID) {
			return len(a.ID) - len(b.ID)
		}
		return strings.Compare(a.ID, b.ID)
	})

	if limit > 0 && len(pets) > limit {
		pets = pets[:limit]
	}
	return pets
}
