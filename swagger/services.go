// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package swagger

import (
	"errors"

	"github.com/z5labs/apidocs/version"
)

// ErrNoVersionProvider is returned when a setup step needs the API
// versions but no [version.Provider] has been registered.
var ErrNoVersionProvider = errors.New("swagger: no api version provider registered")

// Services collects everything document generation needs before the
// application starts. Setup steps are deferred until [Services.Options]
// so they may depend on registrations made after them.
type Services struct {
	setups   []func(*GenOptions) error
	versions version.Provider
}

// NewServices returns an empty [Services].
func NewServices() *Services {
	return &Services{}
}

// AddSwaggerGen appends a document generation setup step.
func (s *Services) AddSwaggerGen(setup func(*GenOptions) error) *Services {
	s.setups = append(s.setups, setup)
	return s
}

// AddApiVersioning registers the version discovery capability.
func (s *Services) AddApiVersioning(p version.Provider) *Services {
	s.versions = p
	return s
}

// VersionProvider returns the registered version discovery capability.
func (s *Services) VersionProvider() (version.Provider, error) {
	if s.versions == nil {
		return nil, ErrNoVersionProvider
	}
	return s.versions, nil
}

// Options runs every setup step in registration order.
func (s *Services) Options() (*GenOptions, error) {
	opts := &GenOptions{}
	for _, setup := range s.setups {
		err := setup(opts)
		if err != nil {
			return nil, err
		}
	}
	return opts, nil
}
