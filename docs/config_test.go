// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package docs

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/z5labs/apidocs/config"
	"github.com/z5labs/apidocs/swagger"

	"github.com/stretchr/testify/require"
)

func TestInfoConfig_Info(t *testing.T) {
	t.Run("will carry every configured field", func(t *testing.T) {
		r := config.UnmarshalYAML[InfoConfig](config.ReaderOf[io.Reader](strings.NewReader(`
title: Sample API
description: Pets as a service.
terms_of_service: https://example.com/terms
contact:
  name: Platform
  email: platform@example.com
license:
  name: MIT
logo:
  url: https://example.com/logo.png
  alt_text: Sample
`)))

		cfg, err := config.Read(context.Background(), r)
		require.NoError(t, err)

		info := cfg.Info()
		require.Equal(t, "Sample API", info.Title)
		require.Equal(t, "Pets as a service.", info.Description)
		require.Equal(t, "https://example.com/terms", info.TermsOfService)
		require.Equal(t, &swagger.Contact{Name: "Platform", Email: "platform@example.com"}, info.Contact)
		require.Equal(t, &swagger.License{Name: "MIT"}, info.License)
		require.Equal(t, map[string]any{
			"url":     "https://example.com/logo.png",
			"altText": "Sample",
		}, info.Extensions[LogoExtension])
	})

	t.Run("will not set any extension", func(t *testing.T) {
		t.Run("if no logo is configured", func(t *testing.T) {
			info := InfoConfig{Title: "Sample API"}.Info()

			require.Nil(t, info.Extensions)
		})
	})

	t.Run("will share no state with the config", func(t *testing.T) {
		cfg := InfoConfig{
			Contact: &swagger.Contact{Name: "Platform"},
		}

		info := cfg.Info()
		info.Contact.Name = "Other"

		require.Equal(t, "Platform", cfg.Contact.Name)
	})
}
