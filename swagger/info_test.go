// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package swagger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInfo_Clone(t *testing.T) {
	t.Run("will not share extensions with the template", func(t *testing.T) {
		info := Info{
			Title: "Demo",
			Extensions: map[string]any{
				"x-logo": map[string]any{"url": "logo.png"},
			},
			Contact: &Contact{Name: "Team"},
		}

		clone := info.Clone()
		clone.Extensions["x-logo"].(map[string]any)["url"] = "other.png"
		clone.Extensions["x-audience"] = "internal"
		clone.Contact.Name = "Other"

		require.Equal(t, "logo.png", info.Extensions["x-logo"].(map[string]any)["url"])
		require.NotContains(t, info.Extensions, "x-audience")
		require.Equal(t, "Team", info.Contact.Name)
	})

	t.Run("will not share nested lists with the template", func(t *testing.T) {
		info := Info{
			Extensions: map[string]any{
				"x-tagGroups": []any{
					map[string]any{"name": "Pets"},
					"Orders",
				},
			},
		}

		clone := info.Clone()
		groups := clone.Extensions["x-tagGroups"].([]any)
		groups[0].(map[string]any)["name"] = "Animals"
		groups[1] = "Invoices"

		original := info.Extensions["x-tagGroups"].([]any)
		require.Equal(t, "Pets", original[0].(map[string]any)["name"])
		require.Equal(t, "Orders", original[1])
	})

	t.Run("will keep nil fields nil", func(t *testing.T) {
		clone := Info{Title: "Demo"}.Clone()

		require.Nil(t, clone.Extensions)
		require.Nil(t, clone.Contact)
		require.Nil(t, clone.License)
	})
}

func TestInfo_openapi(t *testing.T) {
	t.Run("will omit empty optional fields", func(t *testing.T) {
		info := Info{Title: "Demo", Version: "1"}.openapi()

		require.Equal(t, "Demo", info.Title)
		require.Equal(t, "1", info.Version)
		require.Nil(t, info.Description)
		require.Nil(t, info.TermsOfService)
	})
}
