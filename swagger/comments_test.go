// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package swagger

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/swaggest/openapi-go/openapi3"
	"github.com/z5labs/sdk-go/ptr"
)

func TestReadComments(t *testing.T) {
	t.Run("will let later files win", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "a.comments.yaml", []byte("operations:\n  get /pets:\n    summary: A\n"), 0o644))
		require.NoError(t, afero.WriteFile(fs, "b.comments.yaml", []byte("operations:\n  GET /pets:\n    summary: B\n"), 0o644))

		comments, err := ReadComments(fs, "a.comments.yaml", "b.comments.yaml")
		require.NoError(t, err)
		require.Equal(t, "B", comments["GET /pets"].Summary)
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if an operation key has no path", func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "bad.comments.yaml", []byte("operations:\n  GET:\n    summary: A\n"), 0o644))

			_, err := ReadComments(fs, "bad.comments.yaml")
			require.Error(t, err)
		})

		t.Run("if the file is not yaml", func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "bad.comments.yaml", []byte("operations: [unclosed"), 0o644))

			_, err := ReadComments(fs, "bad.comments.yaml")
			require.Error(t, err)
		})
	})
}

func TestComments_Apply(t *testing.T) {
	t.Run("will not replace existing text", func(t *testing.T) {
		comments := Comments{
			"POST /pets": {Summary: "Create a pet", Description: "Stores a new pet."},
		}

		op := openapi3.Operation{Summary: ptr.Ref("Register a pet")}
		comments.Apply("post", "/pets", &op)

		require.Equal(t, "Register a pet", *op.Summary)
		require.Equal(t, "Stores a new pet.", *op.Description)
	})

	t.Run("will ignore undocumented operations", func(t *testing.T) {
		op := openapi3.Operation{}
		Comments{}.Apply("GET", "/pets", &op)

		require.Nil(t, op.Summary)
	})
}
