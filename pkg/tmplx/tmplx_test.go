package tmplx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("simple field", func(t *testing.T) {
		tmpl, err := Parse("max", "Maksimal {{.Param}} karakter")
		require.NoError(t, err)
		out, err := tmpl.Render(map[string]any{"Param": "255"})
		require.NoError(t, err)
		assert.Equal(t, "Maksimal 255 karakter", out)
	})

	t.Run("missing key renders zero", func(t *testing.T) {
		tmpl, err := Parse("missing", "value={{.Missing}}")
		require.NoError(t, err)
		out, err := tmpl.Render(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, "value=<no value>", out)
	})

	t.Run("render error", func(t *testing.T) {
		tmpl, err := Parse("field", "{{.Field.Name}}")
		require.NoError(t, err)
		_, err = tmpl.Render(struct{ Field int }{})
		assert.ErrorIs(t, err, ErrRenderTemplate)
	})
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("bad", "{{.Name")
	assert.ErrorIs(t, err, ErrParseTemplate)

	c := NewCatalog()
	assert.ErrorIs(t, c.Add("bad", "{{end}}"), ErrParseTemplate)
	assert.Panics(t, func() { c.MustAdd("bad", "{{end}}") })
}

func TestCatalog(t *testing.T) {
	c := NewCatalog().
		MustAdd("price.gt", "Price must be positive").
		MustAdd("min", "Minimal {{.Param}} karakter")

	out, err := c.Render(map[string]any{"Param": "6"}, "password.min", "min")
	require.NoError(t, err)
	assert.Equal(t, "Minimal 6 karakter", out)

	out, err = c.Render(nil, "price.gt", "gt")
	require.NoError(t, err)
	assert.Equal(t, "Price must be positive", out)

	_, err = c.Render(nil, "nope")
	assert.ErrorIs(t, err, ErrUnknownMessage)
}
