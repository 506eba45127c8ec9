package render_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HidayetHidayetov/auto-testify/pkg/domain"
	"github.com/HidayetHidayetov/auto-testify/pkg/render"
)

type fakeRenderer struct{ name string }

func (f fakeRenderer) Name() string      { return f.name }
func (f fakeRenderer) Extension() string { return ".txt" }
func (f fakeRenderer) Render(context.Context, domain.Document) ([]byte, error) {
	return []byte(f.name), nil
}

func TestRegistry(t *testing.T) {
	r := render.NewRegistry()
	require.NoError(t, r.Register(fakeRenderer{name: "plan"}))
	require.NoError(t, r.Register(fakeRenderer{name: "gotest"}))

	assert.Equal(t, []string{"gotest", "plan"}, r.List())
	assert.True(t, r.Has("plan"))
	assert.False(t, r.Has("html"))

	got, err := r.Get("plan")
	require.NoError(t, err)
	assert.Equal(t, "plan", got.Name())

	_, err = r.Get("html")
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeInvalidConfig, domain.CodeOf(err))
}

func TestRegistry_RejectsInvalid(t *testing.T) {
	r := render.NewRegistry()
	require.Error(t, r.Register(nil))
	require.Error(t, r.Register(fakeRenderer{}))

	require.NoError(t, r.Register(fakeRenderer{name: "plan"}))
	require.Error(t, r.Register(fakeRenderer{name: "plan"}))
	assert.Panics(t, func() { r.MustRegister(fakeRenderer{name: "plan"}) })
}
