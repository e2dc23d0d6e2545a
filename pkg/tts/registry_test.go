package tts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct{ id int }

func (s *stubProvider) Synthesize(ctx context.Context, markup, voiceKey, language string) ([]byte, error) {
	return []byte("audio"), nil
}

func newTestRegistry(t *testing.T) (*Registry, *int) {
	t.Helper()
	built := 0
	factory := func(ctx context.Context) Provider {
		built++
		return &stubProvider{id: built}
	}
	r, err := NewRegistry(
		Entry{Key: "alpha", Name: "Alpha", Voices: []string{"a1", "a2"}, New: factory},
		Entry{Key: "beta", Name: "Beta", Voices: []string{"b1"}, New: factory},
	)
	require.NoError(t, err)
	return r, &built
}

func TestRegistry_Resolve(t *testing.T) {
	r, _ := newTestRegistry(t)

	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "Known", key: "alpha"},
		{name: "KnownSecond", key: "beta"},
		{name: "Unknown", key: "unknown-vendor", wantErr: true},
		{name: "CaseMismatch", key: "Alpha", wantErr: true},
		{name: "Whitespace", key: " alpha", wantErr: true},
		{name: "Empty", key: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := r.Resolve(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsUnknownProvider(err))
				assert.Equal(t, "Unknown provider: "+tt.key, err.Error())
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, f(context.Background()))
		})
	}
}

func TestRegistry_NewBuildsFreshInstances(t *testing.T) {
	r, built := newTestRegistry(t)

	p1, err := r.New(context.Background(), "alpha")
	require.NoError(t, err)
	p2, err := r.New(context.Background(), "alpha")
	require.NoError(t, err)

	assert.Equal(t, 2, *built)
	assert.NotSame(t, p1, p2)

	_, err = r.New(context.Background(), "nope")
	assert.True(t, IsUnknownProvider(err))
	assert.Equal(t, 2, *built, "factory must not run for unknown keys")
}

func TestRegistry_Catalog(t *testing.T) {
	r, built := newTestRegistry(t)

	cat := r.Catalog()
	assert.Equal(t, []CatalogEntry{
		{ID: "alpha", Name: "Alpha", Voices: []string{"a1", "a2"}},
		{ID: "beta", Name: "Beta", Voices: []string{"b1"}},
	}, cat)
	assert.Equal(t, 0, *built, "catalog must not construct adapters")

	// Mutating the returned slice must not leak into the registry
	cat[0].Voices[0] = "changed"
	assert.Equal(t, "a1", r.Catalog()[0].Voices[0])
	assert.Equal(t, []string{"alpha", "beta"}, r.Keys())
}

func TestNewRegistry_Invalid(t *testing.T) {
	f := func(ctx context.Context) Provider { return &stubProvider{} }

	_, err := NewRegistry(Entry{Key: "a", New: f}, Entry{Key: "a", New: f})
	assert.Error(t, err)

	_, err = NewRegistry(Entry{Key: "", New: f})
	assert.Error(t, err)

	_, err = NewRegistry(Entry{Key: "a"})
	assert.Error(t, err)
}
