package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_CLIAlwaysWins(t *testing.T) {
	r := Resolve(
		Mapping{"PORT": "1000", "HOST": "static"},
		Mapping{"PORT": "2000"},
		Mapping{"PORT": "3000"},
		Mapping{"port": int64(4000)},
	)

	v, ok := r.Get("PORT")
	require.True(t, ok)
	assert.Equal(t, int64(4000), v)

	origin, ok := r.Origin("PORT")
	require.True(t, ok)
	assert.Equal(t, SourceCLI, origin)
}

func TestResolve_ProcessEnvBeatsDotEnv(t *testing.T) {
	r := Resolve(nil, Mapping{"API_URL": "from-dotenv"}, Mapping{"API_URL": "from-env"}, nil)

	assert.Equal(t, "from-env", r.StringOr("API_URL", ""))
	origin, _ := r.Origin("api_url")
	assert.Equal(t, SourceProcessEnv, origin)
}

func TestResolve_FallbackChain(t *testing.T) {
	tests := []struct {
		name   string
		layers [4]Mapping
		want   any
		origin Source
	}{
		{"only static", [4]Mapping{{"K": "s"}, nil, nil, nil}, "s", SourceStaticFile},
		{"dotenv over static", [4]Mapping{{"K": "s"}, {"K": "d"}, nil, nil}, "d", SourceDotEnv},
		{"env over dotenv", [4]Mapping{{"K": "s"}, {"K": "d"}, {"K": "e"}, nil}, "e", SourceProcessEnv},
		{"cli over env", [4]Mapping{{"K": "s"}, {"K": "d"}, {"K": "e"}, {"K": "c"}}, "c", SourceCLI},
		{"cli over static only", [4]Mapping{{"K": "s"}, nil, nil, {"K": "c"}}, "c", SourceCLI},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Resolve(tc.layers[0], tc.layers[1], tc.layers[2], tc.layers[3])
			v, ok := r.Get("K")
			require.True(t, ok)
			assert.Equal(t, tc.want, v)
			origin, _ := r.Origin("K")
			assert.Equal(t, tc.origin, origin)
		})
	}
}

func TestResolve_CaseInsensitiveKeys(t *testing.T) {
	r := Resolve(Mapping{"port": "3000"}, nil, Mapping{"PORT": "8080"}, nil)

	assert.Equal(t, Mapping{"PORT": "8080"}, r.All())
	assert.Equal(t, []string{"PORT"}, r.Keys())
}

func TestResolve_AllEmpty(t *testing.T) {
	r := Resolve(Mapping{}, Mapping{}, Mapping{}, Mapping{})
	require.NotNil(t, r)
	assert.Zero(t, r.Len())
	assert.Empty(t, r.All())

	r = Resolve(nil, nil, nil, nil)
	assert.Zero(t, r.Len())
}

func TestResolve_DatabaseScenario(t *testing.T) {
	r := Resolve(
		Mapping{"DB_HOST": "localhost"},
		Mapping{"DB_HOST": "staging-db", "DB_PORT": "5432"},
		Mapping{"DB_PORT": "6000"},
		Mapping{},
	)

	assert.Equal(t, Mapping{"DB_HOST": "staging-db", "DB_PORT": "6000"}, r.All())

	host, _ := r.Origin("DB_HOST")
	port, _ := r.Origin("DB_PORT")
	assert.Equal(t, SourceDotEnv, host)
	assert.Equal(t, SourceProcessEnv, port)
}

func TestResolve_ShallowMerge(t *testing.T) {
	static := Mapping{"DB": map[string]any{"host": "localhost", "port": 5432}}
	dotEnv := Mapping{"db": map[string]any{"host": "db.internal"}}

	r := Resolve(static, dotEnv, nil, nil)

	v, ok := r.Get("DB")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"host": "db.internal"}, v, "higher source replaces nested values wholesale")
}

func TestResolve_DoesNotMutateInputs(t *testing.T) {
	nested := map[string]any{"host": "localhost"}
	static := Mapping{"db": nested, "name": "svc"}
	cli := Mapping{"Name": "override"}

	r := Resolve(static, nil, nil, cli)

	assert.Equal(t, Mapping{"db": map[string]any{"host": "localhost"}, "name": "svc"}, static)
	assert.Equal(t, Mapping{"Name": "override"}, cli)

	got, _ := r.Get("DB")
	got.(map[string]any)["host"] = "changed"
	assert.Equal(t, "localhost", nested["host"], "result must not alias caller data")

	nested["host"] = "mutated-after"
	again, _ := r.Get("DB")
	assert.Equal(t, "localhost", again.(map[string]any)["host"], "caller writes must not reach the result")
}

func TestResolve_Deterministic(t *testing.T) {
	static := Mapping{"A": "1", "b": "2", "Mixed": "3"}
	env := Mapping{"mixed": "4", "C": "5"}

	first := Resolve(static, nil, env, nil)
	for i := 0; i < 20; i++ {
		next := Resolve(static, nil, env, nil)
		assert.Equal(t, first.All(), next.All())
	}
	assert.NotEqual(t, first.ID(), Resolve(static, nil, env, nil).ID(), "each resolution gets its own id")
}

func TestResolveLayers_OrderIndependent(t *testing.T) {
	layers := []Layer{
		{Source: SourceCLI, Values: Mapping{"K": "cli"}},
		{Source: SourceStaticFile, Values: Mapping{"K": "static", "ONLY_STATIC": true}},
		{Source: SourceProcessEnv, Values: Mapping{"K": "env"}},
	}

	r := ResolveLayers(layers...)
	assert.Equal(t, "cli", r.StringOr("K", ""))
	assert.True(t, r.BoolOr("only_static", false))

	assert.Equal(t, SourceCLI, layers[0].Source, "caller slice order is preserved")
}

func TestResolveLayers_SameSourceKeepsArgumentOrder(t *testing.T) {
	r := ResolveLayers(
		Layer{Source: SourceStaticFile, Values: Mapping{"K": "default"}},
		Layer{Source: SourceStaticFile, Values: Mapping{"K": "production"}},
	)
	assert.Equal(t, "production", r.StringOr("K", ""))
}

func TestResolve_CollisionInsideOneSource(t *testing.T) {
	r := Resolve(nil, Mapping{"port": "3000", "PORT": "8080", "Port": "9090"}, nil, nil)
	assert.Equal(t, "8080", r.StringOr("PORT", ""), "the uppercase spelling wins inside a source")
}
