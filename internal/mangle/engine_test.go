package mangle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)
	assert.NotNil(t, engine)
}

func TestEngineLoadSchemaString(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)
	assert.NoError(t, engine.LoadSchemaString(`Decl test_fact(X, Y).`))
}

func TestEngineAddFact(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoEval = false
	engine, err := NewEngine(cfg)
	require.NoError(t, err)
	require.NoError(t, engine.LoadSchemaString(`Decl test_fact(X, Y).`))

	assert.NoError(t, engine.AddFact("test_fact", "hello", int64(42)))
}

func TestEngineAddFacts(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, engine.LoadSchemaString(`Decl person(Name, Age).`))

	facts := []Fact{
		{Predicate: "person", Args: []interface{}{"Alice", int64(30)}},
		{Predicate: "person", Args: []interface{}{"Bob", int64(25)}},
	}
	assert.NoError(t, engine.AddFacts(facts))
}

func TestEngineQuery(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, engine.LoadSchemaString(`Decl person(Name, Age) descr [mode("-", "-")].`))

	facts := []Fact{
		{Predicate: "person", Args: []interface{}{"Alice", int64(30)}},
		{Predicate: "person", Args: []interface{}{"Bob", int64(25)}},
	}
	require.NoError(t, engine.AddFacts(facts))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := engine.Query(ctx, "person(X, Y)")
	require.NoError(t, err)
	assert.Len(t, result.Bindings, 2)
}

func TestEngineGetFacts(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, engine.LoadSchemaString(`Decl item(Name).`))

	require.NoError(t, engine.AddFact("item", "apple"))
	require.NoError(t, engine.AddFact("item", "banana"))

	facts, err := engine.GetFacts("item")
	require.NoError(t, err)
	assert.Len(t, facts, 2)
}

func TestEngineClear(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, engine.LoadSchemaString(`Decl data(Value).`))
	require.NoError(t, engine.AddFact("data", "test"))

	engine.Clear()

	facts, _ := engine.GetFacts("data")
	assert.Empty(t, facts)
}

func TestEngineGetStats(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)
	stats := engine.GetStats()
	assert.GreaterOrEqual(t, stats.TotalFacts, 0)
}

func TestFactString(t *testing.T) {
	tests := []struct {
		name string
		fact Fact
		want string
	}{
		{"string args", Fact{Predicate: "test", Args: []interface{}{"hello", "world"}}, `test("hello", "world").`},
		{"int args", Fact{Predicate: "num", Args: []interface{}{int64(42)}}, `num(42).`},
		{"name constant", Fact{Predicate: "status", Args: []interface{}{"/active"}}, `status(/active).`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fact.String())
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1000000, cfg.FactLimit)
	assert.Equal(t, 30, cfg.QueryTimeout)
	assert.True(t, cfg.AutoEval)
}

func TestFactLimitEnforcement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FactLimit = 3
	cfg.AutoEval = false
	engine, err := NewEngine(cfg)
	require.NoError(t, err)
	require.NoError(t, engine.LoadSchemaString(`Decl item(ID).`))

	for i := 0; i < 3; i++ {
		require.NoError(t, engine.AddFact("item", i))
	}
	err = engine.AddFact("item", 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fact limit exceeded")
}

func TestRecomputeRulesDerivesTransitiveClosure(t *testing.T) {
	engine, err := NewEngine(Config{AutoEval: false})
	require.NoError(t, err)
	schema := `
	Decl edge(X, Y) bound [/string, /string].
	Decl path(X, Y) bound [/string, /string] descr [mode("-", "-")].
	path(X, Y) :- edge(X, Y).
	path(X, Z) :- edge(X, Y), path(Y, Z).
	`
	require.NoError(t, engine.LoadSchemaString(schema))
	require.NoError(t, engine.AddFacts([]Fact{
		{Predicate: "edge", Args: []interface{}{"a", "b"}},
		{Predicate: "edge", Args: []interface{}{"b", "c"}},
	}))

	require.NoError(t, engine.RecomputeRules())

	facts, err := engine.GetFacts("path")
	require.NoError(t, err)
	assert.Len(t, facts, 3)
}
