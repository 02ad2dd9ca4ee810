package binding

import (
	"context"
	"reflect"
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func quoteTotal(total float64) float64 { return total * 0.9 }

type calculator struct{ base int }

func (c calculator) Add(n int) int { return c.base + n }

func TestMust(t *testing.T) {
	t.Run("valid function", func(t *testing.T) {
		assert.NotPanics(t, func() {
			def := Must(quoteTotal)
			assert.Equal(t, reflect.ValueOf(quoteTotal).Pointer(), reflect.ValueOf(def.Function).Pointer())
		})
	})

	t.Run("invalid function", func(t *testing.T) {
		assert.Panics(t, func() {
			Must("not a function")
		})
	})
}

func TestHookOption(t *testing.T) {
	t.Run("explicit hook name", func(t *testing.T) {
		def, err := New(quoteTotal, Hook("checkout.total"))
		require.NoError(t, err)
		assert.Equal(t, "checkout.total", def.Hook)
	})

	t.Run("falls back to the function name", func(t *testing.T) {
		def, err := New(quoteTotal)
		require.NoError(t, err)
		assert.Equal(t, "quoteTotal", def.Hook)
	})

	t.Run("falls back to the method name", func(t *testing.T) {
		def, err := New(calculator{base: 2}.Add)
		require.NoError(t, err)
		assert.Equal(t, "Add", def.Hook)
	})
}

func TestOwnerOption(t *testing.T) {
	t.Run("explicit owner", func(t *testing.T) {
		def, err := New(quoteTotal, Owner("pricing"))
		require.NoError(t, err)
		assert.Equal(t, "pricing", def.Owner)
	})

	t.Run("falls back to the package name", func(t *testing.T) {
		def, err := New(quoteTotal)
		require.NoError(t, err)
		assert.Equal(t, "binding", def.Owner)
	})
}

func TestDescriptionOption(t *testing.T) {
	def, err := New(quoteTotal, Description("applies the partner discount"))
	require.NoError(t, err)
	assert.Equal(t, "applies the partner discount", def.Description)
}

func TestParametersOption(t *testing.T) {
	tests := []struct {
		name       string
		parameters []string
		want       map[string]string
	}{
		{
			name:       "no parameters",
			parameters: []string{},
			want:       map[string]string{},
		},
		{
			name:       "single parameter",
			parameters: []string{"total"},
			want: map[string]string{
				"param0": "total",
			},
		},
		{
			name:       "multiple parameters",
			parameters: []string{"total", "currency", "region"},
			want: map[string]string{
				"param0": "total",
				"param1": "currency",
				"param2": "region",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := New(quoteTotal, Parameters(tt.parameters...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, def.Parameters)
		})
	}
}

func TestNewRejectsNonFunctions(t *testing.T) {
	_, err := New(42)
	require.ErrorContains(t, err, "not a function")

	_, err = New(nil)
	require.ErrorContains(t, err, "not a function")
}

func TestCombinedOptions(t *testing.T) {
	def, err := New(quoteTotal,
		Hook("checkout.total"),
		Owner("pricing"),
		Description("applies the partner discount"),
		Parameters("total"),
	)
	require.NoError(t, err)

	assert.Equal(t, "checkout.total", def.Hook)
	assert.Equal(t, "pricing", def.Owner)
	assert.Equal(t, "applies the partner discount", def.Description)
	assert.Equal(t, map[string]string{"param0": "total"}, def.Parameters)
}

type recordingRegistrar struct {
	hooks     []string
	owners    []string
	callables []any
	err       error
}

func (r *recordingRegistrar) Register(hook string, callable any, owner string) error {
	if r.err != nil {
		return r.err
	}
	r.hooks = append(r.hooks, hook)
	r.owners = append(r.owners, owner)
	r.callables = append(r.callables, callable)
	return nil
}

func TestDefinitionApply(t *testing.T) {
	reg := &recordingRegistrar{}
	def := Must(quoteTotal, Hook("checkout.total"), Owner("pricing"))

	require.NoError(t, def.Apply(reg))
	require.Equal(t, []string{"checkout.total"}, reg.hooks)
	require.Equal(t, []string{"pricing"}, reg.owners)
	require.Equal(t,
		reflect.ValueOf(quoteTotal).Pointer(),
		reflect.ValueOf(reg.callables[0]).Pointer(),
	)
}

func TestToNameAndSchema(t *testing.T) {
	t.Run("renamed parameter", func(t *testing.T) {
		om := orderedmap.New[string, *jsonschema.Schema]()
		om.Set("total", &jsonschema.Schema{Type: "number"})

		def := Must(quoteTotal, Hook("checkout.total"), Parameters("total"))
		name, schema := def.ToNameAndSchema()

		assert.Equal(t, "checkout.total", name)
		assert.Equal(t, &jsonschema.Schema{
			Type:       "object",
			Properties: om,
			Required:   []string{"total"},
		}, schema)
	})

	t.Run("context parameters are excluded", func(t *testing.T) {
		def := Must(func(ctx context.Context, total float64) float64 { return total }, Hook("checkout.total"))
		_, schema := def.ToNameAndSchema()

		require.Equal(t, 1, schema.Properties.Len())
		prop, ok := schema.Properties.Get("param0")
		require.True(t, ok)
		assert.Equal(t, "number", prop.Type)
		assert.Equal(t, []string{"param0"}, schema.Required)
	})

	t.Run("method receiver is excluded", func(t *testing.T) {
		def := Must(calculator.Add)
		name, schema := def.ToNameAndSchema()

		assert.Equal(t, "Add", name)
		require.Equal(t, 1, schema.Properties.Len())
		prop, ok := schema.Properties.Get("param0")
		require.True(t, ok)
		assert.Equal(t, "integer", prop.Type)
	})

	t.Run("no parameters", func(t *testing.T) {
		def := Must(func() string { return "banner" }, Hook("banner"))
		name, schema := def.ToNameAndSchema()

		assert.Equal(t, "banner", name)
		assert.Equal(t, 0, schema.Properties.Len())
		assert.Empty(t, schema.Required)
	})
}
