package helper

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAndJoinStyleName(t *testing.T) {
	tests := []struct {
		name    string
		in      Value
		want    string
		wantIdx int // -2: no error
	}{
		{"single", Single("a"), "a", -2},
		{"many", Strings("a", "b", "c"), "a b c", -2},
		{"empty", Many(), "", -2},
		{"empty token kept", Strings("a", "", "b"), "a  b", -2},
		{"undefined", Undefined(), "", -1},
		{"undefined element", Many(Single("a"), Undefined()), "", 1},
		{"nested sequence", Many(Single("a"), Strings("b", "c")), "a b,c", -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckAndJoinStyleName(tt.in)
			if tt.wantIdx == -2 {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			require.ErrorIs(t, err, ErrUndefinedStyleName)
			var ue *UndefinedStyleNameError
			require.True(t, errors.As(err, &ue))
			assert.Equal(t, tt.wantIdx, ue.Index)
		})
	}
}

func TestJoinIsDeterministic(t *testing.T) {
	v := Strings("x", "y")
	first, err := CheckAndJoinStyleName(v)
	require.NoError(t, err)
	for range 3 {
		again, err := CheckAndJoinStyleName(v)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestManyCopiesItems(t *testing.T) {
	items := []Value{Single("a")}
	v := Many(items...)
	items[0] = Undefined()
	got, err := CheckAndJoinStyleName(v)
	require.NoError(t, err)
	assert.Equal(t, "a", got)
}

func TestParseJSON(t *testing.T) {
	v, err := ParseJSON([]byte(`["a", 1, null]`))
	require.NoError(t, err)
	require.Equal(t, KindMany, v.Kind())
	require.Len(t, v.Items(), 3)
	assert.Equal(t, "1", v.Items()[1].Token())
	assert.True(t, v.Items()[2].IsUndefined())

	v, err = ParseJSON([]byte(`"btn"`))
	require.NoError(t, err)
	assert.Equal(t, Single("btn"), v)

	_, err = ParseJSON([]byte(`{"a": 1}`))
	assert.Error(t, err)
	_, err = ParseJSON([]byte(`[`))
	assert.Error(t, err)
	_, err = ParseJSON([]byte(`"a" "b"`))
	assert.Error(t, err)

	v, err = ParseJSON([]byte("\"a\"\n"))
	require.NoError(t, err)
	assert.Equal(t, Single("a"), v)
}

func TestInstallDefault(t *testing.T) {
	m := NewModule()
	_, err := m.Call(Name, Single("a"))
	require.ErrorIs(t, err, ErrNotInstalled)

	Install(m, nil)
	got, err := m.Call(Name, Strings("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, "a b", got)

	// повторная установка ничего не ломает
	Install(m, nil)
	got, err = m.Call(Name, Single("c"))
	require.NoError(t, err)
	assert.Equal(t, "c", got)

	assert.NotPanics(t, func() { Install(nil, nil) })
}

func TestInstallCustomLastWins(t *testing.T) {
	m := &Module{}
	upper := func(v Value) (string, error) { return strings.ToUpper(v.String()), nil }
	Install(m, nil)
	Install(m, upper)
	got, err := m.Call(Name, Single("a"))
	require.NoError(t, err)
	assert.Equal(t, "A", got)

	// кастомная реализация ставится как есть, без проверок
	Install(m, func(Value) (string, error) { return "", nil })
	got, err = m.Call(Name, Undefined())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRegistry(t *testing.T) {
	got, err := NewRegistry().Join(Strings("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, "a b", got)

	fixed := NewRegistryWith(func(Value) (string, error) { return "fixed", nil })
	got, err = fixed.Join(Undefined())
	require.NoError(t, err)
	assert.Equal(t, "fixed", got)

	m := NewModule()
	fixed.Install(m)
	got, err = m.Call(Name, Single("x"))
	require.NoError(t, err)
	assert.Equal(t, "fixed", got)

	_, err = NewRegistryWith(nil).Join(Undefined())
	assert.ErrorIs(t, err, ErrUndefinedStyleName)
}

func TestSourceMatchesEmitHelper(t *testing.T) {
	assert.Equal(t, Source(), StyleNameHelper.Text)
	assert.Equal(t, Name, StyleNameHelper.Name)
	assert.False(t, StyleNameHelper.Scoped)
	assert.True(t, strings.HasPrefix(Source(), "function "+Name+"(styleName) {"))
	assert.Contains(t, Source(), "styleName.join(' ')")
}
