package sheaf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry_Validation(t *testing.T) {
	tests := []struct {
		name string
		def  Default
		opts []EntryOption
	}{
		{"no default", nil, nil},
		{"nil factory", Factory[[]int](nil), nil},
		{"long short name", Val(1), []EntryOption{Short("ab")}},
		{"dash short name", Val(1), []EntryOption{Short("-")}},
		{"plus short name", Val(1), []EntryOption{Short("+")}},
		{"switch on int", Val(1), []EntryOption{WithCLI(CLIOptions{Action: ActionSwitch})}},
		{"store_true on string", Val("x"), []EntryOption{WithCLI(CLIOptions{Action: ActionStoreTrue})}},
		{"count on bool", Val(false), []EntryOption{WithCLI(CLIOptions{Action: ActionCount})}},
		{"negative nargs", Val(1), []EntryOption{WithCLI(CLIOptions{Nargs: NargsExactly(-1)})}},
		{"text without parse", Text[int]("1"), nil},
		{"invalid text", Text[int]("x"), []EntryOption{ParseAs(CastTo[int]())}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEntry(tt.def, "doc", tt.opts...)
			assert.ErrorIs(t, err, ErrSchema)
		})
	}
}

func TestNewEntry_Defaults(t *testing.T) {
	e, err := NewEntry(Val(3), "three")
	require.NoError(t, err)

	assert.Equal(t, "three", e.Doc())
	assert.True(t, e.InFile())
	assert.True(t, e.InCLI())
	assert.Empty(t, e.ShortName())
	assert.Equal(t, ActionStore, e.CLI().Action)
	assert.True(t, e.CLI().Nargs.IsDefault())

	rule, ok := e.CompletionRule()
	assert.True(t, ok)
	assert.Empty(t, rule)

	v, err := e.ResolveDefault()
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestNewEntry_UnicodeShort(t *testing.T) {
	e, err := NewEntry(Val(1), "doc", Short("é"))
	require.NoError(t, err)
	assert.Equal(t, "é", e.ShortName())
}

func TestEntry_TakesValue(t *testing.T) {
	tests := []struct {
		name string
		e    *Entry
		want bool
	}{
		{"store", MustEntry(Val(1), ""), true},
		{"switch", Switch(true, "", ""), false},
		{"flag", Flag("", ""), false},
		{"store_false", MustEntry(Val(true), "", WithCLI(CLIOptions{Action: ActionStoreFalse})), false},
		{"count", MustEntry(Val(0), "", WithCLI(CLIOptions{Action: ActionCount})), false},
		{"append", MustEntry(Val([]any(nil)), "", WithCLI(CLIOptions{Action: ActionAppend})), true},
		{"nargs 0", MustEntry(Val(1), "", WithCLI(CLIOptions{Nargs: NargsExactly(0), Const: 1})), false},
		{"nargs ?", MustEntry(Val(1), "", WithCLI(CLIOptions{Nargs: NargsOptional})), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.e.TakesValue())
		})
	}
}

func TestEntry_Cast(t *testing.T) {
	e := MustEntry(Val(0), "")
	v, err := e.Cast("42")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = e.Cast("forty-two")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	d := MustEntry(Val(time.Second), "")
	v, err = d.Cast("1m30s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, v)
}

func TestEntry_ParseHook(t *testing.T) {
	double := ParseAs(func(raw any) (int, error) {
		n, err := CastTo[int]()(raw)
		return n * 2, err
	})
	e := MustEntry(Text[int]("4"), "", double)

	v, err := e.ResolveDefault()
	require.NoError(t, err)
	assert.Equal(t, 8, v)

	v, err = e.Cast(5)
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	_, err = e.Cast("x")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestEntry_Serialize(t *testing.T) {
	e := MustEntry(Val(time.Second), "", SerializeAs(func(d time.Duration) (any, error) {
		return d.String(), nil
	}))
	v, err := e.Serialize(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "2s", v)

	_, err = e.Serialize("not a duration")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	plain := MustEntry(Val(1), "")
	v, err = plain.Serialize(7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestEntry_Completion(t *testing.T) {
	e := MustEntry(Val(""), "", CompRule("_files"))
	rule, ok := e.CompletionRule()
	assert.True(t, ok)
	assert.Equal(t, "_files", rule)

	e = MustEntry(Val(""), "", NoCompletion())
	_, ok = e.CompletionRule()
	assert.False(t, ok)
}

func TestActionAndNargs_String(t *testing.T) {
	assert.Equal(t, "store", ActionStore.String())
	assert.Equal(t, "switch", ActionSwitch.String())
	assert.Equal(t, "store_true", ActionStoreTrue.String())
	assert.Equal(t, "store_false", ActionStoreFalse.String())
	assert.Equal(t, "append", ActionAppend.String())
	assert.Equal(t, "count", ActionCount.String())

	assert.Equal(t, "", NargsDefault.String())
	assert.Equal(t, "?", NargsOptional.String())
	assert.Equal(t, "*", NargsAny.String())
	assert.Equal(t, "3", NargsExactly(3).String())
	n, ok := NargsExactly(3).Exactly()
	assert.True(t, ok)
	assert.Equal(t, 3, n)
}
