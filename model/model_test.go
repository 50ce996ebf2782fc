package model_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wiremodel/wiremodel-go/codec"
	"github.com/wiremodel/wiremodel-go/field"
	"github.com/wiremodel/wiremodel-go/model"
	"github.com/wiremodel/wiremodel-go/raw"
)

var ownerType = model.MustDefine("Owner", model.Fields(
	field.New("name", nil),
))

var petType = model.MustDefine("Pet", model.Fields(
	field.New("name", nil),
	field.New("species", field.Enum("Dog", "Cat"), field.Default("Dog")),
	field.New("birthday", field.Datetime()),
	field.New("owner", field.Model(ownerType)),
	field.New("friends", field.List(field.Model(ownerType))),
	field.New("id", field.IntString(), field.Wire("_id"), field.AsReadOnly()),
))

func TestNewBackfillsDefaults(t *testing.T) {
	m, err := petType.New(model.Values{"name": "Eugene"})
	require.NoError(t, err)
	require.Equal(t, []string{"name", "species"}, m.Keys())
	require.Equal(t, "Dog", m.MustAttr("species"))
}

func TestNewRejectsUnknownField(t *testing.T) {
	_, err := petType.New(model.Values{"wings": 2})
	require.ErrorIs(t, err, model.ErrConstruction)
}

func TestFromBackfillsDefaults(t *testing.T) {
	m, err := petType.From(map[string]any{"name": "Eugene"})
	require.NoError(t, err)
	require.Equal(t, "Dog", m.MustAttr("species"))
}

func TestFromRejectsScalar(t *testing.T) {
	_, err := petType.From(42)
	require.ErrorIs(t, err, model.ErrConstruction)
}

func TestAbsentVersusNull(t *testing.T) {
	m, err := petType.New(model.Values{"name": "Eugene"})
	require.NoError(t, err)

	// absent field: nil read, no wire key
	v, err := m.Attr("owner")
	require.NoError(t, err)
	require.Nil(t, v)
	require.False(t, m.Has("owner"))

	// explicit null: wire key present, still reads nil
	require.NoError(t, m.SetAttr("owner", model.Null))
	require.True(t, m.Has("owner"))
	item, err := m.Item("owner")
	require.NoError(t, err)
	require.Nil(t, item)
	v, err = m.Attr("owner")
	require.NoError(t, err)
	require.Nil(t, v)

	// assigning nil deletes the key
	require.NoError(t, m.SetAttr("name", nil))
	require.False(t, m.Has("name"))
}

func TestNullInConstruction(t *testing.T) {
	m, err := petType.New(model.Values{"name": model.Null, "owner": nil})
	require.NoError(t, err)
	require.True(t, m.Has("name"))
	item, err := m.Item("name")
	require.NoError(t, err)
	require.Nil(t, item)
	require.False(t, m.Has("owner"))
}

func TestAttrUndeclared(t *testing.T) {
	m, err := petType.New(nil)
	require.NoError(t, err)
	_, err = m.Attr("wings")
	require.ErrorIs(t, err, model.ErrAttrNotDeclared)
	require.ErrorIs(t, m.SetAttr("wings", 2), model.ErrAttrNotDeclared)
}

func TestMaterializationIsStable(t *testing.T) {
	m, err := petType.From(map[string]any{
		"name":  "Eugene",
		"owner": map[string]any{"name": "Dana"},
	})
	require.NoError(t, err)

	o1 := m.MustAttr("owner").(*model.Model)
	o2 := m.MustAttr("owner").(*model.Model)
	require.Same(t, o1, o2)

	// the mapping view sees the identical wrapper after first read
	item, err := m.Item("owner")
	require.NoError(t, err)
	require.Same(t, o1, item)

	// the wrapper aliases the parent's store: edits are shared
	require.NoError(t, o1.SetAttr("name", "Lee"))
	require.Equal(t, "Lee", m.ToMap()["owner"].(map[string]any)["name"])
}

func TestListOfModelsMaterializes(t *testing.T) {
	m, err := petType.From(map[string]any{
		"name": "Eugene",
		"friends": []any{
			map[string]any{"name": "a"},
			map[string]any{"name": "b"},
		},
	})
	require.NoError(t, err)

	fs := m.MustAttr("friends").([]any)
	require.Len(t, fs, 2)
	first := fs[0].(*model.Model)
	require.Equal(t, "a", first.MustAttr("name"))
	require.Same(t, first, m.MustAttr("friends").([]any)[0])
}

func TestScalarDecodeDoesNotPersist(t *testing.T) {
	m, err := petType.From(map[string]any{"birthday": "2015-05-25T08:00:00Z"})
	require.NoError(t, err)

	v := m.MustAttr("birthday")
	require.IsType(t, time.Time{}, v)
	rv, ok := m.Get("birthday")
	require.True(t, ok)
	require.Equal(t, "2015-05-25T08:00:00Z", rv)
}

func TestSetAttrEncodes(t *testing.T) {
	m, err := petType.New(nil)
	require.NoError(t, err)

	require.NoError(t, m.SetAttr("birthday", time.Date(2015, 5, 25, 8, 0, 0, 0, time.UTC)))
	rv, _ := m.Get("birthday")
	require.Equal(t, "2015-05-25T08:00:00Z", rv)

	require.NoError(t, m.SetAttr("id", int64(7)))
	rv, ok := m.Get("_id")
	require.True(t, ok)
	require.Equal(t, "7", rv)
	require.Equal(t, int64(7), m.MustAttr("id"))
}

func TestUndeclaredKeysRoundTrip(t *testing.T) {
	m, err := petType.From(map[string]any{"name": "Eugene"})
	require.NoError(t, err)

	m.Set("extra", map[string]any{"a": 1})
	rv, ok := m.Get("extra")
	require.True(t, ok)
	require.IsType(t, (*raw.Map)(nil), rv)
	require.Contains(t, m.Keys(), "extra")
}

func TestViewMissingKeys(t *testing.T) {
	m, err := petType.New(nil)
	require.NoError(t, err)

	_, err = m.Item("nope")
	require.ErrorIs(t, err, raw.ErrKeyNotFound)
	require.ErrorIs(t, m.Delete("nope"), raw.ErrKeyNotFound)
	_, err = m.Pop("nope")
	require.ErrorIs(t, err, raw.ErrKeyNotFound)
	require.Equal(t, "fallback", m.PopDefault("nope", "fallback"))
}

func TestPopItemOrder(t *testing.T) {
	m, err := petType.From(map[string]any{})
	require.NoError(t, err)
	m.Set("a", 1)
	m.Set("b", 2)

	k, v, err := m.PopItem()
	require.NoError(t, err)
	require.Equal(t, "b", k)
	require.Equal(t, 2, v)

	m.Clear()
	_, _, err = m.PopItem()
	require.ErrorIs(t, err, raw.ErrKeyNotFound)
}

func TestUpdate(t *testing.T) {
	m, err := petType.From(map[string]any{"name": "Eugene"})
	require.NoError(t, err)

	require.NoError(t, m.Update(map[string]any{"species": "Cat"}))
	require.Equal(t, "Cat", m.MustAttr("species"))
	require.ErrorIs(t, m.Update(42), model.ErrConstruction)
}

func TestEqualIgnoresOrder(t *testing.T) {
	m, err := petType.From(map[string]any{"name": "Eugene"})
	require.NoError(t, err)

	rm := raw.FromItems(
		raw.Item{Key: "species", Value: "Dog"},
		raw.Item{Key: "name", Value: "Eugene"},
	)
	other, err := petType.From(rm)
	require.NoError(t, err)
	require.NotEqual(t, m.Keys(), other.Keys())
	require.True(t, m.Equal(other))
	require.True(t, m.Equal(map[string]any{"name": "Eugene", "species": "Dog"}))
	require.False(t, m.Equal(map[string]any{"name": "Eugene"}))
}

func TestCloneIsIndependent(t *testing.T) {
	m, err := petType.From(map[string]any{
		"name":  "Eugene",
		"owner": map[string]any{"name": "Dana"},
	})
	require.NoError(t, err)

	// materialize before cloning: the clone must not share the nested
	// store either
	owner := m.MustAttr("owner").(*model.Model)
	c := m.Clone()

	require.NoError(t, owner.SetAttr("name", "Lee"))
	require.Equal(t, "Dana", c.MustAttr("owner").(*model.Model).MustAttr("name"))

	require.NoError(t, c.SetAttr("name", "Copy"))
	require.NoError(t, c.MustAttr("owner").(*model.Model).SetAttr("name", "Max"))
	require.Equal(t, "Eugene", m.MustAttr("name"))
	require.Equal(t, "Lee", owner.MustAttr("name"))
}

func TestFromCopiesMaterialized(t *testing.T) {
	m, err := petType.From(map[string]any{
		"name":  "Eugene",
		"owner": map[string]any{"name": "Dana"},
	})
	require.NoError(t, err)
	owner := m.MustAttr("owner").(*model.Model)

	c, err := petType.From(m)
	require.NoError(t, err)
	require.NoError(t, owner.SetAttr("name", "Lee"))
	require.Equal(t, "Dana", c.MustAttr("owner").(*model.Model).MustAttr("name"))
}

func TestToMapExcludeReadOnly(t *testing.T) {
	m, err := petType.New(model.Values{"name": "Eugene", "id": int64(7)})
	require.NoError(t, err)

	full := m.ToMap()
	require.Contains(t, full, "_id")

	trimmed := m.ToMap(model.ExcludeReadOnly())
	require.NotContains(t, trimmed, "_id")
	require.Equal(t, "Eugene", trimmed["name"])

	// read-only affects that export only
	require.Equal(t, int64(7), m.MustAttr("id"))
}

func TestMROLeftmostWins(t *testing.T) {
	a := model.MustDefine("MixA", model.Fields(
		field.New("x", nil, field.Default("fromA")),
	))
	b := model.MustDefine("MixB", model.Fields(
		field.New("x", nil, field.Default("fromB")),
		field.New("y", nil, field.Default("fromB")),
	))
	c := model.MustDefine("MixC", model.Extends(a, b))

	m, err := c.New(nil)
	require.NoError(t, err)
	require.Equal(t, "fromA", m.MustAttr("x"))
	require.Equal(t, "fromB", m.MustAttr("y"))
	require.Equal(t, []string{"x", "y"}, m.Keys())
}

func TestDefineDuplicateField(t *testing.T) {
	_, err := model.Define("Dup", model.Fields(
		field.New("x", nil),
		field.New("x", nil),
	))
	require.Error(t, err)
}

func TestTypedSliceEncodes(t *testing.T) {
	sched := model.MustDefine("Schedule", model.Fields(
		field.New("times", field.List(field.Datetime())),
		field.New("tags", field.List(field.Any())),
	))
	m, err := sched.New(model.Values{
		"times": []time.Time{time.Date(2015, 5, 25, 8, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	rv, _ := m.Get("times")
	require.Equal(t, []any{"2015-05-25T08:00:00Z"}, rv)

	tags := []string{"a", "b"}
	require.NoError(t, m.SetAttr("tags", tags))
	rv, _ = m.Get("tags")
	require.Equal(t, []any{"a", "b"}, rv)

	// the store never aliases the caller's slice
	tags[0] = "zap"
	rv, _ = m.Get("tags")
	require.Equal(t, []any{"a", "b"}, rv)
}

func TestSubtypeRedeclaresDecode(t *testing.T) {
	parent := model.MustDefine("Coded", model.Fields(
		field.New("code", field.IntString()),
	))
	child := model.MustDefine("CodedPrefixed",
		model.Extends(parent),
		model.Fields(
			field.New("code", field.IntString(), field.DecodeWith(codec.MustExprDecoder(`"c-" + raw`))),
		),
	)
	grandchild := model.MustDefine("CodedPrefixedChild", model.Extends(child))

	c, err := child.From(map[string]any{"code": "7"})
	require.NoError(t, err)
	require.Equal(t, "c-7", c.MustAttr("code"))

	// the encode half stays the generic one for the declared type
	require.NoError(t, c.SetAttr("code", int64(9)))
	rv, _ := c.Get("code")
	require.Equal(t, "9", rv)
	require.Equal(t, "c-9", c.MustAttr("code"))

	// descendants inherit the redeclared decode
	g, err := grandchild.From(map[string]any{"code": "7"})
	require.NoError(t, err)
	require.Equal(t, "c-7", g.MustAttr("code"))

	// the parent type is unaffected when accessed as itself
	p, err := parent.From(map[string]any{"code": "7"})
	require.NoError(t, err)
	require.Equal(t, int64(7), p.MustAttr("code"))
}

func TestCustomDecode(t *testing.T) {
	tagged := model.MustDefine("Tagged", model.Fields(
		field.New("tag", nil, field.DecodeWith(codec.MustExprDecoder(`"id-" + raw`))),
	))
	m, err := tagged.From(map[string]any{"tag": "42"})
	require.NoError(t, err)
	require.Equal(t, "id-42", m.MustAttr("tag"))
}

func TestGenericMarshalRefused(t *testing.T) {
	m, err := petType.New(model.Values{"name": "Eugene"})
	require.NoError(t, err)
	_, err = json.Marshal(m)
	require.Error(t, err)
	require.True(t, errors.Is(err, model.ErrGenericMarshal))
}
