package tree_test

import (
	"testing"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/tree"
	"github.com/stretchr/testify/assert"
)

func TestMap_KeepsInsertionOrder(t *testing.T) {
	m := tree.NewMap().
		Set("b", tree.Int(1)).
		Set("a", tree.Int(2)).
		Set("c", tree.Int(3))
	m.Set("a", tree.String("replaced"))

	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, tree.String("replaced"), v)
	assert.Equal(t, 3, m.Len())
	assert.False(t, m.Has("missing"))
}

func TestScalar_Text(t *testing.T) {
	assert.Equal(t, "true", tree.Bool(true).Text())
	assert.Equal(t, "false", tree.Bool(false).Text())
	assert.Equal(t, "", tree.Null().Text())
	assert.Equal(t, "42", tree.Int(42).Text())
	assert.Equal(t, "4.35", tree.Float(4.35).Text())
	assert.Equal(t, "hi", tree.String("hi").Text())
}

func TestPlain(t *testing.T) {
	n := tree.List{
		tree.NewMap().Set("msgID", tree.Int(1)).Set("ok", tree.Bool(true)),
		tree.Null(),
	}
	assert.Equal(t, []any{
		map[string]any{"msgID": int64(1), "ok": true},
		nil,
	}, tree.Plain(n))
}
