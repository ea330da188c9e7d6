package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_SetDefault(t *testing.T) {
	d, err := decodeDocument([]byte(`{"a":1,"b":null}`))
	require.NoError(t, err)

	assert.False(t, d.SetDefault("a", 5))
	assert.True(t, d.SetDefault("b", "x"))
	assert.True(t, d.SetDefault("c", false))
	assert.Equal(t, json.Number("1"), d["a"])
	assert.Equal(t, "x", d["b"])
	assert.Equal(t, false, d["c"])
}

func TestDocument_Accessors(t *testing.T) {
	d, err := decodeDocument([]byte(`{"s":"v","b":true,"n":42,"f":1.5,"groups":[{"id":1},"junk",{"id":2}]}`))
	require.NoError(t, err)

	assert.Equal(t, "v", d.String("s"))
	assert.Equal(t, "", d.String("n"))
	assert.True(t, d.Bool("b"))
	assert.False(t, d.Bool("missing"))

	n, ok := d.Int("n")
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)
	_, ok = d.Int("f")
	assert.False(t, ok)
	_, ok = d.Int("s")
	assert.False(t, ok)

	groups := d.Docs("groups")
	require.Len(t, groups, 2)
	groups[0].Set("city", "Riga")
	assert.Equal(t, "Riga", d["groups"].([]any)[0].(map[string]any)["city"])
	assert.Empty(t, d.Docs("missing"))
}

func TestDocument_CloneIsDeep(t *testing.T) {
	d, err := decodeDocument([]byte(`{"groups":[{"nodes":[{"ip":"1.1.1.1"}]}]}`))
	require.NoError(t, err)

	c := d.Clone()
	c.Docs("groups")[0].Docs("nodes")[0].Set("ip", "2.2.2.2")

	assert.Equal(t, "1.1.1.1", d.Docs("groups")[0].Docs("nodes")[0].String("ip"))
	assert.Equal(t, "2.2.2.2", c.Docs("groups")[0].Docs("nodes")[0].String("ip"))
}

func TestDecodeDocument(t *testing.T) {
	d, err := decodeDocument([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, d)

	_, err = decodeDocument([]byte(`[1,2]`))
	assert.Error(t, err)
}

func TestKeyOf(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
		ok   bool
	}{
		{"string", Document{"k": "home"}, "home", true},
		{"empty string", Document{"k": ""}, "", false},
		{"number", Document{"k": json.Number("7")}, "7", true},
		{"int", Document{"k": 3}, "3", true},
		{"float", Document{"k": 2.0}, "2", true},
		{"missing", Document{}, "", false},
		{"bool", Document{"k": true}, "true", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyOf(tt.doc, "k")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
