package serializers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/serializers"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bottle() *tree.Map {
	return tree.NewMap().
		Set("id", tree.Int(42)).
		Set("name", tree.String("Atlantic")).
		Set("nom", tree.Int(3)).
		Set("protocolVersionMajor", tree.Int(2)).
		Set("protocolVersionMinor", tree.Int(1))
}

func message() *tree.Map {
	return tree.NewMap().
		Set("btlID", tree.Int(42)).
		Set("msgID", tree.Int(1)).
		Set("txt", tree.String("")).
		Set("toBeDeleted", tree.Bool(true)).
		Set("location", tree.NewMap().
			Set("longitude", tree.Float(4.5)).
			Set("latitude", tree.Float(52.25))).
		Set("crc", tree.String("x"))
}

func render(t *testing.T, f serializers.Format, n tree.Node) string {
	t.Helper()
	out, err := serializers.Render(f, n)
	require.NoError(t, err)
	return string(out)
}

func TestForFormat(t *testing.T) {
	assert.Equal(t, serializers.HTML, serializers.ForFormat("htm"))
	assert.Equal(t, serializers.HTML, serializers.ForFormat("HTML"))
	assert.Equal(t, serializers.Text, serializers.ForFormat("txt"))
	assert.Equal(t, serializers.XML, serializers.ForFormat("xml"))
	assert.Equal(t, serializers.JSON, serializers.ForFormat(""))
	assert.Equal(t, serializers.JSON, serializers.ForFormat("png"))
	assert.Equal(t, "application/xml", serializers.XML.ContentType())
	assert.Equal(t, "text/plain", serializers.Text.ContentType())
	assert.Equal(t, "text/html", serializers.HTML.ContentType())
	assert.Equal(t, "application/json", serializers.JSON.ContentType())
}

func TestJSON_Bottle(t *testing.T) {
	assert.Equal(t,
		`{"id":42,"name":"Atlantic","nom":3,"protocolVersionMajor":2,"protocolVersionMinor":1}`,
		render(t, serializers.JSON, bottle()))
}

func TestJSON_ListAndBooleans(t *testing.T) {
	out := render(t, serializers.JSON, tree.List{message(), tree.NewMap(), tree.List{}})
	assert.Equal(t,
		`[{"btlID":42,"msgID":1,"txt":"","toBeDeleted":true,"location":{"longitude":4.5,"latitude":52.25},"crc":"x"},{},[]]`,
		out)
}

func TestJSON_RoundTrip(t *testing.T) {
	original := tree.List{message(), bottle(), tree.List{tree.String("a<b"), tree.Null(), tree.Bool(false)}}
	out, err := serializers.Render(serializers.JSON, original)
	require.NoError(t, err)

	decoded, err := decodeOrdered(out)
	require.NoError(t, err)
	assert.Equal(t, tree.Plain(original), tree.Plain(decoded))

	again, err := serializers.Render(serializers.JSON, decoded)
	require.NoError(t, err)
	assert.Equal(t, string(out), string(again), "key order must survive the round trip")
}

func TestXML_Bottle(t *testing.T) {
	want := `<?xml version="1.0" encoding="UTF-8"?>
<xml>
  <id><![CDATA[42]]></id>
  <name><![CDATA[Atlantic]]></name>
  <nom><![CDATA[3]]></nom>
  <protocolVersionMajor><![CDATA[2]]></protocolVersionMajor>
  <protocolVersionMinor><![CDATA[1]]></protocolVersionMinor>
</xml>
`
	assert.Equal(t, want, render(t, serializers.XML, bottle()))
}

func TestXML_ListTags(t *testing.T) {
	n := tree.List{
		message(),
		bottle(),
		tree.String("loose"),
		tree.List{tree.Int(7)},
	}
	want := `<?xml version="1.0" encoding="UTF-8"?>
<xml>
  <message>
    <btlID><![CDATA[42]]></btlID>
    <msgID><![CDATA[1]]></msgID>
    <txt><![CDATA[]]></txt>
    <toBeDeleted><![CDATA[true]]></toBeDeleted>
    <location>
      <longitude><![CDATA[4.5]]></longitude>
      <latitude><![CDATA[52.25]]></latitude>
    </location>
    <crc><![CDATA[x]]></crc>
  </message>
  <bottle>
    <id><![CDATA[42]]></id>
    <name><![CDATA[Atlantic]]></name>
    <nom><![CDATA[3]]></nom>
    <protocolVersionMajor><![CDATA[2]]></protocolVersionMajor>
    <protocolVersionMinor><![CDATA[1]]></protocolVersionMinor>
  </bottle>
  <entry><![CDATA[loose]]></entry>
  <entry>
    <entry><![CDATA[7]]></entry>
  </entry>
</xml>
`
	assert.Equal(t, want, render(t, serializers.XML, n))
}

func TestXML_CDATATerminatorIsSplit(t *testing.T) {
	out := render(t, serializers.XML, tree.NewMap().Set("txt", tree.String("a]]>b")))
	assert.Contains(t, out, "<txt><![CDATA[a]]]]><![CDATA[>b]]></txt>")
}

func TestHTML_Message(t *testing.T) {
	n := tree.NewMap().
		Set("title", tree.String("<hello>")).
		Set("toBeDeleted", tree.Bool(false)).
		Set("location", tree.NewMap().Set("longitude", tree.Float(1.5)))
	want := `<html>
  <body>
    <ul>
      <li><b>title: </b>&lt;hello&gt;</li>
      <li><b>toBeDeleted: </b>false</li>
      <li><b>location: </b>
        <ul>
          <li><b>longitude: </b>1.5</li>
        </ul>
      </li>
    </ul>
  </body>
</html>
`
	assert.Equal(t, want, render(t, serializers.HTML, n))
}

func TestHTML_ListUsesOrderedListWithoutLabels(t *testing.T) {
	n := tree.List{tree.NewMap().Set("msgID", tree.Int(1))}
	want := `<html>
  <body>
    <ol>
      <li>
        <ul>
          <li><b>msgID: </b>1</li>
        </ul>
      </li>
    </ol>
  </body>
</html>
`
	assert.Equal(t, want, render(t, serializers.HTML, n))
}

func TestText_NestedIndent(t *testing.T) {
	want := "btlID: 42\n" +
		"msgID: 1\n" +
		"txt: \n" +
		"toBeDeleted: true\n" +
		"location: \n" +
		"          longitude: 4.5\n" +
		"          latitude: 52.25\n" +
		"\n" +
		"crc: x\n"
	assert.Equal(t, want, render(t, serializers.Text, message()))
}

func TestText_List(t *testing.T) {
	n := tree.List{tree.NewMap().Set("msgID", tree.Int(1)).Set("author", tree.String("a"))}
	want := "0: \n" +
		"   msgID: 1\n" +
		"   author: a\n" +
		"\n"
	assert.Equal(t, want, render(t, serializers.Text, n))
}

func TestAllFormats_KeepKeyOrder(t *testing.T) {
	keys := []string{"zeta", "alpha", "mid"}
	m := tree.NewMap()
	for _, k := range keys {
		m.Set(k, tree.String(k+"-value"))
	}
	for _, f := range []serializers.Format{serializers.JSON, serializers.XML, serializers.HTML, serializers.Text} {
		out := render(t, f, m)
		last := -1
		for _, k := range keys {
			i := strings.Index(out, k+"-value")
			require.Greater(t, i, last, "format %s", f)
			last = i
		}
	}
}

// decodeOrdered parses JSON into a tree, keeping object key order.
func decodeOrdered(data []byte) (tree.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return decodeValue(dec)
}

func decodeValue(dec *json.Decoder) (tree.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		if v == '{' {
			m := tree.NewMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				child, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(keyTok.(string), child)
			}
			_, err := dec.Token()
			return m, err
		}
		l := tree.List{}
		for dec.More() {
			child, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			l = append(l, child)
		}
		_, err := dec.Token()
		return l, err
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return tree.Int(i), nil
		}
		f, err := v.Float64()
		return tree.Float(f), err
	case string:
		return tree.String(v), nil
	case bool:
		return tree.Bool(v), nil
	case nil:
		return tree.Null(), nil
	}
	return nil, io.ErrUnexpectedEOF
}
