package template

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_FormatBySourceExtension(t *testing.T) {
	jsonDoc := MustNewDocument(SourceFromFS("greeting.json"), []byte(`{"msg": "hi"}`))
	yamlDoc := MustNewDocument(SourceFromFS("greeting.yaml"), []byte("msg: hi\n"))

	want := Object(Member{Key: "msg", Value: String("hi")})

	for _, doc := range []Document{jsonDoc, yamlDoc} {
		val, err := Parse(doc)
		if err != nil {
			t.Fatalf("Parse %s: %v", doc.Location(), err)
		}
		if !val.Equal(want) {
			t.Fatalf("Parse %s: unexpected value %#v", doc.Location(), val)
		}
	}
}

func TestParse_MalformedDocumentNamesSource(t *testing.T) {
	doc := MustNewDocument(SourceFromFile("broken.json"), []byte(`{"msg": `))

	_, err := Parse(doc)
	if err == nil {
		t.Fatalf("expected parse error")
	}

	var parseErr ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if !strings.Contains(parseErr.Error(), "broken.json") {
		t.Fatalf("error should identify the source: %v", parseErr)
	}
}

func TestParse_YAMLSyntaxError(t *testing.T) {
	doc := MustNewDocument(SourceFromFS("broken.yaml"), []byte("a: [1, 2\n"))

	var parseErr ParseError
	if _, err := Parse(doc); !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}
