package fonts

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestTTFStyles(t *testing.T) {
	seen := map[*byte]Style{}
	for _, s := range []Style{{}, {Bold: true}, {Italic: true}, {Bold: true, Italic: true}} {
		data := TTF(s)
		if len(data) == 0 {
			t.Fatalf("TTF(%+v) is empty", s)
		}
		if prev, dup := seen[&data[0]]; dup {
			t.Errorf("TTF(%+v) shares data with %+v", s, prev)
		}
		seen[&data[0]] = s
	}
}

func TestFaceMetrics(t *testing.T) {
	small, err := Face(Style{}, 10, 72)
	if err != nil {
		t.Fatalf("Face error: %v", err)
	}
	large, err := Face(Style{}, 20, 72)
	if err != nil {
		t.Fatalf("Face error: %v", err)
	}
	if small.Metrics().Height >= large.Metrics().Height {
		t.Errorf("height at 10pt (%v) should be below 20pt (%v)", small.Metrics().Height, large.Metrics().Height)
	}
}

func TestFontParsedOnce(t *testing.T) {
	a, err := Font(Style{Bold: true})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Font(Style{Bold: true})
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("Font should return the cached parse")
	}
}

func TestBase64(t *testing.T) {
	got, err := base64.StdEncoding.DecodeString(Base64(Style{}))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(got, TTF(Style{})) {
		t.Error("Base64 does not round-trip to the TTF data")
	}
}
