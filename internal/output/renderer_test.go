package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/model"
)

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	renderer := &JSONRenderer{enc: enc}

	event := model.LogEvent{
		Timestamp:    "14:22:15",
		FullDateTime: "10/01/2024 14:22:15",
		Date:         "10/01/2024",
		Kind:         model.KindDeath,
		PlayerName:   "Alice",
		Message:      "Alice fell from a high place",
		RawLine:      "[14:22:15] [Server thread/INFO]: Alice fell from a high place",
	}

	if err := renderer.Render(event); err != nil {
		t.Fatal(err)
	}

	var got model.LogEvent
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\nraw: %s", err, buf.String())
	}

	if got.Kind != model.KindDeath {
		t.Errorf("expected kind %s, got %s", model.KindDeath, got.Kind)
	}
	if got.PlayerName != "Alice" {
		t.Errorf("expected player Alice, got %q", got.PlayerName)
	}
	if got.FullDateTime != "10/01/2024 14:22:15" {
		t.Errorf("unexpected full date time %q", got.FullDateTime)
	}
}

func TestTextRendererIncludesFields(t *testing.T) {
	var buf bytes.Buffer
	renderer := &TextRenderer{w: &buf}

	event := model.LogEvent{
		Timestamp:  "08:00:05",
		Kind:       model.KindChat,
		PlayerName: "Bob",
		Message:    "hello world",
	}

	if err := renderer.Render(event); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"08:00:05", "Bob", "hello world"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}
