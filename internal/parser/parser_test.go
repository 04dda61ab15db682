package parser

import (
	"testing"
	"time"

	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/model"
)

var testDate = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func TestClassifyChat(t *testing.T) {
	c := New()

	ev, ok := c.Classify(`[14:02:31] [Server thread/INFO]: [Not Secure] <Steve> hello world`, testDate)
	if !ok {
		t.Fatal("expected an event")
	}
	if ev.Kind != model.KindChat {
		t.Errorf("expected CHAT, got %s", ev.Kind)
	}
	if ev.PlayerName != "Steve" {
		t.Errorf("expected player Steve, got %q", ev.PlayerName)
	}
	if ev.Message != "hello world" {
		t.Errorf("expected message 'hello world', got %q", ev.Message)
	}
	if ev.Timestamp != "14:02:31" {
		t.Errorf("expected timestamp 14:02:31, got %q", ev.Timestamp)
	}
	if ev.FullDateTime != "15/01/2024 14:02:31" {
		t.Errorf("unexpected fullDateTime %q", ev.FullDateTime)
	}
	if ev.Date != "15/01/2024" {
		t.Errorf("unexpected date %q", ev.Date)
	}
}

func TestClassifyChatWithoutNotSecure(t *testing.T) {
	c := New()

	ev, ok := c.Classify(`[09:00:00] [Server thread/INFO]: <Alex> anyone home?`, testDate)
	if !ok || ev.Kind != model.KindChat {
		t.Fatalf("expected CHAT, got ok=%v kind=%s", ok, ev.Kind)
	}
	if ev.PlayerName != "Alex" || ev.Message != "anyone home?" {
		t.Errorf("unexpected extraction: %q / %q", ev.PlayerName, ev.Message)
	}
}

func TestClassifyJoin(t *testing.T) {
	c := New()

	ev, ok := c.Classify(`[10:30:00] [Server thread/INFO]: Steve[/192.168.1.5:54321] logged in with entity id 261 at (7.5, 64.0, -12.5)`, testDate)
	if !ok || ev.Kind != model.KindJoin {
		t.Fatalf("expected JOIN, got ok=%v kind=%s", ok, ev.Kind)
	}
	if ev.PlayerName != "Steve" {
		t.Errorf("expected player Steve, got %q", ev.PlayerName)
	}
	if ev.Message != "Steve joined the server" {
		t.Errorf("expected synthesized join message, got %q", ev.Message)
	}
}

func TestClassifyLeave(t *testing.T) {
	c := New()

	ev, ok := c.Classify(`[11:45:10] [Server thread/INFO]: Steve left the game`, testDate)
	if !ok || ev.Kind != model.KindLeave {
		t.Fatalf("expected LEAVE, got ok=%v kind=%s", ok, ev.Kind)
	}
	if ev.Message != "Steve left the server" {
		t.Errorf("expected synthesized leave message, got %q", ev.Message)
	}
}

func TestClassifyDeath(t *testing.T) {
	c := New()

	ev, ok := c.Classify(`[12:00:00] [Server thread/INFO]: Alex was slain by Zombie`, testDate)
	if !ok || ev.Kind != model.KindDeath {
		t.Fatalf("expected DEATH, got ok=%v kind=%s", ok, ev.Kind)
	}
	if ev.PlayerName != "Alex" {
		t.Errorf("expected player Alex, got %q", ev.PlayerName)
	}
	// Death messages keep the original console text.
	if ev.Message != "Alex was slain by Zombie" {
		t.Errorf("expected verbatim death message, got %q", ev.Message)
	}
}

func TestClassifyAdvancement(t *testing.T) {
	c := New()

	ev, ok := c.Classify(`[13:20:05] [Server thread/INFO]: Alex has made the advancement [Stone Age]`, testDate)
	if !ok || ev.Kind != model.KindAdvancement {
		t.Fatalf("expected ADVANCEMENT, got ok=%v kind=%s", ok, ev.Kind)
	}
	if ev.Message != "Alex earned [Stone Age]" {
		t.Errorf("expected synthesized advancement message, got %q", ev.Message)
	}
}

func TestClassifyOther(t *testing.T) {
	c := New()

	ev, ok := c.Classify(`[08:00:01] [Server thread/INFO]: Preparing spawn area: 85%`, testDate)
	if !ok || ev.Kind != model.KindOther {
		t.Fatalf("expected OTHER, got ok=%v kind=%s", ok, ev.Kind)
	}
	if ev.PlayerName != "" {
		t.Errorf("expected no player for OTHER, got %q", ev.PlayerName)
	}
	if ev.Message != "Preparing spawn area: 85%" {
		t.Errorf("expected trailing text, got %q", ev.Message)
	}
}

func TestClassifyNoTimestamp(t *testing.T) {
	c := New()

	if _, ok := c.Classify("no timestamp here", testDate); ok {
		t.Error("expected no event for a line without a timestamp bracket")
	}
}

// Chat takes priority over every later shape, so a chat message quoting a
// death phrase must still classify as chat.
func TestChatPriorityOverDeath(t *testing.T) {
	c := New()

	ev, ok := c.Classify(`[14:00:00] [Server thread/INFO]: [Not Secure] <Steve> I was slain by a creeper lol`, testDate)
	if !ok || ev.Kind != model.KindChat {
		t.Fatalf("expected CHAT to win the cascade, got ok=%v kind=%s", ok, ev.Kind)
	}
	if ev.PlayerName != "Steve" {
		t.Errorf("expected player Steve, got %q", ev.PlayerName)
	}
}

func TestRawLinePreserved(t *testing.T) {
	c := New()

	raw := `[14:02:31] [Server thread/INFO]: Steve left the game`
	ev, _ := c.Classify(raw, testDate)
	if ev.RawLine != raw {
		t.Errorf("expected raw line preserved, got %q", ev.RawLine)
	}
}
