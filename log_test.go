package sprites

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf)
	SetLogger(l)
	t.Cleanup(func() { SetLogger(nil) })

	if Logger() != l {
		t.Fatal("Logger() should return the installed logger")
	}

	// A missing image is logged with the sprite name and reference.
	if _, err := NewStatedSprite("hud", Rect{0, 0, 4, 4}, Descriptor{Image: Some("ghost")}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "hud") || !strings.Contains(out, "ghost") {
		t.Errorf("log output = %q", out)
	}
}

func TestResolveWarnsOnIgnoredTextPos(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(log.New(&buf))
	t.Cleanup(func() { SetLogger(nil) })

	Resolve(Descriptor{TextPos: Some(Vec2{1, 1})}, ResolveContext{Bounds: box})
	if !strings.Contains(buf.String(), "text_pos") {
		t.Errorf("log output = %q, want a text_pos warning", buf.String())
	}
}

func TestSetLoggerNilRestoresDefault(t *testing.T) {
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger() must never be nil")
	}
	if Logger().GetLevel() != log.WarnLevel {
		t.Errorf("default level = %v, want warn", Logger().GetLevel())
	}
}
