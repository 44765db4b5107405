package llmjson

import "testing"

func TestCursorWindow(t *testing.T) {
	c := newCursor("0123456789")
	c.pos = 5
	if got := c.window(2); got != "3456" {
		t.Fatalf("got %q", got)
	}
	if got := c.window(100); got != "0123456789" {
		t.Fatalf("got %q", got)
	}
}

func TestCursorComments(t *testing.T) {
	c := newCursor("/* a\nb */X")
	c.skipBlockComment()
	if ch, _ := c.peek(); ch != 'X' {
		t.Fatalf("block comment should end after */, at %q", ch)
	}

	c = newCursor("/* never closed")
	c.skipBlockComment()
	if !c.eof() {
		t.Fatal("unterminated block comment should consume the input")
	}
}
