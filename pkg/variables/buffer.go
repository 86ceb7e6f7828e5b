package variables

// Buffer models a variable-aware text field. The canvas loses input focus
// when the variable picker opens, so the last-known caret offset is recorded
// on every focus/click/keyup and used later to splice the token in.
type Buffer struct {
	text  string
	caret int
	known bool
}

// NewBuffer creates a buffer with the given initial text and no recorded
// caret position.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: text}
}

// Text returns the current contents.
func (b *Buffer) Text() string {
	return b.text
}

// Caret returns the last recorded caret offset and whether one was ever
// recorded.
func (b *Buffer) Caret() (int, bool) {
	return b.caret, b.known
}

// SetText replaces the contents, clamping a recorded caret to the new length.
func (b *Buffer) SetText(text string) {
	b.text = text

	if b.known && b.caret > len(text) {
		b.caret = len(text)
	}
}

// RecordCaret remembers the caret offset, clamped into [0, len(text)].
func (b *Buffer) RecordCaret(offset int) {
	if offset < 0 {
		offset = 0
	}

	if offset > len(b.text) {
		offset = len(b.text)
	}

	b.caret = offset
	b.known = true
}

// InsertVariable splices the formatted token for key at the remembered caret
// offset and moves the caret just past the token. With no recorded caret the
// token is appended at the end. Returns the new caret offset.
func (b *Buffer) InsertVariable(key string) int {
	token := FormatKey(key)

	at := len(b.text)
	if b.known {
		at = b.caret
	}

	b.text = b.text[:at] + token + b.text[at:]
	b.caret = at + len(token)
	b.known = true

	return b.caret
}
