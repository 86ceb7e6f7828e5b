package variables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryIDs(categories []Category) []string {
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}

	return ids
}

func TestRegistry_FiltersByTriggerType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		triggerType string
		wantIDs     []string
	}{
		{
			name:        "facebook leads",
			triggerType: "facebook_leads",
			wantIDs:     []string{CategoryFacebookLead, CategoryCustomVariables},
		},
		{
			name:        "hubspot",
			triggerType: "hubspot",
			wantIDs:     []string{CategoryHubSpotContact, CategoryCustomVariables},
		},
		{
			name:        "unmapped trigger falls back to default set",
			triggerType: "carrier_pigeon",
			wantIDs:     []string{CategoryCallData, CategoryAppointmentData, CategoryCustomVariables},
		},
		{
			name:        "empty trigger falls back to default set",
			triggerType: "",
			wantIDs:     []string{CategoryCallData, CategoryAppointmentData, CategoryCustomVariables},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Registry(tt.triggerType)
			assert.Equal(t, tt.wantIDs, categoryIDs(got))

			for _, category := range got {
				assert.NotEmpty(t, category.Variables, "category %s has no variables", category.ID)
			}
		})
	}
}

func TestFormatKey_IdempotentNormalization(t *testing.T) {
	t.Parallel()

	inputs := []string{"name", "{name}", "{{name}}", "{{{name}}}", " appointment.status ", "{appointment.status}", ""}

	for _, s := range inputs {
		assert.Equal(t, FormatKey(ExtractKey(s)), FormatKey(s), "input %q", s)
	}

	assert.Equal(t, "{name}", FormatKey("name"))
	assert.Equal(t, "{name}", FormatKey("{name}"))
	assert.Equal(t, "{name}", FormatKey("{{name}}"))
	assert.Equal(t, "name", ExtractKey("{name}"))
	assert.Equal(t, "name", ExtractKey("{{name}}"))
	assert.Equal(t, "name", ExtractKey("name"))
}

func TestBuffer_InsertVariableAtCaret(t *testing.T) {
	t.Parallel()

	buffer := NewBuffer("abcd")
	buffer.RecordCaret(2)

	caret := buffer.InsertVariable("x")

	assert.Equal(t, "ab{x}cd", buffer.Text())
	assert.Equal(t, 2+len("{x}"), caret)
}

func TestBuffer_InsertVariableWithoutCaretAppends(t *testing.T) {
	t.Parallel()

	buffer := NewBuffer("hello ")

	caret := buffer.InsertVariable("name")

	assert.Equal(t, "hello {name}", buffer.Text())
	assert.Equal(t, len("hello {name}"), caret)
}

func TestBuffer_CaretClamping(t *testing.T) {
	t.Parallel()

	buffer := NewBuffer("abc")
	buffer.RecordCaret(99)

	caret, known := buffer.Caret()
	require.True(t, known)
	assert.Equal(t, 3, caret)

	buffer.RecordCaret(-5)
	caret, _ = buffer.Caret()
	assert.Equal(t, 0, caret)

	// Shrinking the text pulls a recorded caret back inside.
	buffer.RecordCaret(3)
	buffer.SetText("a")
	caret, _ = buffer.Caret()
	assert.Equal(t, 1, caret)
}

func TestBuffer_ConsecutiveInsertions(t *testing.T) {
	t.Parallel()

	buffer := NewBuffer("call ")
	buffer.RecordCaret(5)

	buffer.InsertVariable("name")
	buffer.InsertVariable("phone_number")

	// Second token lands right after the first one.
	assert.Equal(t, "call {name}{phone_number}", buffer.Text())
}
