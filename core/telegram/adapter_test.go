package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tele "gopkg.in/telebot.v4"
)

func TestSplitCallbackData(t *testing.T) {
	text, label := splitCallbackData(&tele.Callback{Data: "\f1|3"})
	assert.Equal(t, "1", text)
	assert.Equal(t, "3", label)

	text, label = splitCallbackData(&tele.Callback{Data: "2"})
	assert.Equal(t, "2", text)
	assert.Empty(t, label)

	text, label = splitCallbackData(&tele.Callback{Unique: "category", Data: " 1 "})
	assert.Equal(t, "category", text)
	assert.Equal(t, "1", label)

	text, label = splitCallbackData(nil)
	assert.Empty(t, text)
	assert.Empty(t, label)
}
