package keyboard

import "github.com/go-telegram/bot/models"

// Builder assembles inline keyboards row by row.
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

// NewBuilder returns an empty keyboard builder.
func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]models.InlineKeyboardButton, 0),
	}
}

// Row appends a row of buttons.
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// Button creates a callback button.
func Button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// Build returns the keyboard, or nil when it has no buttons.
func (b *Builder) Build() *models.InlineKeyboardMarkup {
	if len(b.rows) == 0 {
		return nil
	}
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: b.rows,
	}
}
