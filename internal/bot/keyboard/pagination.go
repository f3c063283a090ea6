package keyboard

import "strconv"

// PaginationButtons returns the prev/next row for a zero-based page index.
// Prev appears only past the first page, next only before the last one, so
// the row may be empty on a single page.
func PaginationButtons(action string, page, totalPages int) []InlineButton {
	buttons := make([]InlineButton, 0, 2)

	if page > 0 {
		data, err := EncodeCallback(action, strconv.Itoa(page-1))
		if err == nil {
			buttons = append(buttons, InlineButton{Text: "◀️ Prev", Data: data})
		}
	}

	if page < totalPages-1 {
		data, err := EncodeCallback(action, strconv.Itoa(page+1))
		if err == nil {
			buttons = append(buttons, InlineButton{Text: "Next ▶️", Data: data})
		}
	}

	return buttons
}
