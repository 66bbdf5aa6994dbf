package classifier

import (
	"fmt"

	"github.com/springwalk/lexwatch/internal/types"
)

const systemPrompt = "Odpovídej pouze číslem 1–5."

const promptTemplate = `Jsi právní analytik. Ohodnoť POUTAVOST pro odborný právnický blog na škále 1–5:
1 = drobná aktualita bez významu,
2 = okrajové,
3 = relevantní pro část čtenářů,
4 = významné (dopad/precedens),
5 = průlomové (zásadní novela/ÚS/SDEU).

Vrať pouze číslo 1–5, nic jiného.

Titulek: %s
Anotace: %s`

// buildPrompt substitutes the item into the fixed rating template.
func buildPrompt(item types.FeedItem) string {
	summary := item.Summary
	if summary == "" {
		summary = "(bez anotace)"
	}
	return fmt.Sprintf(promptTemplate, item.Title, summary)
}
