package generator

import (
	"fmt"

	"github.com/springwalk/lexwatch/internal/types"
)

const (
	blogSystemPrompt   = "Jsi zkušený právní copywriter. Píšeš česky, srozumitelně a bez reklamy."
	socialSystemPrompt = "Jsi content specialista pro LinkedIn. Píšeš česky, věcně a přívětivě."
)

const blogPromptTemplate = `Napiš česky srozumitelný a snadno čitelný článek pro širokou veřejnost (3–5 odstavců).
Styl: jasný, kratší věty, bez žargonu, bez reklamy a bez výzev „kontaktujte nás“.

POVINNÉ:
- Použij 1–2 mezititulky (Markdown „## “).
- V textu přirozeně uveď 1× odkaz na původní zdroj ve formátu [zdroj](%s).
- V závěru nebo v části „Co z toho plyne“ uveď 1× odkaz na [právní poradenství Spring Walk](%s).
- Drž se faktů z podkladu, nic si nevymýšlej.

Podklad:
Titulek: %s
Anotace/Perex: %s

Na úplný konec přidej větu: „Zpracováno z veřejných zdrojů.“`

const socialPromptTemplate = `Vytvoř 3 různé krátké příspěvky na LinkedIn (česky), každý 2–3 věty, k tématu níže.
Každý blok začni NADPISEM „Společnost Spring Walk:“ / „Jednatel (formální):“ / „Jednatel (hravý):“ (v tomto přesném znění), poté text.
Bez reklamy a bez výzev „kontaktujte nás“.

Podklad:
Titulek: %s
Anotace/Perex: %s

Formát výstupu:
---
Společnost Spring Walk:
<2–3 věty>
---
Jednatel (formální):
<2–3 věty>
---
Jednatel (hravý):
<2–3 věty>
---`

func buildBlogPrompt(item types.FeedItem, advisoryURL string) string {
	return fmt.Sprintf(blogPromptTemplate, item.Link, advisoryURL, item.Title, orPlaceholder(item.Summary))
}

func buildSocialPrompt(item types.FeedItem) string {
	return fmt.Sprintf(socialPromptTemplate, item.Title, orPlaceholder(item.Summary))
}

func orPlaceholder(summary string) string {
	if summary == "" {
		return "(bez anotace)"
	}
	return summary
}
