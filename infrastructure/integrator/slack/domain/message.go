package slackdomain

// Tipos de bloco do Block Kit usados pelo relatório
const (
	BlockHeader  = "header"
	BlockDivider = "divider"
	BlockSection = "section"
	BlockContext = "context"

	TextPlain    = "plain_text"
	TextMarkdown = "mrkdwn"
)

// Message é o payload de um incoming webhook. Text é o fallback das notificações.
type Message struct {
	Text   string  `json:"text"`
	Blocks []Block `json:"blocks"`
}

type Block struct {
	Type     string       `json:"type"`
	Text     *TextObject  `json:"text,omitempty"`
	Elements []TextObject `json:"elements,omitempty"`
}

type TextObject struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

func Header(text string) Block {
	return Block{Type: BlockHeader, Text: &TextObject{Type: TextPlain, Text: text, Emoji: true}}
}

func Divider() Block {
	return Block{Type: BlockDivider}
}

func Section(markdown string) Block {
	return Block{Type: BlockSection, Text: &TextObject{Type: TextMarkdown, Text: markdown}}
}

func Context(markdown string) Block {
	return Block{Type: BlockContext, Elements: []TextObject{{Type: TextMarkdown, Text: markdown}}}
}
