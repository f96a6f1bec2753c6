package loot

import (
	"github.com/nathoo/lootcore/engine/bundle"
	"github.com/nathoo/lootcore/types"
)

// KindMessage is the registry tag of Message entries.
const KindMessage = "Message"

// Message is flavor text sent to the recipient.
type Message struct {
	base
	text string
}

// NewMessage creates a Message from raw operator input, translating
// '&' color codes.
func NewMessage(raw string, probability float64) *Message {
	return NewMessageText(TranslateColorCodes('&', raw), probability)
}

// NewMessageText creates a Message from already translated text.
func NewMessageText(text string, probability float64) *Message {
	m := &Message{text: text}
	m.SetProbability(probability)
	return m
}

func (m *Message) Kind() string { return KindMessage }

// Text returns the translated message text.
func (m *Message) Text() string { return m.text }

func (m *Message) Roll(_ Env, b *bundle.Bundle, _ float64) error {
	b.AddMessage(m.text)
	return nil
}

func (m *Message) String() string {
	return m.text + " @ " + FormatProbability(m.probability) + "%"
}

func (m *Message) Info() types.DisplayRecord {
	return types.DisplayRecord{
		Icon:  "map",
		Title: "Message",
		Lines: []string{
			"Message: " + m.text,
			"Probability: " + FormatProbability(m.probability),
		},
	}
}

func (m *Message) Serialize() types.Fields {
	return types.Fields{
		{Key: "Probability", Value: m.probability},
		{Key: "Message", Value: m.text},
	}
}

func (m *Message) Equal(other Entry) bool {
	o, ok := other.(*Message)
	return ok && o.text == m.text
}

func (m *Message) Hash() uint64 {
	return hashKey(KindMessage, m.text)
}
