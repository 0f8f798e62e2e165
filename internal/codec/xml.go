package codec

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/dwilkie/tropo-message/internal/domain"
)

// RequestXML renders the session request document:
//
//	<sessions><token>TOKEN</token><var name="KEY" value="VALUE"/>...</sessions>
//
// The token is written as is. Every other local param becomes a var
// element with its name and value escaped, in insertion order.
func RequestXML(m Resolver) string {
	var b strings.Builder

	b.WriteString("<sessions><token>")
	b.WriteString(m.Get(domain.FieldToken))
	b.WriteString("</token>")

	m.Params().Each(func(key, value string) {
		if key == string(domain.FieldToken) {
			return
		}
		b.WriteString(`<var name="`)
		b.WriteString(Escape(key))
		b.WriteString(`" value="`)
		b.WriteString(Escape(value))
		b.WriteString(`"/>`)
	})

	b.WriteString("</sessions>")
	return b.String()
}

type sessionsDoc struct {
	XMLName xml.Name  `xml:"sessions"`
	Token   string    `xml:"token"`
	Vars    []varElem `xml:"var"`
}

type varElem struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ParseRequestXML reads a document produced by RequestXML back into a
// Message. The token, when present, is the first local param; the vars
// follow in document order with their names and values unescaped.
func ParseRequestXML(data []byte) (*domain.Message, error) {
	var doc sessionsDoc
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode request xml: %w", err)
	}

	var params domain.Params
	if doc.Token != "" {
		params.Set(string(domain.FieldToken), doc.Token)
	}
	for _, v := range doc.Vars {
		params.Set(Unescape(v.Name), Unescape(v.Value))
	}

	return domain.NewMessage(domain.WithParams(params)), nil
}
