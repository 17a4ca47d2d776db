package mailbox

import (
	"encoding/base64"
	"strings"

	"google.golang.org/api/gmail/v1"
)

// Email is the flattened view of a fetched message consumed by the
// classification and extraction heuristics.
type Email struct {
	From    string
	Subject string
	Date    string // raw Date header, unparsed
	Snippet string
	Body    string
}

// ParseMessage flattens a Gmail message into an Email. The body is the first
// decodable text/html part found in the part tree; when nothing decodes, the
// provider snippet stands in for it.
func ParseMessage(msg *gmail.Message) Email {
	e := Email{Snippet: msg.Snippet}
	if msg.Payload == nil {
		e.Body = e.Snippet
		return e
	}

	for _, h := range msg.Payload.Headers {
		switch strings.ToLower(h.Name) {
		case "from":
			e.From = h.Value
		case "subject":
			e.Subject = h.Value
		case "date":
			e.Date = h.Value
		}
	}

	e.Body = bodyFromPart(msg.Payload)
	if e.Body == "" {
		e.Body = e.Snippet
	}
	return e
}

// bodyFromPart walks the MIME part tree looking for HTML content. A leaf
// payload without sub-parts is decoded directly.
func bodyFromPart(p *gmail.MessagePart) string {
	if len(p.Parts) == 0 {
		return decodePartBody(p.Body)
	}
	for _, part := range p.Parts {
		if part.MimeType == "text/html" {
			if s := decodePartBody(part.Body); s != "" {
				return s
			}
		}
		if len(part.Parts) > 0 {
			if s := bodyFromPart(part); s != "" {
				return s
			}
		}
	}
	return ""
}

// decodePartBody decodes base64url content. Undecodable content is treated
// as absent rather than surfaced as an error.
func decodePartBody(b *gmail.MessagePartBody) string {
	if b == nil || b.Data == "" {
		return ""
	}
	raw, err := base64.URLEncoding.DecodeString(b.Data)
	if err != nil {
		raw, err = base64.RawURLEncoding.DecodeString(b.Data)
		if err != nil {
			return ""
		}
	}
	return string(raw)
}
