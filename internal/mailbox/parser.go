package mailbox

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
)

// ParsedEmail is the normalized form of one raw message.
type ParsedEmail struct {
	From    string
	Subject string
	Body    string
	// Date is the zero time when the message carries no usable Date
	// header; callers substitute the ingestion time.
	Date time.Time
}

// Parse decodes a raw RFC 5322 message into a ParsedEmail. Malformed
// MIME yields a *ParseError; the caller skips the message and moves on.
func Parse(raw []byte) (*ParsedEmail, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	defer mr.Close()

	header := mr.Header

	parsed := &ParsedEmail{
		From:    fromText(header),
		Subject: subjectText(header),
	}

	if date, err := header.Date(); err == nil {
		parsed.Date = date
	}

	textBody, htmlBody := readBodies(mr)
	parsed.Body = textBody
	if parsed.Body == "" && htmlBody != "" {
		parsed.Body = stripHTML(htmlBody)
	}

	return parsed, nil
}

// fromText renders the first From address as display text, falling back
// to the raw header value when the address list does not parse.
func fromText(header mail.Header) string {
	addrs, err := header.AddressList("From")
	if err != nil || len(addrs) == 0 {
		return header.Get("From")
	}

	addr := addrs[0]
	if addr.Name != "" {
		return addr.Name + " <" + addr.Address + ">"
	}
	return addr.Address
}

func subjectText(header mail.Header) string {
	subject, err := header.Subject()
	if err != nil {
		return header.Get("Subject")
	}
	return subject
}

// readBodies walks the inline MIME parts and collects the first
// text/plain and text/html bodies.
func readBodies(mr *mail.Reader) (textBody, htmlBody string) {
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}

		contentType, _, _ := h.ContentType()
		body, readErr := io.ReadAll(part.Body)
		if readErr != nil {
			continue
		}

		switch {
		case strings.HasPrefix(contentType, "text/plain") && textBody == "":
			textBody = string(body)
		case strings.HasPrefix(contentType, "text/html") && htmlBody == "":
			htmlBody = string(body)
		}
	}

	return textBody, htmlBody
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTML gives a basic plain-text rendering of an HTML body.
func stripHTML(html string) string {
	result := html
	for _, tag := range []string{"<br>", "<br/>", "<br />", "</p>", "</div>", "</li>"} {
		result = strings.ReplaceAll(result, tag, "\n")
	}

	result = htmlTagPattern.ReplaceAllString(result, "")

	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
	result = replacer.Replace(result)

	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}

	return strings.TrimSpace(result)
}
