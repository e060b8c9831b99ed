package gmail

import (
	"encoding/base64"
	"html"
	"log"
	"regexp"
	"strings"
	"unicode/utf8"

	"google.golang.org/api/gmail/v1"
)

const (
	mimeTextPlain = "text/plain"
	mimeTextHTML  = "text/html"

	NoReadableContent   = "No readable content found"
	BodyExtractionError = "Error extracting email body"
	DecodeError         = "Error decoding content"
)

var (
	tagPattern     = regexp.MustCompile(`<[^>]+>`)
	base64URLToStd = strings.NewReplacer("-", "+", "_", "/")
)

// ExtractBody returns the readable text of a message payload. Plain text
// children win over HTML children wherever they appear; only the root's
// direct children are looked at, nested multiparts are left alone.
func ExtractBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return BodyExtractionError
	}
	// A present but empty parts list still counts as multipart.
	if payload.Parts != nil {
		if data, ok := firstPartData(payload.Parts, mimeTextPlain); ok {
			return decodeBody(data)
		}
		if data, ok := firstPartData(payload.Parts, mimeTextHTML); ok {
			return htmlToText(decodeBody(data))
		}
		return NoReadableContent
	}

	data := partData(payload)
	if data == "" {
		return NoReadableContent
	}
	content := decodeBody(data)
	if payload.MimeType == mimeTextHTML {
		return htmlToText(content)
	}
	return content
}

// firstPartData returns the encoded data of the first part of mimeType that carries any.
func firstPartData(parts []*gmail.MessagePart, mimeType string) (string, bool) {
	for _, part := range parts {
		if part == nil || part.MimeType != mimeType {
			continue
		}
		if data := partData(part); data != "" {
			return data, true
		}
	}
	return "", false
}

func partData(part *gmail.MessagePart) string {
	if part.Body == nil {
		return ""
	}
	return part.Body.Data
}

// decodeBody decodes Gmail's base64url body data, tolerating missing padding.
// Invalid UTF-8 in the result is dropped.
func decodeBody(data string) string {
	data = base64URLToStd.Replace(data)
	if rem := len(data) % 4; rem != 0 {
		data += strings.Repeat("=", 4-rem)
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		log.Printf("Gmail Reader: error decoding base64 body: %v", err)
		return DecodeError
	}
	return strings.ToValidUTF8(string(raw), "")
}

// htmlToText strips tags and entities. Input it cannot handle comes back unchanged.
func htmlToText(content string) string {
	if !utf8.ValidString(content) {
		return content
	}
	text := tagPattern.ReplaceAllString(content, "")
	return strings.TrimSpace(html.UnescapeString(text))
}
