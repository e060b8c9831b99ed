package gmail

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"
)

func encodeBody(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func part(mimeType, data string) *gmail.MessagePart {
	p := &gmail.MessagePart{MimeType: mimeType}
	if data != "" {
		p.Body = &gmail.MessagePartBody{Data: data}
	}
	return p
}

func TestExtractBodySinglePartRoundTrip(t *testing.T) {
	texts := []string{
		"hello",
		"line one\r\nline two\n",
		"unicode: héllo wörld ✓",
		"needs padding??>>",
		"",
	}
	for _, text := range texts {
		if text == "" {
			assert.Equal(t, NoReadableContent, ExtractBody(part(mimeTextPlain, "")))
			continue
		}
		assert.Equal(t, text, ExtractBody(part(mimeTextPlain, encodeBody(text))))
		unpadded := base64.RawURLEncoding.EncodeToString([]byte(text))
		assert.Equal(t, text, ExtractBody(part(mimeTextPlain, unpadded)), "unpadded %q", text)
	}
}

func TestExtractBodyPrefersPlainText(t *testing.T) {
	plain := part(mimeTextPlain, encodeBody("plain version"))
	htmlPart := part(mimeTextHTML, encodeBody("<p>html version</p>"))

	tests := []struct {
		name  string
		parts []*gmail.MessagePart
	}{
		{"plain first", []*gmail.MessagePart{plain, htmlPart}},
		{"html first", []*gmail.MessagePart{htmlPart, plain}},
		{"html first with filler", []*gmail.MessagePart{part("image/png", encodeBody("png")), htmlPart, plain}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := &gmail.MessagePart{MimeType: "multipart/alternative", Parts: tt.parts}
			assert.Equal(t, "plain version", ExtractBody(payload))
		})
	}
}

func TestExtractBodyFirstMatchWithinTier(t *testing.T) {
	payload := &gmail.MessagePart{Parts: []*gmail.MessagePart{
		part(mimeTextPlain, ""),
		part(mimeTextHTML, encodeBody("<b>first</b>")),
		part(mimeTextHTML, encodeBody("<b>second</b>")),
	}}
	assert.Equal(t, "first", ExtractBody(payload))

	payload = &gmail.MessagePart{Parts: []*gmail.MessagePart{
		part(mimeTextPlain, encodeBody("one")),
		part(mimeTextPlain, encodeBody("two")),
	}}
	assert.Equal(t, "one", ExtractBody(payload))
}

func TestExtractBodyNoReadableContent(t *testing.T) {
	payload := &gmail.MessagePart{MimeType: "multipart/mixed", Parts: []*gmail.MessagePart{
		part("application/pdf", ""),
		part("image/jpeg", ""),
		part(mimeTextPlain, ""),
		nil,
	}}
	assert.Equal(t, "No readable content found", ExtractBody(payload))
}

func TestExtractBodyIgnoresRootDataWhenPartsExist(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: mimeTextPlain,
		Body:     &gmail.MessagePartBody{Data: encodeBody("root data")},
		Parts:    []*gmail.MessagePart{part("application/pdf", encodeBody("%PDF"))},
	}
	assert.Equal(t, NoReadableContent, ExtractBody(payload))
}

func TestExtractBodyDoesNotDescendIntoNestedParts(t *testing.T) {
	nested := &gmail.MessagePart{MimeType: "multipart/alternative", Parts: []*gmail.MessagePart{
		part(mimeTextPlain, encodeBody("deep text")),
	}}
	payload := &gmail.MessagePart{MimeType: "multipart/mixed", Parts: []*gmail.MessagePart{
		nested,
		part("application/pdf", encodeBody("%PDF")),
	}}
	assert.Equal(t, NoReadableContent, ExtractBody(payload))
}

func TestExtractBodySinglePartHTML(t *testing.T) {
	payload := part(mimeTextHTML, encodeBody("  <div>Hello <i>there</i> &lt;friend&gt;</div>\n"))
	assert.Equal(t, "Hello there <friend>", ExtractBody(payload))
}

func TestExtractBodyEmptyPartsListCountsAsMultipart(t *testing.T) {
	var withEmptyParts gmail.MessagePart
	require.NoError(t, json.Unmarshal([]byte(`{"mimeType":"text/plain","body":{"data":"aGVsbG8"},"parts":[]}`), &withEmptyParts))
	require.NotNil(t, withEmptyParts.Parts)
	assert.Equal(t, NoReadableContent, ExtractBody(&withEmptyParts))

	var withoutParts gmail.MessagePart
	require.NoError(t, json.Unmarshal([]byte(`{"mimeType":"text/plain","body":{"data":"aGVsbG8"}}`), &withoutParts))
	require.Nil(t, withoutParts.Parts)
	assert.Equal(t, "hello", ExtractBody(&withoutParts))
}

func TestExtractBodyNilPayload(t *testing.T) {
	assert.Equal(t, "Error extracting email body", ExtractBody(nil))
}

func TestDecodeBody(t *testing.T) {
	assert.Equal(t, "subjects?>", decodeBody(base64.RawURLEncoding.EncodeToString([]byte("subjects?>"))))
	assert.Equal(t, "Error decoding content", decodeBody("a"))
	assert.Equal(t, "Error decoding content", decodeBody("!!!!"))

	invalid := base64.StdEncoding.EncodeToString([]byte("ok\xff\xfeok"))
	assert.Equal(t, "okok", decodeBody(invalid))
}

func TestHTMLToText(t *testing.T) {
	assert.Equal(t, "Hi&bye", htmlToText("<p>Hi&amp;<b>bye</b></p>"))
	assert.Equal(t, "a < b", htmlToText("a &lt; b"))
	assert.Equal(t, "script text", htmlToText("<script>script text</script>"))
	assert.Equal(t, "", htmlToText("   <br/>  "))

	broken := "<p>\xff</p>"
	assert.Equal(t, broken, htmlToText(broken))
}
