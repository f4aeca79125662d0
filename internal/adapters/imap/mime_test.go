package imap

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestExtractPlainTextSimpleMessage(t *testing.T) {
	raw := "From: jane@x.com\r\n" +
		"Subject: Hello\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"I will pay on Friday.\r\n"

	text := extractPlainText(strings.NewReader(raw), zap.NewNop())
	if !strings.Contains(text, "I will pay on Friday.") {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractPlainTextNoContentType(t *testing.T) {
	raw := "From: jane@x.com\r\n" +
		"\r\n" +
		"Plain body without a content type.\r\n"

	text := extractPlainText(strings.NewReader(raw), zap.NewNop())
	if !strings.Contains(text, "Plain body without a content type.") {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractPlainTextMultipartAlternative(t *testing.T) {
	raw := "From: jane@x.com\r\n" +
		"Content-Type: multipart/alternative; boundary=SPLIT\r\n" +
		"\r\n" +
		"--SPLIT\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<p>I already paid.</p>\r\n" +
		"--SPLIT\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"I already paid.\r\n" +
		"--SPLIT--\r\n"

	text := extractPlainText(strings.NewReader(raw), zap.NewNop())
	if strings.TrimSpace(text) != "I already paid." {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractPlainTextSkipsAttachments(t *testing.T) {
	raw := "From: jane@x.com\r\n" +
		"Content-Type: multipart/mixed; boundary=SPLIT\r\n" +
		"\r\n" +
		"--SPLIT\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"Content-Disposition: attachment; filename=\"receipt.txt\"\r\n" +
		"\r\n" +
		"ATTACHED RECEIPT\r\n" +
		"--SPLIT\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"Proof of payment attached.\r\n" +
		"--SPLIT--\r\n"

	text := extractPlainText(strings.NewReader(raw), zap.NewNop())
	if strings.Contains(text, "ATTACHED RECEIPT") {
		t.Fatalf("attachment leaked into body: %q", text)
	}
	if !strings.Contains(text, "Proof of payment attached.") {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractPlainTextQuotedPrintable(t *testing.T) {
	raw := "From: jane@x.com\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		"Invoice =E2=82=AC100 settled.\r\n"

	text := extractPlainText(strings.NewReader(raw), zap.NewNop())
	if !strings.Contains(text, "Invoice €100 settled.") {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractPlainTextBase64(t *testing.T) {
	raw := "From: jane@x.com\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"Content-Transfer-Encoding: base64\r\n" +
		"\r\n" +
		"UGF5bWVudCBzZW50Lg==\r\n"

	text := extractPlainText(strings.NewReader(raw), zap.NewNop())
	if !strings.Contains(text, "Payment sent.") {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractPlainTextHTMLOnly(t *testing.T) {
	raw := "From: jane@x.com\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<p>No plain text here.</p>\r\n"

	if text := extractPlainText(strings.NewReader(raw), zap.NewNop()); strings.TrimSpace(text) != "" {
		t.Fatalf("expected empty result for html-only message, got %q", text)
	}
}

func TestExtractPlainTextGarbage(t *testing.T) {
	if text := extractPlainText(strings.NewReader("not a message"), zap.NewNop()); text != "" {
		t.Fatalf("expected empty result, got %q", text)
	}
}
