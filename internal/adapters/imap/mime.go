package imap

import (
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// extractPlainText parses a raw RFC 822 message and returns its first
// text/plain payload, decoded from its transfer encoding and charset.
// Returns an empty string when no plain-text part exists.
func extractPlainText(raw io.Reader, logger *zap.Logger) string {
	msg, err := mail.ReadMessage(raw)
	if err != nil {
		logger.Debug("Failed to parse message", zap.Error(err))
		return ""
	}
	return textFromEntity(textproto.MIMEHeader(msg.Header), msg.Body, logger)
}

// textFromEntity walks one MIME entity, recursing into multipart bodies,
// and returns the first text/plain leaf that is not an attachment.
func textFromEntity(header textproto.MIMEHeader, body io.Reader, logger *zap.Logger) string {
	contentType := header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/plain"
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Unparseable Content-Type, treat the body as plain text
		mediaType = "text/plain"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary, ok := params["boundary"]
		if !ok {
			return ""
		}
		mr := multipart.NewReader(body, boundary)
		for {
			part, err := mr.NextPart()
			if err != nil {
				return ""
			}
			if isAttachment(part.Header) {
				continue
			}
			if text := textFromEntity(part.Header, part, logger); strings.TrimSpace(text) != "" {
				return text
			}
		}
	}

	if mediaType != "text/plain" {
		return ""
	}

	decoded := decodeTransferEncoding(body, header.Get("Content-Transfer-Encoding"))
	decoded = decodeCharset(decoded, params["charset"], logger)

	text, err := io.ReadAll(decoded)
	if err != nil {
		logger.Debug("Failed to read message part", zap.Error(err))
		return ""
	}
	return string(text)
}

func isAttachment(header textproto.MIMEHeader) bool {
	return strings.Contains(strings.ToLower(header.Get("Content-Disposition")), "attachment")
}

func decodeTransferEncoding(body io.Reader, encoding string) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, body)
	case "quoted-printable":
		return quotedprintable.NewReader(body)
	default:
		return body
	}
}

func decodeCharset(body io.Reader, charset string, logger *zap.Logger) io.Reader {
	charset = strings.ToLower(strings.TrimSpace(charset))
	if charset == "" || charset == "utf-8" || charset == "us-ascii" {
		return body
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		logger.Debug("Unknown charset, reading as-is", zap.String("charset", charset))
		return body
	}
	return transform.NewReader(body, enc.NewDecoder())
}
