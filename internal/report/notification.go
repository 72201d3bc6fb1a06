// Package report turns check records into notifications: an HTML status
// summary per host, and a plain-text digest of the errors met while
// probing.
package report

import (
	"fmt"
	"io"
	"mime"
	"strings"
)

// Content types a Notification can carry.
const (
	ContentHTML  = "text/html"
	ContentPlain = "text/plain"
)

// Notification is a composed message ready to hand to a mail transport.
type Notification struct {
	To          string
	Subject     string
	ContentType string
	Body        string
}

// WriteTo writes the notification as a minimal MIME message.
func (n *Notification) WriteTo(w io.Writer) (int64, error) {
	contentType := n.ContentType
	if contentType == "" {
		contentType = ContentHTML
	}

	var b strings.Builder
	if n.To != "" {
		fmt.Fprintf(&b, "To: %s\r\n", n.To)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", n.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s; charset=utf-8\r\n", contentType)
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(n.Body)
	if !strings.HasSuffix(n.Body, "\n") {
		b.WriteString("\n")
	}

	written, err := io.WriteString(w, b.String())
	return int64(written), err
}
