package report

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/healthdigest/internal/util"
)

const digestRule = "================"

// Digest collects the errors met while probing, indexed by the host they
// came from, so they can be reported together.
type Digest struct {
	hosts     []string
	errs      map[string][]error
	first     error
	firstHost string
}

// NewDigest returns an empty digest.
func NewDigest() *Digest {
	return &Digest{errs: make(map[string][]error)}
}

// Append records err against host. The first error appended is quoted in
// the subject.
func (d *Digest) Append(host string, err error) {
	if err == nil {
		return
	}
	if d.errs == nil {
		d.errs = make(map[string][]error)
	}
	if d.first == nil {
		d.first, d.firstHost = err, host
	}
	if _, ok := d.errs[host]; !ok {
		d.hosts = append(d.hosts, host)
	}
	d.errs[host] = append(d.errs[host], err)
}

// Len is the total number of errors recorded.
func (d *Digest) Len() int {
	n := 0
	for _, errs := range d.errs {
		n += len(errs)
	}
	return n
}

// Hosts returns the failing hosts in order of their first error.
func (d *Digest) Hosts() []string {
	return append([]string(nil), d.hosts...)
}

// Subject summarises the digest, for example
// "3 errors on 2 (failing) nodes, first at 10.0.0.9: connection refused".
func (d *Digest) Subject(unit string) string {
	if d.first == nil {
		return fmt.Sprintf("0 errors on 0 (failing) %ss", unit)
	}
	n, h := d.Len(), len(d.hosts)
	return fmt.Sprintf("%d error%s on %d (failing) %s%s, first at %s: %v",
		n, util.Suffix(n, "s"), h, unit, util.Suffix(h, "s"), d.firstHost, d.first)
}

// Body lists each host's errors between rules.
func (d *Digest) Body() string {
	var b strings.Builder
	for _, host := range d.hosts {
		fmt.Fprintf(&b, "%s\n%s\n", digestRule, host)
		for _, err := range d.errs[host] {
			fmt.Fprintf(&b, "%v\n\n", err)
		}
		fmt.Fprintf(&b, "%s\n\n", digestRule)
	}
	return b.String()
}

// Notification wraps the digest as a plain-text message.
func (d *Digest) Notification(to, unit string) *Notification {
	return &Notification{
		To:          to,
		Subject:     d.Subject(unit),
		ContentType: ContentPlain,
		Body:        d.Body(),
	}
}
