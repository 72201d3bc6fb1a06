package report

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/healthdigest/internal/checks"
	"github.com/rileyhilliard/healthdigest/internal/logger"
	"github.com/rileyhilliard/healthdigest/internal/summary"
	"github.com/rileyhilliard/healthdigest/internal/util"
)

// HostSeparator sits between the per-host tables of a status summary.
const HostSeparator = "\n<hr/>\n"

// Composer builds status notifications. Its fields replace what would
// otherwise be process-wide settings.
type Composer struct {
	Recipient string
	RowSplits int
	Logger    logger.Logger
}

// NewComposer returns a Composer with one <tr> chunk per row and a no-op
// logger.
func NewComposer(recipient string) *Composer {
	return &Composer{
		Recipient: recipient,
		RowSplits: 1,
		Logger:    logger.Noop(),
	}
}

// Compose groups results by host address, in order of first appearance,
// renders one summary table per host and joins them. The subject counts
// the results: "3 node statuses for 2401".
func (c *Composer) Compose(kind checks.Kind, results []checks.Result, description string) (*Notification, error) {
	log := c.Logger
	if log == nil {
		log = logger.Noop()
	}
	splits := c.RowSplits
	if splits == 0 {
		splits = 1
	}

	hosts, groups := GroupByHost(results)
	log.Debug("grouped %s into %s",
		util.Count(len(results), kind.Name+" result", kind.Name+" results"),
		util.Count(len(hosts), "host", "hosts"))
	if len(results) == 0 {
		log.Warn("no %s results to report", kind.Name)
	}

	sections := make([]string, 0, len(hosts))
	for _, host := range hosts {
		html, err := summary.RenderHTML(kind.Header(), groups[host], summary.WithRowSplits(splits))
		if err != nil {
			return nil, fmt.Errorf("host %s: %w", strings.TrimSpace(host), err)
		}
		sections = append(sections, html)
	}

	return &Notification{
		To:          c.Recipient,
		Subject:     StatusSubject(len(results), kind.Name, description),
		ContentType: ContentHTML,
		Body:        strings.Join(sections, HostSeparator),
	}, nil
}

// StatusSubject is "<n> <unit> status" with "es" unless n is 1, followed by
// the description verbatim.
func StatusSubject(n int, unit, description string) string {
	return fmt.Sprintf("%d %s status%s%s", n, unit, util.Suffix(n, "es"), description)
}

// GroupByHost splits results by their address cell. Hosts are returned in
// order of first appearance and each group keeps its input order.
func GroupByHost(results []checks.Result) ([]string, map[string][]summary.Row) {
	var hosts []string
	groups := make(map[string][]summary.Row)
	for _, r := range results {
		host := r.IPv4()
		if _, ok := groups[host]; !ok {
			hosts = append(hosts, host)
		}
		groups[host] = append(groups[host], r)
	}
	return hosts, groups
}
