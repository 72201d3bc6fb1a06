package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/healthdigest/internal/checks"
	"github.com/rileyhilliard/healthdigest/internal/logger"
	"github.com/rileyhilliard/healthdigest/internal/summary"
)

func nodeResult(tm, addr, ping string) checks.Result {
	return checks.NodeResult{
		Time: tm, Addr: addr,
		Ping: checks.Str(ping), PingMax: checks.Str(ping),
		HTTPCode: checks.Str("200"), DiskAvail: checks.Str("124G"),
	}
}

func nodeKind(t *testing.T) checks.Kind {
	t.Helper()
	k, err := checks.Lookup(checks.UnitNode)
	require.NoError(t, err)
	return k
}

func TestStatusSubject(t *testing.T) {
	tests := []struct {
		n           int
		unit        string
		description string
		want        string
	}{
		{3, "ewok", "", "3 ewok statuses"},
		{1, "node", "", "1 node status"},
		{0, "node", "", "0 node statuses"},
		{4, "miner", " for 2401", "4 miner statuses for 2401"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusSubject(tt.n, tt.unit, tt.description))
		})
	}
}

func TestGroupByHost(t *testing.T) {
	results := []checks.Result{
		nodeResult("01 00:00:00", "10.0.0.2", "5"),
		nodeResult("01 00:00:00", "10.0.0.1", "7"),
		nodeResult("01 00:05:00", "10.0.0.2", "6"),
		nodeResult("01 00:05:00", "10.0.0.1", "8"),
		nodeResult("01 00:10:00", "10.0.0.2", "9"),
	}

	hosts, groups := GroupByHost(results)
	assert.Equal(t, []string{" 10.  0.  0.  2", " 10.  0.  0.  1"}, hosts)
	assert.Equal(t, []summary.Row{results[0], results[2], results[4]}, groups[hosts[0]])
	assert.Equal(t, []summary.Row{results[1], results[3]}, groups[hosts[1]])
}

func TestCompose(t *testing.T) {
	kind := nodeKind(t)
	results := []checks.Result{
		nodeResult("01 00:00:00", "10.0.0.2", "5"),
		nodeResult("01 00:00:00", "10.0.0.1", "7"),
		nodeResult("01 00:05:00", "10.0.0.2", "6"),
	}

	log := logger.NewBufferLogger()
	c := &Composer{Recipient: "ops@example.com", RowSplits: 2, Logger: log}

	n, err := c.Compose(kind, results, " for 2401")
	require.NoError(t, err)

	first, err := summary.RenderHTML(kind.Header(), []summary.Row{results[0], results[2]}, summary.WithRowSplits(2))
	require.NoError(t, err)
	second, err := summary.RenderHTML(kind.Header(), []summary.Row{results[1]}, summary.WithRowSplits(2))
	require.NoError(t, err)

	assert.Equal(t, "ops@example.com", n.To)
	assert.Equal(t, "3 node statuses for 2401", n.Subject)
	assert.Equal(t, ContentHTML, n.ContentType)
	assert.Equal(t, first+"\n<hr/>\n"+second, n.Body)
	assert.Contains(t, n.Body, "<li><em>ipv4</em>:  10.  0.  0.  2</li>")
	assert.True(t, log.HasLevel("debug"))
}

func TestCompose_SingleHost(t *testing.T) {
	results := []checks.Result{nodeResult("01 00:00:00", "10.0.0.2", "5")}

	n, err := NewComposer("a@b.c").Compose(nodeKind(t), results, "")
	require.NoError(t, err)
	assert.Equal(t, "1 node status", n.Subject)
	assert.NotContains(t, n.Body, HostSeparator)
}

func TestCompose_NoResults(t *testing.T) {
	log := logger.NewBufferLogger()
	c := &Composer{Logger: log}

	n, err := c.Compose(nodeKind(t), nil, "")
	require.NoError(t, err)
	assert.Equal(t, "0 node statuses", n.Subject)
	assert.Empty(t, n.Body)
	assert.True(t, log.HasLevel("warn"))
}

func TestCompose_RenderFailure(t *testing.T) {
	c := &Composer{RowSplits: -1}

	_, err := c.Compose(nodeKind(t), []checks.Result{nodeResult("01 00:00:00", "10.0.0.2", "5")}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, summary.ErrRowSplits)
	assert.Contains(t, err.Error(), "10.  0.  0.  2")
}

func TestNotification_WriteTo(t *testing.T) {
	n := &Notification{
		To:          "ops@example.com",
		Subject:     "2 node statuses",
		ContentType: ContentHTML,
		Body:        "<table>\n</table>",
	}

	var buf bytes.Buffer
	written, err := n.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), written)
	assert.Equal(t, "To: ops@example.com\r\n"+
		"Subject: 2 node statuses\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=utf-8\r\n"+
		"Content-Transfer-Encoding: 8bit\r\n"+
		"\r\n"+
		"<table>\n</table>\n", buf.String())
}

func TestNotification_WriteTo_EncodesSubject(t *testing.T) {
	n := &Notification{Subject: "g_tmp(°C) rising", Body: "x\n"}

	var buf bytes.Buffer
	_, err := n.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "To:")
	assert.Contains(t, out, "Subject: =?utf-8?q?")
	assert.Contains(t, out, "Content-Type: text/html; charset=utf-8")
	assert.True(t, strings.HasSuffix(out, "\r\n\r\nx\n"))
}

func TestDigest(t *testing.T) {
	d := NewDigest()
	assert.Zero(t, d.Len())

	d.Append("10.0.0.9", errors.New("connection refused"))
	d.Append("10.0.0.3", errors.New("free: no Mem: line in free output"))
	d.Append("10.0.0.9", errors.New("no credentials were accepted"))
	d.Append("10.0.0.3", nil)

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []string{"10.0.0.9", "10.0.0.3"}, d.Hosts())
	assert.Equal(t, "3 errors on 2 (failing) nodes, first at 10.0.0.9: connection refused", d.Subject("node"))
	assert.Equal(t, `================
10.0.0.9
connection refused

no credentials were accepted

================

================
10.0.0.3
free: no Mem: line in free output

================

`, d.Body())
}

func TestDigest_Singular(t *testing.T) {
	var d Digest
	d.Append("10.0.0.9", errors.New("timeout"))

	assert.Equal(t, "1 error on 1 (failing) miner, first at 10.0.0.9: timeout", d.Subject("miner"))

	n := d.Notification("ops@example.com", "miner")
	assert.Equal(t, ContentPlain, n.ContentType)
	assert.Equal(t, "ops@example.com", n.To)
	assert.Equal(t, d.Body(), n.Body)
}

func TestDigest_Empty(t *testing.T) {
	d := NewDigest()
	assert.Empty(t, d.Hosts())
	assert.Empty(t, d.Body())
	assert.Equal(t, "0 errors on 0 (failing) nodes", d.Subject("node"))
}
