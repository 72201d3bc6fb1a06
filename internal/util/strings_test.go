package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinOrNone(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{name: "nil slice returns (none)", items: nil, want: "(none)"},
		{name: "empty slice returns (none)", items: []string{}, want: "(none)"},
		{name: "single item returns item", items: []string{"node"}, want: "node"},
		{name: "multiple items joined with comma", items: []string{"node", "miner"}, want: "node, miner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinOrNone(tt.items))
		})
	}
}

func TestCount(t *testing.T) {
	assert.Equal(t, "0 records", Count(0, "record", "records"))
	assert.Equal(t, "1 record", Count(1, "record", "records"))
	assert.Equal(t, "12 statuses", Count(12, "status", "statuses"))
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "hosts"},
		{1, "host"},
		{2, "hosts"},
		{-1, "hosts"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Pluralize(tt.count, "host", "hosts"))
	}
}

func TestSuffix(t *testing.T) {
	tests := []struct {
		count int
		ext   string
		want  string
	}{
		{4, "s", "s"},
		{1, "s", ""},
		{4, "es", "es"},
		{1, "es", ""},
		{0, "es", "es"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Suffix(tt.count, tt.ext))
	}
}
