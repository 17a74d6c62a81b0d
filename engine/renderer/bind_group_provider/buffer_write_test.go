package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferWriteFits(t *testing.T) {
	tests := []struct {
		name   string
		offset uint64
		data   int
		size   uint64
		want   bool
	}{
		{name: "whole buffer", data: 80, size: 80, want: true},
		{name: "tail write", offset: 16, data: 64, size: 80, want: true},
		{name: "empty write at end", offset: 80, size: 80, want: true},
		{name: "overflows", offset: 16, data: 80, size: 80},
		{name: "offset past end", offset: 84, size: 80},
		{name: "unaligned offset", offset: 2, data: 4, size: 80},
		{name: "unaligned length", data: 6, size: 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := BufferWrite{Offset: tt.offset, Data: make([]byte, tt.data)}
			assert.Equal(t, tt.want, w.Fits(tt.size))
		})
	}
}
