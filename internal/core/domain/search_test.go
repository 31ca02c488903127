package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero uses default", 0, DefaultSearchLimit},
		{"negative uses default", -3, DefaultSearchLimit},
		{"one", 1, 1},
		{"within range", 7, 7},
		{"at maximum", MaxSearchLimit, MaxSearchLimit},
		{"above maximum is capped", 100, MaxSearchLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampLimit(tt.limit))
		})
	}
}
