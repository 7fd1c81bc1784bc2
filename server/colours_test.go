package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColouredMethod(t *testing.T) {
	tests := []struct {
		method string
		colour string
	}{
		{method: "GET", colour: Green},
		{method: "POST", colour: Blue},
		{method: "", colour: Gray},
		{method: "DELETE", colour: Gray},
	}

	for _, tt := range tests {
		got := colouredMethod(tt.method)
		assert.Equal(t, tt.colour+" "+padMethod(tt.method)+ResetColor, got, tt.method)
	}
}

func padMethod(method string) string {
	for len(method) < 7 {
		method += " "
	}
	return method
}
