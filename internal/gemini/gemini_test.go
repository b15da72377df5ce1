package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterOutput_DropsNoiseLines(t *testing.T) {
	raw := "first\n[IDEClient] connecting...\nsecond\nsome IDEClient chatter\nthird"
	got := FilterOutput(raw)
	assert.Equal(t, "first\nsecond\nthird", got)
}

func TestFilterOutput_NoNoise(t *testing.T) {
	raw := "{\"date\":\"2024-03-01\"}"
	assert.Equal(t, raw, FilterOutput(raw))
}

func TestFilterOutput_Empty(t *testing.T) {
	assert.Equal(t, "", FilterOutput(""))
}
