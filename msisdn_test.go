package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanMSISDNs(t *testing.T) {
	in := []string{"082 123 4567", "+27 82 123 4567", "123", "(083) 555-0000"}
	got := cleanMSISDNs(in, []string{"ZA"})
	assert.Equal(t, []string{"27821234567", "27835550000"}, got)
}

func TestCleanMSISDNsFallsThroughCountries(t *testing.T) {
	got := cleanMSISDNs([]string{"+375 29 123-45-67"}, []string{"ZA", "BY"})
	assert.Equal(t, []string{"375291234567"}, got)
}

func TestCleanMSISDNsWithoutCountries(t *testing.T) {
	got := cleanMSISDNs([]string{"+1 (555) 123-4567", "15551234567", "abc"}, nil)
	assert.Equal(t, []string{"15551234567"}, got)
}

func TestRemoveDuplicatesKeepsOrder(t *testing.T) {
	assert.Equal(t, []string{"3", "1", "2"}, removeDuplicates([]string{"3", "1", "3", "2", "1"}))
}
