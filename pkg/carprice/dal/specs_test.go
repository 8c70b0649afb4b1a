package dal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"maruti", "Maruti"},
		{"  MARUTI  ", "Maruti"},
		{"land rover", "Land Rover"},
		{"mercedes-benz", "Mercedes-Benz"},
		{"kwid 1.0", "Kwid 1.0"},
		{"o'neil", "O'neil"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestSpecsTableApostropheLookup(t *testing.T) {
	table := NewSpecsTable()
	table.Set("o'neil", "d'arc", Specs{EngineCC: 1000, MaxPowerBHP: 60, Seats: 4, BrandScore: 1})

	got, ok := table.Lookup("O'NEIL", "D'Arc")
	require.True(t, ok)
	assert.Equal(t, 1000, got.EngineCC)
	assert.Equal(t, []string{"O'neil"}, table.Brands())
}
