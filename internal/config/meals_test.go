package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMealsConfigIsValid(t *testing.T) {
	cfg := DefaultMealsConfig()
	require.NoError(t, ValidateMealsConfig(cfg))

	h, m := cfg.MidiClock()
	assert.Equal(t, 12, h)
	assert.Equal(t, 0, m)
	h, m = cfg.SoirClock()
	assert.Equal(t, 19, h)
	assert.Equal(t, 0, m)
}

func TestValidateMealsConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*MealsConfig)
	}{
		{"bad timezone", func(c *MealsConfig) { c.Timezone = "Mars/Olympus" }},
		{"bad midi", func(c *MealsConfig) { c.MidiAnchor = "noon" }},
		{"bad soir", func(c *MealsConfig) { c.SoirAnchor = "25:00" }},
		{"midi after soir", func(c *MealsConfig) { c.MidiAnchor = "20:00" }},
		{"negative price", func(c *MealsConfig) { c.ChefDefaults.PrixMidi = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMealsConfig()
			tc.mutate(&cfg)
			assert.Error(t, ValidateMealsConfig(cfg))
		})
	}
}

func TestAtClockUsesConfiguredTimezone(t *testing.T) {
	cfg := DefaultMealsConfig()
	cfg.Timezone = "Europe/Paris"

	day := time.Date(2024, 3, 4, 23, 30, 0, 0, time.UTC) // already March 5th in Paris
	got := cfg.AtClock(day, 12, 0)

	assert.Equal(t, 5, got.Day())
	assert.Equal(t, 12, got.Hour())
	assert.Equal(t, "Europe/Paris", got.Location().String())
}

func TestStaticHolder(t *testing.T) {
	holder := NewStaticMealsConfigHolder(DefaultMealsConfig())
	assert.Equal(t, "12:00", holder.Get().MidiAnchor)
}
