package config

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
	_ "time/tzdata"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// MealsConfig carries the delivery anchors and chef defaults used when
// menus are expanded into orders.
type MealsConfig struct {
	Timezone     string       `mapstructure:"timezone"`
	MidiAnchor   string       `mapstructure:"midiAnchor"`
	SoirAnchor   string       `mapstructure:"soirAnchor"`
	ChefDefaults ChefDefaults `mapstructure:"chefDefaults"`
}

type ChefDefaults struct {
	PrixMidi          int64  `mapstructure:"prixMidi"`
	PrixSoir          int64  `mapstructure:"prixSoir"`
	PrixComplet       int64  `mapstructure:"prixComplet"`
	RayonLivraison    int    `mapstructure:"rayonLivraison"`
	HorairesLivraison string `mapstructure:"horairesLivraison"`
}

func DefaultMealsConfig() MealsConfig {
	return MealsConfig{
		Timezone:   "Africa/Lome",
		MidiAnchor: "12:00",
		SoirAnchor: "19:00",
		ChefDefaults: ChefDefaults{
			PrixMidi:          7500,
			PrixSoir:          7500,
			PrixComplet:       14000,
			RayonLivraison:    10,
			HorairesLivraison: "11h30-13h00 / 18h30-20h00",
		},
	}
}

// Location resolves the configured timezone. Validation guarantees it loads.
func (c MealsConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MidiClock returns the hour and minute of the midday anchor.
func (c MealsConfig) MidiClock() (int, int) {
	h, m, _ := parseClock(c.MidiAnchor)
	return h, m
}

// SoirClock returns the hour and minute of the evening anchor.
func (c MealsConfig) SoirClock() (int, int) {
	h, m, _ := parseClock(c.SoirAnchor)
	return h, m
}

// AtClock places day (interpreted in the configured timezone) at hour:minute.
func (c MealsConfig) AtClock(day time.Time, hour, minute int) time.Time {
	loc := c.Location()
	local := day.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
}

type MealsConfigHolder struct {
	current atomic.Value // holds MealsConfig
}

// NewStaticMealsConfigHolder returns a holder that never reloads.
func NewStaticMealsConfigHolder(cfg MealsConfig) *MealsConfigHolder {
	holder := &MealsConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewMealsConfigHolder(log *zap.Logger) (*MealsConfigHolder, error) {
	log = log.Named("config.meals")
	v := viper.New()

	v.SetConfigName("meals")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/chefetoile")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MEALS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultMealsConfig()
	v.SetDefault("meals.timezone", defaults.Timezone)
	v.SetDefault("meals.midiAnchor", defaults.MidiAnchor)
	v.SetDefault("meals.soirAnchor", defaults.SoirAnchor)
	v.SetDefault("meals.chefDefaults.prixMidi", defaults.ChefDefaults.PrixMidi)
	v.SetDefault("meals.chefDefaults.prixSoir", defaults.ChefDefaults.PrixSoir)
	v.SetDefault("meals.chefDefaults.prixComplet", defaults.ChefDefaults.PrixComplet)
	v.SetDefault("meals.chefDefaults.rayonLivraison", defaults.ChefDefaults.RayonLivraison)
	v.SetDefault("meals.chefDefaults.horairesLivraison", defaults.ChefDefaults.HorairesLivraison)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileLoaded = false
	}

	var cfg MealsConfig
	if err := v.UnmarshalKey("meals", &cfg); err != nil {
		return nil, err
	}
	if err := ValidateMealsConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticMealsConfigHolder(cfg)
	if !fileLoaded {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated MealsConfig
		if err := v.UnmarshalKey("meals", &updated); err != nil {
			log.Warn("reload failed", zap.Error(err))
			return
		}
		if err := ValidateMealsConfig(updated); err != nil {
			log.Warn("invalid config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *MealsConfigHolder) Get() MealsConfig {
	return h.current.Load().(MealsConfig)
}

func ValidateMealsConfig(cfg MealsConfig) error {
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("meals.timezone: %w", err)
	}
	midiH, midiM, err := parseClock(cfg.MidiAnchor)
	if err != nil {
		return fmt.Errorf("meals.midiAnchor: %w", err)
	}
	soirH, soirM, err := parseClock(cfg.SoirAnchor)
	if err != nil {
		return fmt.Errorf("meals.soirAnchor: %w", err)
	}
	if midiH*60+midiM >= soirH*60+soirM {
		return errors.New("meals.midiAnchor must be before meals.soirAnchor")
	}
	if cfg.ChefDefaults.PrixMidi < 0 || cfg.ChefDefaults.PrixSoir < 0 || cfg.ChefDefaults.PrixComplet < 0 {
		return errors.New("meals.chefDefaults prices cannot be negative")
	}
	return nil
}

func parseClock(raw string) (int, int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}
