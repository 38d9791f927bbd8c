package config

import (
	"strconv"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestConfigRoundTripProperty: deserialize(serialize(config)) == config
func TestConfigRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("config round-trip preserves data", prop.ForAll(
		func(port int, readSec int, trace bool, maxLen int, level int) bool {
			cfg := DefaultConfig()
			cfg.Server.Address = ":" + strconv.Itoa(port)
			cfg.Server.ReadTimeout = time.Duration(readSec) * time.Second
			cfg.Calculator.Trace = trace
			cfg.Calculator.MaxInputLength = maxLen
			cfg.Logging.Level = []string{"debug", "info", "warn", "error"}[level]

			data, err := cfg.Serialize()
			if err != nil {
				return false
			}
			parsed, err := ParseConfig(data)
			if err != nil {
				return false
			}
			return *parsed == *cfg
		},
		gen.IntRange(1, 65535),
		gen.IntRange(0, 3600),
		gen.Bool(),
		gen.IntRange(0, 1<<16),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}
