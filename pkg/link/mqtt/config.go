package mqtt

import (
	"flag"
	"fmt"
	"os"

	"github.com/denisbrodbeck/machineid"
)

// Config provides common options to set up the MQTT link.
type Config struct {
	// BrokerURL specifies the broker, e.g. mqtt://host:port/prefix.
	BrokerURL string
}

var defaultConfig = Config{
	BrokerURL: "mqtt://localhost:1883/softuart/",
}

func init() {
	if val := os.Getenv("SOFTUART_BROKER_URL"); val != "" {
		defaultConfig.BrokerURL = val
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.BrokerURL, "broker", defaultConfig.BrokerURL, "MQTT broker URL.")
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewQueue creates a Queue using the current config.
func (c *Config) NewQueue() (*Queue, error) {
	return NewQueueFromURL(c.BrokerURL)
}

// DefaultClientID derives a stable client id from the machine
// identity, so reconnects replace the previous session instead of
// ghosting it.
func DefaultClientID() string {
	id, err := machineid.ID()
	if err != nil || len(id) < 8 {
		return fmt.Sprintf("softuart-%d", os.Getpid())
	}
	return "softuart-" + id[:8]
}
