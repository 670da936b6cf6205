package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/cashcast/cashcast/internal/common"
)

// Settings holds the application-level configuration read from Viper.
// Values come from the config file or CASHCAST_ environment variables, with
// flags bound on top by the command layer.
type Settings struct {
	LedgerPath string
	LogLevel   string
	LogFormat  string
	Currency   string
}

// LoadSettings reads settings from Viper with defaults applied. The ledger
// path is required since every command operates on it.
func LoadSettings() (Settings, error) {
	s := Settings{
		LedgerPath: ExpandPath(viper.GetString("ledger.path")),
		LogLevel:   viper.GetString("logging.level"),
		LogFormat:  viper.GetString("logging.format"),
		Currency:   viper.GetString("ledger.currency"),
	}

	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	if s.LogFormat == "" {
		s.LogFormat = "console"
	}
	if s.Currency == "" {
		s.Currency = "EUR"
	}
	if s.LedgerPath == "" {
		return Settings{}, fmt.Errorf("%w: ledger.path is not set", common.ErrMissingConfig)
	}
	return s, nil
}
