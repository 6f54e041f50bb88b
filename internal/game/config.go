package game

import (
	"github.com/fbriere/rmahjong/internal/botengine"
	"github.com/spf13/viper"
)

const defaultStartScore = 25000

var defaultBotNames = []string{"Panda", "StormMaster", "Yogi"}

// Config of one table.
type Config struct {
	StartScore int
	BotNames   []string // handed out in order, never reused
	Bot        botengine.Config
}

// ConfigFromViper reads the table and bots sections.
func ConfigFromViper() Config {
	cfg := Config{
		StartScore: viper.GetInt("table.start_score"),
		BotNames:   viper.GetStringSlice("bots.names"),
		Bot: botengine.Config{
			Path:    viper.GetString("bots.path"),
			Args:    viper.GetStringSlice("bots.args"),
			Timeout: viper.GetDuration("bots.timeout"),
		},
	}
	return cfg.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.StartScore <= 0 {
		c.StartScore = defaultStartScore
	}
	if len(c.BotNames) == 0 {
		c.BotNames = append([]string(nil), defaultBotNames...)
	}
	return c
}
