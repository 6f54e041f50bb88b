package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fbriere/rmahjong/internal/hooks"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()

	// base application info
	app.Name = "rmahjong"
	app.Author = "rmahjong authors"
	app.Version = "0.1.0"
	app.Usage = "riichi mahjong hand evaluation and scoring"

	// flags
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "./configs/config.toml",
			Usage: "load configuration from `FILE`",
		},
	}

	app.Before = setup
	app.Action = serve
	app.Commands = []cli.Command{
		serveCommand,
		settleCommand,
		waitsCommand,
		botCommand,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// setup loads the configuration and the log output before any command.
func setup(c *cli.Context) error {
	viper.SetConfigType("toml")
	viper.SetConfigFile(c.String("config"))
	if err := viper.ReadInConfig(); err != nil {
		// every key has a default, a missing file is not fatal
		log.Warnf("read config %s: %v", c.String("config"), err)
	}

	log.SetFormatter(&log.TextFormatter{DisableColors: true})
	if viper.GetBool("core.debug") {
		log.SetLevel(log.DebugLevel)
	}
	log.AddHook(hooks.NewHook())

	if dir := viper.GetString("core.log_dir"); dir != "" {
		w, err := logWriter(dir)
		if err != nil {
			return err
		}
		log.SetOutput(io.MultiWriter(os.Stderr, w))
	}
	return nil
}

// logWriter rotates the log file daily and keeps a week of it.
func logWriter(dir string) (io.Writer, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, errors.Wrapf(err, "log dir %s", dir)
	}
	pattern := filepath.Join(dir, filepath.Base(os.Args[0])+"-%Y%m%d.log")
	w, err := rotatelogs.New(
		pattern,
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "rotate logs %s", pattern)
	}
	return w, nil
}
