package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fbriere/rmahjong/internal/game"
	"github.com/fbriere/rmahjong/internal/game/mahjong"
	"github.com/fbriere/rmahjong/internal/web"
	"github.com/urfave/cli"
)

var handFlags = []cli.Flag{
	cli.StringFlag{Name: "hand", Usage: "concealed tiles, the winning tile last"},
	cli.StringFlag{Name: "melds", Usage: "exposed melds, comma separated, e.g. Chi B1,Pon DR"},
}

var serveCommand = cli.Command{
	Name:   "serve",
	Usage:  "start the http evaluation service",
	Action: serve,
}

var settleCommand = cli.Command{
	Name:  "settle",
	Usage: "score a complete hand",
	Flags: append([]cli.Flag{
		cli.StringFlag{Name: "method", Value: "Ron", Usage: "Ron or Tsumo"},
		cli.StringFlag{Name: "round", Usage: "round wind"},
		cli.StringFlag{Name: "seat", Usage: "seat wind, WE is the dealer"},
		cli.StringFlag{Name: "dora", Usage: "dora tiles"},
		cli.StringFlag{Name: "ura", Usage: "ura dora tiles"},
	}, handFlags...),
	Action: settle,
}

var waitsCommand = cli.Command{
	Name:   "waits",
	Usage:  "list the waiting tiles of a 13 tile hand",
	Flags:  handFlags,
	Action: waits,
}

var botCommand = cli.Command{
	Name:  "bot",
	Usage: "ask a bot to count the han of a hand",
	Flags: append([]cli.Flag{
		cli.StringFlag{Name: "path", Usage: "bot executable, defaults to bots.path"},
	}, handFlags...),
	Action: bot,
}

func serve(c *cli.Context) error {
	web.Startup()
	return nil
}

func parseHand(c *cli.Context) (mahjong.Tiles, []mahjong.Meld, error) {
	tiles, err := mahjong.ParseTiles(c.String("hand"))
	if err != nil {
		return nil, nil, err
	}
	melds, err := mahjong.ParseMelds(c.String("melds"))
	if err != nil {
		return nil, nil, err
	}
	return tiles, melds, nil
}

func parseWind(s string) (mahjong.Tile, error) {
	if s == "" {
		return mahjong.IllegalTile, nil
	}
	return mahjong.ParseTile(s)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func settle(c *cli.Context) error {
	tiles, melds, err := parseHand(c)
	if err != nil {
		return err
	}
	method, err := mahjong.ParseWinMethod(c.String("method"))
	if err != nil {
		return err
	}
	round, err := parseWind(c.String("round"))
	if err != nil {
		return err
	}
	seat, err := parseWind(c.String("seat"))
	if err != nil {
		return err
	}

	var dora mahjong.DoraContext
	if dora.Dora, err = mahjong.ParseTiles(c.String("dora")); err != nil {
		return err
	}
	if dora.UraDora, err = mahjong.ParseTiles(c.String("ura")); err != nil {
		return err
	}

	result, err := mahjong.Settle(tiles, melds, method, dora, round, seat)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func waits(c *cli.Context) error {
	tiles, melds, err := parseHand(c)
	if err != nil {
		return err
	}
	ws, err := mahjong.WaitingTiles(tiles, melds)
	if err != nil {
		return err
	}
	if len(ws) == 0 {
		fmt.Println("noten")
		return nil
	}
	fmt.Println(ws)
	return nil
}

func bot(c *cli.Context) error {
	tiles, melds, err := parseHand(c)
	if err != nil {
		return err
	}

	cfg := game.ConfigFromViper()
	if p := c.String("path"); p != "" {
		cfg.Bot.Path = p
	}
	table := game.NewTable(cfg)
	defer table.Close()

	if err := table.SetHand(0, tiles, melds); err != nil {
		return err
	}
	name, err := table.StartBot(0)
	if err != nil {
		return err
	}
	han, err := table.BotYaku(context.Background(), 0)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d han\n", name, han)
	return nil
}
