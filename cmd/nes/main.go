package main

import (
	"fmt"
	"log"
	"os"

	cli "gopkg.in/urfave/cli.v2"

	"github.com/n-ulricksen/nes-emulator/driver"
)

func main() {
	app := &cli.App{
		Name:  "nes",
		Usage: "run an iNES (mapper 0) ROM",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "enable the debug panel"},
			&cli.BoolFlag{Name: "log", Aliases: []string{"l"}, Usage: "enable instruction logging to ./logs"},
			&cli.StringFlag{Name: "save", Aliases: []string{"s"}, Usage: "save-state path to load from and save to on exit"},
			&cli.Float64Flag{Name: "fps", Value: 60.0, Usage: "target presentation frame rate"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return fmt.Errorf("usage: nes [options] <rom-path>")
	}

	d, err := driver.New(driver.Config{
		RomPath:       c.Args().Get(0),
		Debug:         c.Bool("debug"),
		Logging:       c.Bool("log"),
		SaveStatePath: c.String("save"),
		FPS:           c.Float64("fps"),
	})
	if err != nil {
		return err
	}

	d.Run()
	return nil
}
