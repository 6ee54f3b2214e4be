package app

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"locationreminders/internal/codec"
	"locationreminders/internal/domain"
	"locationreminders/internal/geo"
	"locationreminders/internal/service"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "output format: json or yaml",
		Value:   "json",
	}
}

func (rt *runtime) commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "add",
			Usage: "Save a reminder (new ID unless --id is given)",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "id", Usage: "replace the reminder with this ID"},
				&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true},
				&cli.StringFlag{Name: "description", Aliases: []string{"d"}},
				&cli.StringFlag{Name: "location", Aliases: []string{"l"}},
				&cli.Float64Flag{Name: "lat", Usage: "latitude in decimal degrees"},
				&cli.Float64Flag{Name: "lng", Usage: "longitude in decimal degrees"},
				&cli.StringFlag{Name: "nmea", Usage: "take coordinates from a GGA or RMC `SENTENCE`"},
			},
			Action: rt.add,
		},
		{
			Name:   "list",
			Usage:  "Print every reminder",
			Flags:  []cli.Flag{formatFlag()},
			Action: rt.list,
		},
		{
			Name:      "get",
			Usage:     "Print one reminder",
			ArgsUsage: "ID",
			Flags:     []cli.Flag{formatFlag()},
			Action:    rt.get,
		},
		{
			Name:      "delete",
			Usage:     "Remove one reminder",
			ArgsUsage: "ID",
			Action:    rt.delete,
		},
		{
			Name:   "clear",
			Usage:  "Remove every reminder",
			Action: rt.clear,
		},
		{
			Name:      "import",
			Usage:     "Load reminders from a JSON or YAML file (\"-\" for stdin)",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "input format (default: from extension)"},
				&cli.BoolFlag{Name: "replace", Usage: "drop existing reminders first"},
			},
			Action: rt.importReminders,
		},
		{
			Name:      "export",
			Usage:     "Write every reminder to a file or stdout",
			ArgsUsage: "[FILE]",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output format (default: from extension, else json)"},
			},
			Action: rt.exportReminders,
		},
		{
			Name:   "config",
			Usage:  "Show the effective configuration",
			Action: rt.showConfig,
		},
	}
}

func (rt *runtime) add(c *cli.Context) error {
	svc, err := rt.service()
	if err != nil {
		return err
	}

	coords := domain.Coordinates{Latitude: c.Float64("lat"), Longitude: c.Float64("lng")}
	if s := c.String("nmea"); s != "" {
		if c.IsSet("lat") || c.IsSet("lng") {
			return fmt.Errorf("--nmea cannot be combined with --lat/--lng")
		}
		if coords, err = geo.ParseNMEA(s); err != nil {
			return err
		}
	}

	var reminder *domain.Reminder
	if id := c.String("id"); id != "" {
		reminder = &domain.Reminder{
			ID:          id,
			Title:       c.String("title"),
			Description: c.String("description"),
			Location:    c.String("location"),
		}
		reminder.SetCoordinates(coords)
		err = svc.Save(c.Context, reminder)
	} else {
		reminder, err = svc.Create(c.Context, service.CreateInput{
			Title:       c.String("title"),
			Description: c.String("description"),
			Location:    c.String("location"),
			Latitude:    coords.Latitude,
			Longitude:   coords.Longitude,
		})
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, reminder.ID)
	return nil
}

func (rt *runtime) list(c *cli.Context) error {
	svc, err := rt.service()
	if err != nil {
		return err
	}
	exporter, err := codec.ForFormat(c.String("format"))
	if err != nil {
		return err
	}

	_, err = svc.Export(c.Context, exporter, c.App.Writer)
	return err
}

func (rt *runtime) get(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("get: missing reminder ID")
	}
	svc, err := rt.service()
	if err != nil {
		return err
	}
	exporter, err := codec.ForFormat(c.String("format"))
	if err != nil {
		return err
	}

	reminder, err := svc.Get(c.Context, id)
	if err != nil {
		return err
	}
	return exporter.Export([]domain.Reminder{*reminder}, c.App.Writer)
}

func (rt *runtime) delete(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("delete: missing reminder ID")
	}
	svc, err := rt.service()
	if err != nil {
		return err
	}
	return svc.Delete(c.Context, id)
}

func (rt *runtime) clear(c *cli.Context) error {
	svc, err := rt.service()
	if err != nil {
		return err
	}

	n, err := svc.Clear(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "deleted %d reminders\n", n)
	return nil
}

func (rt *runtime) importReminders(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("import: missing FILE")
	}

	importer, err := pickCodec(c.String("format"), path, "")
	if err != nil {
		return err
	}

	in := rt.opts.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		in = f
	}

	svc, err := rt.service()
	if err != nil {
		return err
	}

	res, err := svc.Import(c.Context, importer, in, c.Bool("replace"))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "imported %d reminders\n", res.Count)
	return nil
}

func (rt *runtime) exportReminders(c *cli.Context) error {
	path := c.Args().First()
	exporter, err := pickCodec(c.String("format"), path, "json")
	if err != nil {
		return err
	}

	svc, err := rt.service()
	if err != nil {
		return err
	}

	if path == "" || path == "-" {
		_, err = svc.Export(c.Context, exporter, c.App.Writer)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	n, err := svc.Export(c.Context, exporter, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	rt.logger.Info("reminders exported", "path", path, "count", n)
	return nil
}

func (rt *runtime) showConfig(c *cli.Context) error {
	source := rt.cfgPath
	if source == "" {
		source = "defaults"
	}
	fmt.Fprintf(c.App.Writer, "Config: %s\n%s\n", source, rt.cfg.Summary())
	return nil
}

// pickCodec resolves an explicit format, then the path extension, then fallback
func pickCodec(format, path, fallback string) (codec.Codec, error) {
	if format != "" {
		return codec.ForFormat(format)
	}
	if path != "" && path != "-" {
		return codec.ForPath(path)
	}
	if fallback != "" {
		return codec.ForFormat(fallback)
	}
	return nil, fmt.Errorf("--format is required when reading stdin")
}
