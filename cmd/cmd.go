// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// globalFlags are read by [Runner.Configure] before any command runs.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "OMDb API key, overrides api.key",
			Sources: cli.EnvVars("OMDB_API_KEY"),
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
}

// setupCommand creates the config file and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml, initialize database and run migrations",
		Action: r.Setup,
	}
}

// searchCommand searches by title
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"s"},
		Usage:     "Search movies by title",
		ArgsUsage: "<query...>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Search,
	}
}

// detailsCommand looks up movies by IMDb id
func detailsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "details",
		Aliases:   []string{"info"},
		Usage:     "Show plot, actors, rating and genre of one or more movies",
		ArgsUsage: "<imdb-id...>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Details,
	}
}

// watchlistCommand manages the persisted watchlist
func watchlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "watchlist",
		Aliases: []string{"wl"},
		Usage:   "Manage the watchlist",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List saved movies",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.WatchlistList,
			},
			{
				Name:      "add",
				Usage:     "Look up movies by IMDb id and add them",
				ArgsUsage: "<imdb-id...>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent lookups",
						Value: 4,
					},
				},
				Action: r.WatchlistAdd,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove movies by IMDb id",
				ArgsUsage: "<imdb-id...>",
				Action:    r.WatchlistRemove,
			},
			{
				Name:  "export",
				Usage: "Export the watchlist to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown, txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (directory for markdown)",
					},
					&cli.BoolFlag{
						Name:  "posters",
						Usage: "Download posters for markdown exports",
					},
				},
				Action: r.WatchlistExport,
			},
		},
	}
}

// themeCommand shows or changes the theme preference
func themeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "theme",
		Usage:     "Show or set the theme preference",
		ArgsUsage: "[light|dark|toggle]",
		Action:    r.Theme,
	}
}

// openCommand opens a title page on IMDb
func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Open a movie's IMDb page in the browser",
		ArgsUsage: "<imdb-id>",
		Action:    r.Open,
	}
}

// tuiCommand returns the top-level TUI command for interactive search.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for search and watchlist",
		Action:  r.TUI,
	}
}

// serveCommand runs the JSON API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host, overrides server.host",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port, overrides server.port",
			},
		},
		Action: r.Serve,
	}
}
