// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles database initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config file, database, and migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// loginCommand handles password authentication.
func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in with email and password",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "Account email (defaults to credentials.email in config.toml)",
			},
			&cli.BoolFlag{
				Name:  "password-stdin",
				Usage: "Read the password from stdin instead of LATKE_PASSWORD or the saved credential",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Save the password locally for later logins",
			},
		},
		Action: r.Login,
	}
}

// pairCommand handles device-code authentication.
func pairCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "pair",
		Usage: "Log in by confirming a pairing code on another device",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "Email to cache the session under (defaults to credentials.email)",
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "Poll without the interactive UI",
			},
		},
		Action: r.Pair,
	}
}

// statusCommand reports the current session state.
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show the current session",
		Action: r.Status,
	}
}

// logoutCommand drops the session.
func logoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Log out and drop the cached session",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "forget",
				Usage: "Also delete the saved password",
			},
		},
		Action: r.Logout,
	}
}

// libraryCommand handles library operations.
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Library operations",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the locally cached library",
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
				Action: r.LibraryShow,
			},
			{
				Name:  "fetch",
				Usage: "Fetch the library from the server and print it",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.LibraryFetch,
			},
			{
				Name:    "browse",
				Aliases: []string{"ui"},
				Usage:   "Browse the cached library interactively",
				Action:  r.LibraryBrowse,
			},
			{
				Name:  "export",
				Usage: "Export the cached library to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, txt",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: stdout)",
					},
				},
				Action: r.LibraryExport,
			},
		},
	}
}

// syncCommand refreshes the local cache from the server.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Sync the library into the local cache",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent cache writers",
				Value: 4,
			},
		},
		Action: r.Sync,
	}
}

// playlistCommand handles playlist mutations.
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a new playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "description",
						Usage: "Playlist description",
					},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:  "rename",
				Usage: "Rename a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID to rename",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Usage:    "New playlist name",
						Required: true,
					},
				},
				Action: r.PlaylistRename,
			},
			{
				Name:  "delete",
				Usage: "Delete a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID to delete",
						Required: true,
					},
				},
				Action: r.PlaylistDelete,
			},
			{
				Name:  "add",
				Usage: "Add tracks to an existing playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID to add tracks to",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:     "track",
						Usage:    "Track ID to add (repeatable)",
						Required: true,
					},
				},
				Action: r.PlaylistAdd,
			},
		},
	}
}

// searchCommand looks up tracks on the server.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the server for tracks",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
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

// playCommand starts server-side playback.
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Start playback of a track",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "track"},
		},
		Action: r.Play,
	}
}

// pauseCommand pauses server-side playback.
func pauseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "pause",
		Usage:  "Pause playback",
		Action: r.Pause,
	}
}
