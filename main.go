package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	core "github.com/llehouerou/tapedeck/internal/audioplayer"
	"github.com/llehouerou/tapedeck/internal/config"
	"github.com/llehouerou/tapedeck/internal/errmsg"
	"github.com/llehouerou/tapedeck/internal/icons"
	"github.com/llehouerou/tapedeck/internal/logger"
	"github.com/llehouerou/tapedeck/internal/mpris"
	"github.com/llehouerou/tapedeck/internal/notify"
	"github.com/llehouerou/tapedeck/internal/sound"
	"github.com/llehouerou/tapedeck/internal/stderr"
	"github.com/llehouerou/tapedeck/internal/ui/audioplayer"
)

var (
	app        = kingpin.New("tapedeck", "Terminal audio player")
	configPath = app.Flag("config", "Path to config file (default: XDG config, then ./config.toml)").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: XDG state dir)").String()
	noAudio    = app.Flag("no-audio", "Disable all playback controls").Bool()
	sourceArg  = app.Arg("source", "File path, file:// or http(s):// URI to play").String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := run(); err != nil {
		stderr.WriteOriginal(err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	applyFlags(cfg)

	logPath := cfg.Log.File
	if logPath == "" {
		if logPath, err = config.DefaultLogFile(); err != nil {
			return errors.New(errmsg.Format(errmsg.OpLogInit, err))
		}
	}
	closer, err := logger.Init(logger.Config{File: logPath, Level: cfg.Log.Level})
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpLogInit, logPath, err))
	}
	defer closer.Close()

	zlog.Info().
		Str("source", cfg.Source).
		Bool("audio_enabled", cfg.AudioEnabled).
		Dur("progress_interval", cfg.ProgressInterval()).
		Msg("starting tapedeck")

	icons.Init(cfg.Icons)

	if err := stderr.Start(); err != nil {
		zlog.Warn().Err(err).Msg("stderr capture unavailable")
	}
	defer stderr.Stop()

	state := &mpris.State{}
	observe := state.Observe
	if cfg.Notifications {
		announcer := notify.NewAnnouncer(notify.New())
		defer announcer.Close()
		observe = func(s audioplayer.Snapshot) {
			state.Observe(s)
			announcer.Observe(s)
		}
	}

	model := audioplayer.New(
		sound.NewEngine(),
		audioplayer.Props{
			AudioEnabled: cfg.AudioEnabled,
			Source:       sound.Source{URI: cfg.Source},
			Style:        lipgloss.NewStyle(),
		},
		audioplayer.WithProgressInterval(cfg.ProgressInterval()),
		audioplayer.WithObserver(observe),
	)
	defer model.Close()

	p := tea.NewProgram(model)

	if cfg.MPRIS {
		adapter, err := mpris.New(state, func(in core.Intent) {
			p.Send(audioplayer.IntentMsg{Intent: in})
		})
		if err != nil {
			zlog.Warn().Err(err).Msg(errmsg.Format(errmsg.OpMPRISStart, err))
		} else {
			defer func() {
				if err := adapter.Close(); err != nil {
					zlog.Warn().Err(err).Msg("mpris close")
				}
			}()
		}
	}

	if _, err := p.Run(); err != nil {
		zlog.Error().Err(err).Msg("program exited with error")
		return errors.New(errmsg.Format(errmsg.OpRun, err))
	}
	zlog.Info().Msg("tapedeck stopped")
	return nil
}

// applyFlags lets command-line flags override the loaded configuration.
func applyFlags(cfg *config.Config) {
	if *sourceArg != "" {
		cfg.Source = *sourceArg
	}
	if *noAudio {
		cfg.AudioEnabled = false
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logfile != "" {
		cfg.Log.File = *logfile
	}
}
