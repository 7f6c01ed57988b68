package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sethgrid/deskpet/internal/art"
	"github.com/sethgrid/deskpet/internal/controller"
	"github.com/sethgrid/deskpet/internal/discovery"
	"github.com/sethgrid/deskpet/internal/gallery"
	"github.com/sethgrid/deskpet/internal/logging"
	"github.com/sethgrid/deskpet/internal/pet"
	"github.com/sethgrid/deskpet/internal/sched"
	"github.com/sethgrid/deskpet/internal/sound"
	"github.com/sethgrid/deskpet/internal/speech"
	"github.com/sethgrid/deskpet/internal/storage"
	"github.com/sethgrid/deskpet/internal/tui"
)

var (
	configPath string
)

const Version = "v0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "deskpet",
		Short: "deskpet - a rabbit that lives in your terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if version, _ := cmd.Flags().GetBool("version"); version {
				fmt.Println(Version)
				return nil
			}
			return runPet(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to pet config file")
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(bgCmd)
	rootCmd.AddCommand(sayCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env is everything a command needs from the pet directory.
type env struct {
	paths discovery.Paths
	cfg   pet.PetConfig
	log   *zap.Logger
	store *storage.Store
}

// loadEnv finds the pet directory and opens its config, log and store. The
// interactive pet logs to a file because the screen owns the terminal.
func loadEnv(logToFile bool) (*env, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	petDir, err := discovery.ResolvePetDir(configPath, cwd)
	if err != nil {
		return nil, err
	}
	paths := discovery.PathsFor(petDir, configPath)

	cfg, err := storage.LoadConfig(paths.Config)
	if err != nil {
		return nil, err
	}

	logPath := ""
	if logToFile {
		logPath = paths.Log
	}
	log, err := logging.New(cfg.Logging, logPath)
	if err != nil {
		return nil, err
	}

	store, err := storage.OpenStore(paths.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return &env{paths: paths, cfg: cfg, log: log, store: store}, nil
}

func (e *env) gallery(ctx context.Context) *gallery.Gallery {
	manifest := gallery.NewManifest(e.paths.Resolve(e.cfg.Manifest))
	g := gallery.New(e.store, manifest, e.log.Named("gallery"))
	g.Load(ctx)
	return g
}

func (e *env) lines() *speech.Lines {
	l := speech.New(e.cfg.Locale, e.log.Named("speech"))
	if err := l.LoadScript(e.paths.Resolve(e.cfg.SpeechScript)); err != nil {
		e.log.Warn("speech script ignored", zap.Error(err))
	}
	return l
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Let the pet out onto the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPet(cmd.Context())
	},
}

func runPet(ctx context.Context) error {
	e, err := loadEnv(true)
	if err != nil {
		return err
	}
	defer e.log.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	lines := e.lines()
	defer lines.Close()

	w, h := screen.Size()
	ctrl := controller.New(sched.New(time.Now()), controller.Options{
		Config:  e.cfg,
		Width:   w,
		Height:  h,
		Lines:   lines,
		Sound:   sound.New(e.cfg.Sound, e.log.Named("sound")),
		Gallery: e.gallery(ctx),
		Log:     e.log.Named("pet"),
	})
	app := tui.New(screen, ctrl, tui.Options{
		FrameRate:         e.cfg.FrameRate,
		DoubleClickWindow: e.cfg.DoubleClickWindow.Duration,
		Poses:             art.LoadPoses(ctx, e.cfg.Poses, e.paths.Dir, e.cfg.Sprite, e.log.Named("art")),
		Log:               e.log.Named("tui"),
	})

	e.log.Info("pet started",
		zap.String("name", e.cfg.Name),
		zap.String("dir", e.paths.Dir),
		zap.Int("width", w),
		zap.Int("height", h))
	ctrl.Start()
	defer ctrl.Stop()

	return app.Run(ctx)
}

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a pet directory with a default pet.toml",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")

		var baseDir string
		if global {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}
			baseDir = home
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			baseDir = cwd
		}

		name := pet.DefaultName
		if len(args) == 1 {
			name = args[0]
		}

		path, err := storage.InitPet(name, baseDir)
		if err != nil {
			return fmt.Errorf("failed to create pet: %w", err)
		}
		fmt.Printf("%s moved in! Config written to %s\n", name, path)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("global", false, "Create the pet in your home directory")
}

var sayCmd = &cobra.Command{
	Use:   "say <action>",
	Short: "Print what the pet says for an action",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		action, err := pet.ParseAction(args[0])
		if err != nil {
			return err
		}
		key, ok := speech.ForAction(action)
		if !ok {
			return fmt.Errorf("action %q has nothing to say", action)
		}

		e, err := loadEnv(false)
		if err != nil {
			return err
		}
		defer e.log.Sync()

		lines := e.lines()
		defer lines.Close()

		var text string
		if key == speech.Time {
			now := time.Now()
			text = lines.Line(key, now.Hour(), now.Minute())
		} else {
			text = lines.Line(key)
		}
		fmt.Printf("%s: %s\n", e.cfg.Name, text)
		return nil
	},
}
