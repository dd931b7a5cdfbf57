package main

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"goditor/application"
	"goditor/buffer"
	"goditor/config"

	"github.com/cockroachdb/errors"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "goditor [file]",
		Short:        "A terminal text editor backed by ropes",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return runEditor(file)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/goditor/config.json)")
	root.AddCommand(newStatsCmd())
	return root
}

// NewLogger appends to goditor.log in dir.
func NewLogger(dir string) (*log.Logger, *os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, errors.Wrapf(err, "create log directory %s", dir)
	}
	file, err := os.OpenFile(filepath.Join(dir, "goditor.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open log file")
	}
	return log.New(file, "", log.LstdFlags|log.Lshortfile), file, nil
}

func configDir() string {
	if configPath != "" {
		return filepath.Dir(configPath)
	}
	return config.DefaultDir()
}

func runEditor(file string) error {
	logger, logFile, err := NewLogger(configDir())
	if err != nil {
		return err
	}
	defer logFile.Close()

	cfg := config.NewConfig(logger)
	if err := cfg.Init(configPath); err != nil {
		return err
	}
	if err := cfg.Watch(); err != nil {
		logger.Printf("Config hot reload disabled: %v", err)
	}
	defer cfg.Cleanup()

	buf := buffer.NewBuffer(logger)
	if file == "" {
		logger.Print("Started program without any files. Created new buffer.")
	} else if err := buf.OpenFile(file); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		buf.SetPath(file)
		logger.Printf("%v does not exist yet, it is created on save", file)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := s.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	// You have to catch panics in a defer, clean up, and
	// re-raise them - otherwise your application can
	// die without leaving any diagnostic trace.
	defer func() {
		if maybePanic := recover(); maybePanic != nil {
			s.Fini()
			panic(maybePanic)
		}
	}()
	s.SetStyle(application.DefaultStyle)
	s.EnableMouse()
	s.EnablePaste()
	s.Clear()

	app := application.NewApplication(s, buf, cfg, logger)
	err = app.Run()
	s.Fini()

	if buf.Dirty() {
		logger.Printf("Quit with unsaved changes in %q", buf.Path())
	}
	return err
}
