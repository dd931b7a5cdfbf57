package config

import (
	"bytes"
	"embed"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

//go:embed config.json
var config embed.FS
var confName string = "config.json"

var ErrInvalidConfig = errors.New("invalid config")

type LineNumbers string

const (
	Absolute LineNumbers = "absolute"
	Relative LineNumbers = "relative"
	Off      LineNumbers = "off"
)

type EditorConfig struct {
	LineNumbers    LineNumbers `mapstructure:"lineNumbers"`
	TrimFiles      bool        `mapstructure:"trimFiles"`
	RebalanceDepth int         `mapstructure:"rebalanceDepth"`
	TabWidth       int         `mapstructure:"tabWidth"`
}

func (e EditorConfig) validate() error {
	switch e.LineNumbers {
	case Absolute, Relative, Off:
	default:
		return errors.Wrapf(ErrInvalidConfig, "lineNumbers must be absolute, relative or off, got %q", e.LineNumbers)
	}
	if e.RebalanceDepth < 0 {
		return errors.Wrapf(ErrInvalidConfig, "rebalanceDepth must not be negative, got %d", e.RebalanceDepth)
	}
	if e.TabWidth < 1 {
		return errors.Wrapf(ErrInvalidConfig, "tabWidth must be at least 1, got %d", e.TabWidth)
	}
	return nil
}

type Config struct {
	log      *log.Logger
	confDir  string
	confFile string

	mu       sync.RWMutex
	editor   EditorConfig
	onChange []func(EditorConfig)

	watcher *fsnotify.Watcher
	done    chan struct{}
}

func NewConfig(logger *log.Logger) *Config {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Config{log: logger}
}

// DefaultDir is $XDG_CONFIG_HOME/goditor, or $HOME/.goditor when XDG_CONFIG_HOME is unset.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "goditor")
	}
	return filepath.Join(os.Getenv("HOME"), ".goditor")
}

// Init loads the config file at path, or the default one when path is
// empty. A missing file is created from the built in defaults.
func (cfg *Config) Init(path string) error {
	if path == "" {
		path = filepath.Join(DefaultDir(), confName)
	}
	cfg.confFile = path
	cfg.confDir = filepath.Dir(path)

	if err := cfg.writeConfigIfMissing(); err != nil {
		return err
	}
	return cfg.readConfigIntoMemory()
}

func (cfg *Config) Dir() string {
	return cfg.confDir
}

func (cfg *Config) File() string {
	return cfg.confFile
}

// Editor returns a copy of the current settings.
func (cfg *Config) Editor() EditorConfig {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.editor
}

// OnChange registers f to be called with the new settings after every reload.
func (cfg *Config) OnChange(f func(EditorConfig)) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.onChange = append(cfg.onChange, f)
}

func (cfg *Config) writeConfigIfMissing() error {
	if _, err := os.Stat(cfg.confFile); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "stat config file %s", cfg.confFile)
	}

	content, err := fs.ReadFile(config, confName)
	if err != nil {
		return errors.Wrap(err, "read embedded config file")
	}
	if err := os.MkdirAll(cfg.confDir, 0755); err != nil {
		return errors.Wrapf(err, "create config directory %s", cfg.confDir)
	}
	if err := os.WriteFile(cfg.confFile, content, 0664); err != nil {
		return errors.Wrapf(err, "write config file %s", cfg.confFile)
	}
	cfg.log.Printf("Wrote default config to %s", cfg.confFile)
	return nil
}

func (cfg *Config) readConfigIntoMemory() error {
	defaults, err := fs.ReadFile(config, confName)
	if err != nil {
		return errors.Wrap(err, "read embedded config file")
	}

	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return errors.Wrap(err, "parse embedded config file")
	}
	v.SetConfigFile(cfg.confFile)
	if err := v.MergeInConfig(); err != nil {
		return errors.Wrapf(err, "read config file %s", cfg.confFile)
	}

	var editor EditorConfig
	if err := v.Unmarshal(&editor); err != nil {
		return errors.Wrapf(err, "decode config file %s", cfg.confFile)
	}
	if err := editor.validate(); err != nil {
		return errors.Wrapf(err, "config file %s", cfg.confFile)
	}

	cfg.mu.Lock()
	cfg.editor = editor
	listeners := append([]func(EditorConfig){}, cfg.onChange...)
	cfg.mu.Unlock()

	for _, f := range listeners {
		f(editor)
	}
	return nil
}

// Watch rereads the config file whenever it is written. A file that fails to
// load is logged and the previous settings stay in effect.
func (cfg *Config) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create file watcher")
	}
	// watch the directory, editors often replace the file instead of writing it
	if err := watcher.Add(cfg.confDir); err != nil {
		watcher.Close()
		return errors.Wrapf(err, "watch config directory %s", cfg.confDir)
	}
	cfg.watcher = watcher
	cfg.done = make(chan struct{})
	go cfg.rereadConfigOnFileChange()
	return nil
}

func (cfg *Config) rereadConfigOnFileChange() {
	defer close(cfg.done)
	for {
		select {
		case event, ok := <-cfg.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(cfg.confFile) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if err := cfg.readConfigIntoMemory(); err != nil {
					cfg.log.Printf("Could not reload config: %v", err)
					continue
				}
				cfg.log.Printf("Reloaded config from %s", cfg.confFile)
			}
		case err, ok := <-cfg.watcher.Errors:
			if !ok {
				return
			}
			cfg.log.Printf("Config watcher error: %v", err)
		}
	}
}

// Cleanup stops the watcher, if any, and waits for it to exit.
func (cfg *Config) Cleanup() error {
	if cfg.watcher == nil {
		return nil
	}
	err := cfg.watcher.Close()
	<-cfg.done
	cfg.watcher = nil
	return errors.Wrap(err, "close config watcher")
}
