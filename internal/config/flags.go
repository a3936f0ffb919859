package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to settings file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagWidth  = flag.Int("width", 0, "Window width")
	flagHeight = flag.Int("height", 0, "Window height")
	flagKeymap = flag.String("keymap", "", "Path to keybinding file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit settings path given with -config
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagKeymap != "" {
		cfg.Assets.Keymap = *flagKeymap
	}
}
