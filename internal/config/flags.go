package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagMesh       = flag.String("mesh", "", "Path to the OBJ mesh")
	flagTexture    = flag.String("texture", "", "Path to the texture image")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagResizable  = flag.Bool("resizable", false, "Allow resizing the window")
	flagTriangle   = flag.Bool("triangulate", false, "Triangulate polygon faces instead of rejecting them")
	flagWatch      = flag.Bool("watch", false, "Reload the mesh and texture when they change on disk")
	flagSaveConfig = flag.Bool("save-config", false, "Write the effective config to the user config directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMesh != "" {
		cfg.Assets.Mesh = *flagMesh
	}
	if *flagTexture != "" {
		cfg.Assets.Texture = *flagTexture
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagResizable {
		cfg.Window.Resizable = true
	}
	if *flagTriangle {
		cfg.Mesh.Triangulate = true
	}
	if *flagWatch {
		cfg.Assets.Watch = true
	}
}
