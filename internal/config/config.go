// Package config holds the sandbox settings file.
package config

// Config holds all sandbox settings
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Movement MovementConfig `yaml:"movement"`
	Textures TexturesConfig `yaml:"textures"`
	Assets   AssetsConfig   `yaml:"assets"`
	Lighting LightingConfig `yaml:"lighting"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings
type WindowConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Title    string `yaml:"title"`
	VSync    bool   `yaml:"vsync"`
	FPSLimit int    `yaml:"fps_limit"` // 0 = unlimited
}

// CameraConfig holds first-person camera settings
type CameraConfig struct {
	Yaw         float32 `yaml:"yaw"`
	Pitch       float32 `yaml:"pitch"`
	Sensitivity float32 `yaml:"sensitivity"`
	FOV         float32 `yaml:"fov"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
}

// MovementConfig holds character controller tuning
type MovementConfig struct {
	MoveSpeed    float32 `yaml:"move_speed"`
	JumpVelocity float32 `yaml:"jump_velocity"`
	Gravity      float32 `yaml:"gravity"`
	GroundHeight float32 `yaml:"ground_height"`
	BodyHeight   float32 `yaml:"body_height"`
}

// TexturesConfig sizes the shared texture array
type TexturesConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	Capacity int `yaml:"capacity"`
}

// AssetsConfig holds file locations
type AssetsConfig struct {
	ModelsDir   string   `yaml:"models_dir"`
	Models      []string `yaml:"models"`
	Keymap      string   `yaml:"keymap"`
	WatchKeymap bool     `yaml:"watch_keymap"`
}

// LightingConfig holds the fixed lighting setup
type LightingConfig struct {
	Direction     [3]float32 `yaml:"direction"`
	Ambient       [3]float32 `yaml:"ambient"`
	Diffuse       [3]float32 `yaml:"diffuse"`
	Specular      [3]float32 `yaml:"specular"`
	PointPosition [3]float32 `yaml:"point_position"`
	PointColor    [3]float32 `yaml:"point_color"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:    1280,
			Height:   720,
			Title:    "fpsandbox",
			VSync:    true,
			FPSLimit: 0,
		},
		Camera: CameraConfig{
			Yaw:         -90,
			Pitch:       0,
			Sensitivity: 0.1,
			FOV:         85,
			Near:        0.1,
			Far:         100,
		},
		Movement: MovementConfig{
			MoveSpeed:    5.0,
			JumpVelocity: 7.0,
			Gravity:      -19.62,
			GroundHeight: 1.0,
			BodyHeight:   1.6,
		},
		Textures: TexturesConfig{
			Width:    1024,
			Height:   1024,
			Capacity: 32,
		},
		Assets: AssetsConfig{
			ModelsDir:   "assets",
			Models:      []string{"scene/room"},
			Keymap:      "game_config/keymaps.json",
			WatchKeymap: true,
		},
		Lighting: LightingConfig{
			Direction:     [3]float32{-0.2, -1.0, -0.3},
			Ambient:       [3]float32{0.1, 0.1, 0.1},
			Diffuse:       [3]float32{0.6, 0.6, 0.6},
			Specular:      [3]float32{1.0, 1.0, 1.0},
			PointPosition: [3]float32{1.2, 3.0, 2.0},
			PointColor:    [3]float32{1.0, 0.9, 0.7},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
