// Package config handles engine configuration loading and management.
package config

// Config holds all engine settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	MSAA       int  `yaml:"msaa"` // samples, 0 disables multisampling
}

// CameraConfig holds default camera parameters.
type CameraConfig struct {
	FOV             float32 `yaml:"fov"` // vertical field of view, radians
	NearClip        float32 `yaml:"near_clip"`
	FarClip         float32 `yaml:"far_clip"`
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
	MoveSpeed       float32 `yaml:"move_speed"`
}

// SceneConfig holds default scene appearance settings.
type SceneConfig struct {
	Background [3]float32 `yaml:"background"`
	LineWidth  float32    `yaml:"line_width"`
	PointSize  float32    `yaml:"point_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			MSAA:       4,
		},
		Camera: CameraConfig{
			FOV:             0.785398, // 45 degrees
			NearClip:        0.1,
			FarClip:         1024.0,
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.1,
			MoveSpeed:       0.5,
		},
		Scene: SceneConfig{
			Background: [3]float32{0.1, 0.1, 0.15},
			LineWidth:  1.0,
			PointSize:  1.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
