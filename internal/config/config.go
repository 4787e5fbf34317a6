// Package config handles viewer configuration loading and management.
package config

import (
	"github.com/Faultbox/objview/internal/engine/camera"
	"github.com/Faultbox/objview/internal/logger"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window" toml:"window"`
	Viewer  ViewerConfig  `yaml:"viewer" toml:"viewer"`
	Camera  CameraConfig  `yaml:"camera" toml:"camera"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit" toml:"fps_limit"`
	ShowFPS    bool   `yaml:"show_fps" toml:"show_fps"`
}

// ViewerConfig holds what to display and how.
type ViewerConfig struct {
	Model       string     `yaml:"model" toml:"model"`
	Texture     string     `yaml:"texture" toml:"texture"`
	Triangulate bool       `yaml:"triangulate" toml:"triangulate"`
	Watch       bool       `yaml:"watch" toml:"watch"`
	FitCamera   bool       `yaml:"fit_camera" toml:"fit_camera"`
	Background  [3]float32 `yaml:"background" toml:"background"`
	LightDir    [3]float32 `yaml:"light_dir" toml:"light_dir"`

	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
}

// CameraConfig holds the initial rig and input sensitivity.
type CameraConfig struct {
	Eye         [3]float32 `yaml:"eye" toml:"eye"`
	FovY        float32    `yaml:"fov" toml:"fov"`
	Near        float32    `yaml:"near" toml:"near"`
	Far         float32    `yaml:"far" toml:"far"`
	RotateSpeed float32    `yaml:"rotate_speed" toml:"rotate_speed"`
	PanSpeed    float32    `yaml:"pan_speed" toml:"pan_speed"`
	ZoomStep    float32    `yaml:"zoom_step" toml:"zoom_step"`
	MinZoom     float32    `yaml:"min_zoom" toml:"min_zoom"`
	MaxZoom     float32    `yaml:"max_zoom" toml:"max_zoom"`
}

// LoggingConfig holds logging settings. Rotation limits only apply when
// LogFile is set.
type LoggingConfig struct {
	Level      string `yaml:"level" toml:"level"`
	LogFile    string `yaml:"log_file" toml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days"`
	Compress   bool   `yaml:"compress" toml:"compress"`
	Quiet      bool   `yaml:"quiet" toml:"quiet"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	rig := camera.DefaultRig()
	input := camera.DefaultSettings()
	logs := logger.DefaultConfig()
	return &Config{
		Window: WindowConfig{
			Title:  "objview",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Viewer: ViewerConfig{
			Triangulate: true,
			FitCamera:   true,
			Background:  [3]float32{0.2, 0.2, 0.25},
			LightDir:    [3]float32{0.5, 1, 0.75},

			ScreenshotDir: "screenshots",
		},
		Camera: CameraConfig{
			Eye:         rig.Eye,
			FovY:        rig.FovY,
			Near:        rig.Near,
			Far:         rig.Far,
			RotateSpeed: input.RotateSpeed,
			PanSpeed:    input.PanSpeed,
			ZoomStep:    input.ZoomStep,
			MinZoom:     input.MinZoom,
			MaxZoom:     input.MaxZoom,
		},
		Logging: LoggingConfig{
			Level:      logs.Level,
			MaxSizeMB:  logs.MaxSizeMB,
			MaxBackups: logs.MaxBackups,
			MaxAgeDays: logs.MaxAgeDays,
			Compress:   logs.Compress,
		},
	}
}

// Rig returns the camera rig described by the camera section.
func (c CameraConfig) Rig() camera.Rig {
	r := camera.DefaultRig()
	r.Eye = c.Eye
	r.FovY = c.FovY
	r.Near = c.Near
	r.Far = c.Far
	return r
}

// Settings returns the input sensitivity described by the camera section.
func (c CameraConfig) Settings() camera.Settings {
	return camera.Settings{
		RotateSpeed: c.RotateSpeed,
		PanSpeed:    c.PanSpeed,
		ZoomStep:    c.ZoomStep,
		MinZoom:     c.MinZoom,
		MaxZoom:     c.MaxZoom,
	}
}

// Logger returns the logger setup described by the logging section.
// Quiet drops console output.
func (l LoggingConfig) Logger() logger.Config {
	return logger.Config{
		Level:      l.Level,
		Console:    !l.Quiet,
		File:       l.LogFile,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
		Compress:   l.Compress,
	}
}
