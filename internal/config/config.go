package config

import (
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

const (
	defaultOutputDir   = "/tmp/spindeck"
	defaultSkin        = "turntable"
	defaultSink        = "png"
	defaultFrameRate   = 30
	defaultVolumeStyle = "slider"
	defaultMaxFailures = 10
)

// AppConfig holds application configuration
type AppConfig struct {
	logger      *zap.Logger
	outputDir   string
	assetDir    string
	skin        string
	sinkMode    string
	volumeStyle string
	frameRate   int
	maxFailures int
	width       int
	height      int
}

// NewAppConfig creates a new application configuration instance
func NewAppConfig(logger *zap.Logger) *AppConfig {
	cfg := &AppConfig{
		logger:      logger,
		outputDir:   envString("SPINDECK_OUTPUT_DIR", defaultOutputDir),
		assetDir:    envString("SPINDECK_ASSET_DIR", ""),
		skin:        envString("SPINDECK_SKIN", defaultSkin),
		sinkMode:    envString("SPINDECK_SINK", defaultSink),
		volumeStyle: envString("SPINDECK_VOLUME_STYLE", defaultVolumeStyle),
		frameRate:   envInt("SPINDECK_FPS", defaultFrameRate),
		maxFailures: envInt("SPINDECK_MAX_PRESENT_FAILURES", defaultMaxFailures),
		width:       envInt("SPINDECK_WIDTH", 0),
		height:      envInt("SPINDECK_HEIGHT", 0),
	}

	// Expand path if it contains ~ or environment variables
	cfg.outputDir = os.ExpandEnv(cfg.outputDir)
	if len(cfg.outputDir) > 0 && cfg.outputDir[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			cfg.outputDir = filepath.Join(home, cfg.outputDir[1:])
		}
	}

	logger.Info("Configuration loaded",
		zap.String("skin", cfg.skin),
		zap.String("sink", cfg.sinkMode),
		zap.Int("fps", cfg.frameRate),
		zap.String("outputDir", cfg.outputDir))

	return cfg
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// GetSkin returns the configured skin variant name
func (c *AppConfig) GetSkin() string {
	return c.skin
}

// GetFrameRate returns the target frames per second
func (c *AppConfig) GetFrameRate() int {
	return c.frameRate
}

// GetOutputDir returns the directory for rendered frames
func (c *AppConfig) GetOutputDir() string {
	return c.outputDir
}

// GetSinkMode selects the presentation backend
func (c *AppConfig) GetSinkMode() string {
	return c.sinkMode
}

// GetAssetDir returns the optional skin asset directory
func (c *AppConfig) GetAssetDir() string {
	return c.assetDir
}

// GetVolumeStyle returns the volume indicator style name
func (c *AppConfig) GetVolumeStyle() string {
	return c.volumeStyle
}

// GetMaxPresentFailures returns the consecutive-failure escalation cap
func (c *AppConfig) GetMaxPresentFailures() int {
	return c.maxFailures
}

// SurfaceSize returns the configured surface size; zeros mean "use the
// detected screen resolution".
func (c *AppConfig) SurfaceSize() (int, int) {
	return c.width, c.height
}
