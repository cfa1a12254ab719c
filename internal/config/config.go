package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/go-playground/validator"
)

// Config holds every setting of the demo and the bake tool.
type Config struct {
	Window    WindowConfig    `json:"window"`
	Models    ModelsConfig    `json:"models"`
	Animation AnimationConfig `json:"animation"`
	Renderer  RendererConfig  `json:"renderer"`

	Profiling bool `json:"profiling"`
	Workers   int  `json:"workers" validate:"gte=0"`
}

// WindowConfig is the initial window state.
type WindowConfig struct {
	Title      string `json:"title"`
	Width      int    `json:"width" validate:"gte=0"`
	Height     int    `json:"height" validate:"gte=0"`
	FullScreen bool   `json:"full_screen"`
}

// ModelsConfig names the three pose meshes. Relative paths resolve against Dir.
type ModelsConfig struct {
	Dir            string `json:"dir"`
	Base           string `json:"base"`
	PoseA          string `json:"pose_a"`
	PoseB          string `json:"pose_b"`
	StrictTopology bool   `json:"strict_topology"`
}

// AnimationConfig tunes the pose animator.
type AnimationConfig struct {
	AdjustStep   float32 `json:"adjust_step" validate:"gt=0"`
	PulseStep    float32 `json:"pulse_step" validate:"gt=0"`
	Overshoot    float32 `json:"overshoot" validate:"gt=0"`
	TickPeriodMs int     `json:"tick_period_ms" validate:"gt=0"`
}

// TickPeriod returns the pulse timer period.
func (a AnimationConfig) TickPeriod() time.Duration {
	return time.Duration(a.TickPeriodMs) * time.Millisecond
}

// RendererConfig selects presentation settings.
type RendererConfig struct {
	VSync         *bool    `json:"vsync"`
	MSAA          bool     `json:"msaa"`
	ForceSoftware bool     `json:"force_software"`
	FrameLimit    float64  `json:"frame_limit" validate:"gte=0"`
	ClearGrey     *float64 `json:"clear_grey" validate:"omitempty,gte=0,lte=1"`
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the file's setting alone.
type Flags struct {
	ConfigFile string
	ModelDir   string
	Base       string
	PoseA      string
	PoseB      string
	Width      int
	Height     int
	Workers    int
	NoVSync    bool
	MSAA       bool
	Profile    bool
	Strict     bool
}

// BindFlags registers the shared flags on fs and returns the struct they fill on Parse.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.ConfigFile, "config", "", "Path to config.json file")
	fs.StringVar(&f.ModelDir, "models", "", "Directory relative model paths resolve against (default: models)")
	fs.StringVar(&f.Base, "base", "", "Base pose mesh (default: BrucePose1.obj)")
	fs.StringVar(&f.PoseA, "pose-a", "", "First target pose mesh (default: BrucePose2.obj)")
	fs.StringVar(&f.PoseB, "pose-b", "", "Second target pose mesh (default: BrucePose3.obj)")
	fs.IntVar(&f.Width, "width", 0, "Window width (default: 1024)")
	fs.IntVar(&f.Height, "height", 0, "Window height (default: 720)")
	fs.IntVar(&f.Workers, "workers", 0, "Mesh loader workers (default: 3)")
	fs.BoolVar(&f.NoVSync, "novsync", false, "Present without waiting for vertical sync")
	fs.BoolVar(&f.MSAA, "msaa", false, "Enable 4x multisampling")
	fs.BoolVar(&f.Profile, "profile", false, "Log FPS, heap and weights every second")
	fs.BoolVar(&f.Strict, "strict", false, "Compare every face of the poses against the base")
	return f
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadWithFlags loads the file named by flags.ConfigFile, if any, then resolves and validates.
func LoadWithFlags(flags Flags) (Config, error) {
	var cfg Config
	if flags.ConfigFile != "" {
		var err error
		if cfg, err = Load(flags.ConfigFile); err != nil {
			return Config{}, err
		}
	}
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve applies flag overrides, then fills any empty fields with defaults and joins relative
// model paths onto the model directory.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	c.Models.Dir = common.Coalesce(flags.ModelDir, c.Models.Dir, "models")
	c.Models.Base = resolvePath(c.Models.Dir, common.Coalesce(flags.Base, c.Models.Base, "BrucePose1.obj"))
	c.Models.PoseA = resolvePath(c.Models.Dir, common.Coalesce(flags.PoseA, c.Models.PoseA, "BrucePose2.obj"))
	c.Models.PoseB = resolvePath(c.Models.Dir, common.Coalesce(flags.PoseB, c.Models.PoseB, "BrucePose3.obj"))
	c.Models.StrictTopology = c.Models.StrictTopology || flags.Strict

	c.Window.Title = common.Coalesce(c.Window.Title, "Morph Targets")
	c.Window.Width = common.Coalesce(max(flags.Width, 0), c.Window.Width, 1024)
	c.Window.Height = common.Coalesce(max(flags.Height, 0), c.Window.Height, 720)

	c.Animation.AdjustStep = common.Coalesce(c.Animation.AdjustStep, 0.1)
	c.Animation.PulseStep = common.Coalesce(c.Animation.PulseStep, 0.2)
	c.Animation.Overshoot = common.Coalesce(c.Animation.Overshoot, 1.1)
	c.Animation.TickPeriodMs = common.Coalesce(c.Animation.TickPeriodMs, 4)

	if flags.NoVSync {
		off := false
		c.Renderer.VSync = &off
	}
	if c.Renderer.VSync == nil {
		on := true
		c.Renderer.VSync = &on
	}
	c.Renderer.MSAA = c.Renderer.MSAA || flags.MSAA
	if c.Renderer.ClearGrey == nil {
		grey := 0.4
		c.Renderer.ClearGrey = &grey
	}

	c.Profiling = c.Profiling || flags.Profile
	c.Workers = common.Coalesce(max(flags.Workers, 0), c.Workers, 3)
}

// resolvePath joins relative paths onto dir.
func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Validate reports every setting that cannot be used, naming fields by their JSON keys.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config: %w", err)
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		errs = append(errs, fmt.Errorf("%s %v fails %s", fe.Field(), fe.Value(), rule))
	}
	return fmt.Errorf("config: %w", errors.Join(errs...))
}

// validate checks the `validate` tags and reports fields by their json names.
var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()
