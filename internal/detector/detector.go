// Package detector handles frontend detection and ROM file checks.
package detector

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

var romExtensions = []string{".ch8", ".c8", ".rom"}

// Detector handles frontend detection from options and the environment.
type Detector struct {
	logger *log.Logger
	goos   string
	getenv func(string) string
}

// New creates a new frontend detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
		goos:   runtime.GOOS,
		getenv: os.Getenv,
	}
}

// Detect returns the frontend to use. An explicitly chosen frontend is
// returned unchanged, for auto the SDL window is used when a display is
// available and the terminal otherwise.
func (d *Detector) Detect(opts options.Program) string {
	if opts.Frontend != options.FrontendAuto && opts.Frontend != "" {
		return opts.Frontend
	}

	frontend := options.FrontendTerminal
	if d.hasDisplay() {
		frontend = options.FrontendSDL
	}
	d.logger.Debug("Auto-detected frontend",
		log.String("frontend", frontend),
		log.String("os", d.goos))
	return frontend
}

// CheckFile warns if the file name does not have a known ROM extension.
// It returns whether the extension is known.
func (d *Detector) CheckFile(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, known := range romExtensions {
		if ext == known {
			return true
		}
	}
	d.logger.Warn("Unknown ROM file extension, running it as CHIP-8 program",
		log.String("file", fileName),
		log.String("extension", ext))
	return false
}

// IsWindowed returns whether the frontend opens a window.
func IsWindowed(frontend string) bool {
	return frontend == options.FrontendSDL || frontend == options.FrontendPixel
}

func (d *Detector) hasDisplay() bool {
	switch d.goos {
	case "windows", "darwin":
		return true
	}
	return d.getenv("DISPLAY") != "" || d.getenv("WAYLAND_DISPLAY") != ""
}
