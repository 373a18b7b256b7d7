package service

import (
	"os/exec"
	"sync"

	"pdf-tools-server/internal/domain"
)

// PathDependencyChecker looks commands up on PATH and caches the answer
type PathDependencyChecker struct {
	lookPath func(string) (string, error)
	logger   domain.Logger

	mu    sync.Mutex
	cache map[string]bool
}

func NewPathDependencyChecker(logger domain.Logger) *PathDependencyChecker {
	return &PathDependencyChecker{
		lookPath: exec.LookPath,
		logger:   logger,
		cache:    make(map[string]bool),
	}
}

// IsInstalled reports whether command resolves to an executable
func (c *PathDependencyChecker) IsInstalled(command string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if installed, ok := c.cache[command]; ok {
		return installed
	}

	path, err := c.lookPath(command)
	installed := err == nil
	if installed {
		c.logger.Debug("Found external dependency", "command", command, "path", path)
	} else {
		c.logger.Info("External dependency not installed", "command", command)
	}
	c.cache[command] = installed
	return installed
}
