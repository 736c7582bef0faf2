package cli

import (
	"os"
	"path/filepath"
)

// Paths provides access to the rhetor directory structure
type Paths struct {
	// HomeDir is the user's home directory
	HomeDir string
}

// NewPaths creates a new Paths instance
func NewPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Paths{HomeDir: home}, nil
}

// BaseDir returns the base rhetor directory (~/.rhetor)
func (p *Paths) BaseDir() string {
	return filepath.Join(p.HomeDir, DefaultBaseDir)
}

// ConfigFile returns the config file path (~/.rhetor/config.yaml)
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.BaseDir(), DefaultConfigFile)
}

// SessionsDir returns the saved-sessions directory (~/.rhetor/sessions)
func (p *Paths) SessionsDir() string {
	return filepath.Join(p.BaseDir(), "sessions")
}

// EnsureSessionsDir creates the sessions directory if it doesn't exist
func (p *Paths) EnsureSessionsDir() error {
	return os.MkdirAll(p.SessionsDir(), 0755)
}

// SessionPath returns a path within the sessions directory
func (p *Paths) SessionPath(name string) string {
	return filepath.Join(p.SessionsDir(), name)
}
