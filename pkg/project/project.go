package project

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/consts"
	"github.com/pkg/errors"
)

// Project is a Rails project rooted at the directory holding its Gemfile.
type Project struct {
	root  string
	found bool
}

// New creates a Project rooted at path without searching for the marker.
func New(path string) *Project {
	return &Project{root: path, found: true}
}

// FindRoot ascends from start until it reaches a directory containing the
// project marker (a Gemfile) or the filesystem root. It returns the directory
// it stopped at and whether the marker was found there. Reaching the
// filesystem root is not an error.
//
// Example:
//
//	root, found, err := project.FindRoot("/src/app/app/models")
//	// root == "/src/app", found == true when /src/app/Gemfile exists
func FindRoot(start string) (string, bool, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to resolve %s", start)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, consts.ProjectMarker)); err == nil {
			return dir, true, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return dir, false, nil
		}

		dir = parent
	}
}

// Open finds the project enclosing start.
//
// Example:
//
//	pwd, _ := os.Getwd()
//	proj, err := project.Open(pwd)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := proj.Chdir(); err != nil {
//		log.Fatal(err)
//	}
func Open(start string) (*Project, error) {
	root, found, err := FindRoot(start)
	if err != nil {
		return nil, err
	}

	return &Project{root: root, found: found}, nil
}

// Root returns the project directory.
func (p *Project) Root() string {
	return p.root
}

// Found reports whether the marker file was found. When false, Root is the
// filesystem root the search stopped at.
func (p *Project) Found() bool {
	return p.found
}

// Chdir makes the project root the working directory of the process.
func (p *Project) Chdir() error {
	if err := os.Chdir(p.root); err != nil {
		return errors.Wrapf(err, "failed to change to project root: %s", p.root)
	}

	return nil
}

// DatabaseConfigPath returns the path of config/database.yml.
func (p *Project) DatabaseConfigPath() string {
	return filepath.Join(p.root, consts.DatabaseConfigPath)
}

// MigrationsFS returns the migrations directory as a filesystem.
func (p *Project) MigrationsFS() fs.FS {
	return os.DirFS(filepath.Join(p.root, consts.MigrationsDir))
}

// StatePath returns the path of the ignore-list file.
func (p *Project) StatePath() string {
	return filepath.Join(p.root, consts.StateFile)
}
