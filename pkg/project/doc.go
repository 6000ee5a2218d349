// Package project locates the Rails project a command is run from and
// resolves the paths the tool works with inside it.
//
// # Project Structure
//
// Only these parts of a Rails project are used:
//
//	project-root/
//	├── Gemfile                 # Marks the project root
//	├── .extra_migrations       # Ignore-list written by calibrate
//	├── config/
//	│   └── database.yml        # Connection settings per environment
//	└── db/
//	    └── migrate/            # Migration files, named <14 digits>_name.rb
//
// The root is found by walking up from the working directory until a Gemfile
// is seen. If none is found the walk stops at the filesystem root and the tool
// carries on from there; loading database.yml is what eventually reports that
// the user is not inside a project.
package project
