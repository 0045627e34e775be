// Package config loads the mat-schedule configuration file.
//
// The file is JSON5 so it can carry comments. A sibling file with ".local"
// inserted before the extension is merged over it, which keeps machine
// specific settings out of version control. Every setting has a built-in
// default, so running without any file scrapes the current season of the
// default team.
package config
