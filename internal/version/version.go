// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Local solar eclipses with contact altitudes, transits, TOML output
// 0.2.0 - Lunar and global solar eclipses, apsides, greatest elongations
// 0.1.0 - Initial release: moon phases, seasons, rise/set, TUI almanac and sky view
