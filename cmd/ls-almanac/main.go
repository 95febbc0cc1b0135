// Command ls-almanac computes rise and set times, Moon phases, seasons,
// eclipses and transits, and shows them in a terminal UI.
package main

import "github.com/litescript/ls-almanac/internal/cli"

func main() {
	cli.Execute()
}
