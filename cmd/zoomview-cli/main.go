// CLI-only version (no GUI dependencies)
package main

import "zoomview/internal/cli"

func main() {
	cli.Execute(cli.NewRootCommand("zoomview-cli", "Headless viewport controller tools"))
}
