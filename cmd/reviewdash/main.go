// Command reviewdash labels product reviews by sentiment and serves the
// dashboard views.
package main

import "github.com/mesh-intelligence/reviewdash/internal/cli"

func main() {
	cli.Execute()
}
