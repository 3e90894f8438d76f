// Command collatz explores Collatz trajectory trees.
package main

import "github.com/mesh-intelligence/collatz/internal/cli"

func main() {
	cli.Execute()
}
