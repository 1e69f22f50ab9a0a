// Command offboard tracks employee offboarding cases from the resignation
// notice through the final termination.
package main

import "offboard/internal/cli"

func main() {
	cli.Execute()
}
