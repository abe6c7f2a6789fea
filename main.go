// The main package for the progress-demo executable.
package main

import "github.com/JakeFAU/progress-monitor/cmd"

func main() {
	cmd.Execute()
}
