// Command tasklist is a single-user to-do list for the terminal.
package main

import "github.com/twiced-technology-gmbh/tasklist/cmd"

func main() {
	cmd.Execute()
}
