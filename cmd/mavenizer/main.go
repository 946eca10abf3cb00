// Command mavenizer identifies Maven coordinates for compiled jar files.
package main

import "github.com/petrarca/mavenizer/internal/cmd"

func main() {
	cmd.Execute()
}
