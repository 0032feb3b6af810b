// Command regio generates typed register accessors from chip descriptions
// and inspects registers on real or simulated hardware.
package main

import "github.com/sarchlab/regio/regio/cmd"

func main() {
	cmd.Execute()
}
