// Package peripherals holds the chip descriptions of the demo SoC and the
// accessor packages generated from them.
package peripherals

//go:generate go run github.com/sarchlab/regio/regio gen --chip flashctrl.yaml -o .
