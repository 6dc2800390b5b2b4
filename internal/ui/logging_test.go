package ui

import (
	"os"

	"github.com/pterm/pterm"
)

func ExamplePrintfln() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "Yaw: %.1f"
	yaw := 5.0
	Printfln(msg, yaw)
	// Output:
	// Yaw: 5.0
}

func ExampleDebug() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetDebugEnabled(true)

	msg := "Updated, output(steer degree)=%.2f"
	output := -1.7
	Debug(msg, output)
	// Output:
	// DEBUG: Updated, output(steer degree)=-1.70
}

func ExampleDebug_disabled() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetDebugEnabled(false)

	Debug("This is hidden: %d", 5)
	Info("This is visible: %d", 5)
	// Output:
	// INFO: This is visible: 5
}

func ExampleInfo() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "SET POINT=%.1f"
	setPoint := -5.0
	Info(msg, setPoint)
	// Output:
	// INFO: SET POINT=-5.0
}

func ExampleWarning() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test: %d"
	a := 5
	Warning(msg, a)
	// Output:
	// WARNING: This is a test: 5
}

func ExampleError() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test: %v"
	a := os.ErrClosed
	Error(msg, a)
	// Output:
	// ERROR: This is a test: file already closed
}
