package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", invalidChoice("ui", value, []string{"auto", "on", "off"})
	}
}

// wantsTUI decides whether a directory run shows the progress view. Quiet
// runs and machine-readable output never do in auto mode.
func wantsTUI(cmd *cobra.Command, st settings, machineOutput bool) (bool, error) {
	value, err := cmd.Flags().GetString("ui")
	if err != nil {
		return false, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(value)
	if err != nil {
		return false, err
	}
	switch mode {
	case uiModeOn:
		return true, nil
	case uiModeOff:
		return false, nil
	default:
		return !st.quiet && !machineOutput && isTerminal(os.Stdout), nil
	}
}
