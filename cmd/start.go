package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var startDescription string

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start recording an activity",
	Args:  cobra.NoArgs,
	RunE:  runStart,
}

func init() {
	startCmd.Flags().StringVarP(&startDescription, "description", "d", "", "Activity description")
}

func runStart(cmd *cobra.Command, args []string) error {
	tr, _ := openTracker()

	if startDescription != "" {
		tr.SetDescription(startDescription)
	}

	if !tr.Start() {
		fmt.Println("Already recording, nothing changed.")
		return nil
	}

	event := tr.LastEvent()
	if event.Description != "" {
		fmt.Printf("Recording %q since %s\n", event.Description, event.Date.Format("15:04:05"))
	} else {
		fmt.Printf("Recording since %s\n", event.Date.Format("15:04:05"))
	}
	return nil
}
