package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/punchcard/internal/timecalc"
)

var (
	deleteDay         string
	deleteDescription string
	deleteAll         bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete activities by id, day, description or wholesale",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().StringVar(&deleteDay, "day", "", "Delete all activities of a day (YYYY-MM-DD)")
	deleteCmd.Flags().StringVar(&deleteDescription, "description", "", "With --day: delete only this description")
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "Delete every activity")
}

func runDelete(cmd *cobra.Command, args []string) error {
	switch {
	case deleteAll:
		if len(args) > 0 || deleteDay != "" {
			fmt.Fprintln(os.Stderr, "--all cannot be combined with an id or --day")
			os.Exit(1)
		}
	case deleteDay != "":
		if len(args) > 0 {
			fmt.Fprintln(os.Stderr, "--day cannot be combined with an id")
			os.Exit(1)
		}
	case len(args) == 1:
		if deleteDescription != "" {
			fmt.Fprintln(os.Stderr, "--description requires --day")
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "specify an id, --day or --all")
		os.Exit(1)
	}

	tr, _ := openTracker()

	switch {
	case deleteAll:
		tr.DeleteAll()
		fmt.Println("Deleted all activities.")
	case deleteDay != "":
		day, err := timecalc.ParseDay(deleteDay)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if deleteDescription != "" {
			tr.DeleteDescriptionsInADay(day, deleteDescription)
			fmt.Printf("Deleted %q on %s.\n", deleteDescription, deleteDay)
		} else {
			tr.DeleteAllInADay(day)
			fmt.Printf("Deleted all activities on %s.\n", deleteDay)
		}
	default:
		tr.DeleteActivity(args[0])
		fmt.Printf("Deleted activity %s.\n", args[0])
	}

	return nil
}
