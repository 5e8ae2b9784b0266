package tracker

import (
	"github.com/Tiliavir/punchcard/internal/model"
	"github.com/Tiliavir/punchcard/internal/timecalc"
)

// reduce applies one command to the accumulator and returns the next
// accumulator state. The accumulator is a sequence of commands, not
// activities; the activity list is projected off it afterwards. Unrecognized
// command types leave the accumulator unchanged, like noop and load.
func reduce(acc []model.Command, cmd model.Command) []model.Command {
	switch cmd.Type {
	case model.CommandAdd:
		return append(acc, cmd)

	case model.CommandDelete:
		if cmd.Activity == nil {
			return acc
		}
		return filterCommands(acc, func(a *model.Activity) bool {
			return a == nil || a.UID != cmd.Activity.UID
		})

	case model.CommandDeleteByDescription:
		return filterCommands(acc, func(a *model.Activity) bool {
			return a == nil || !timecalc.SameDay(a.Day, cmd.Date) || a.Description != cmd.Description
		})

	case model.CommandDeleteAllByDay:
		return filterCommands(acc, func(a *model.Activity) bool {
			return a == nil || !timecalc.SameDay(a.Day, cmd.Date)
		})

	case model.CommandDeleteAll:
		return []model.Command{}

	default: // noop, load, unrecognized
		return acc
	}
}

// filterCommands keeps the commands whose attached activity satisfies keep.
func filterCommands(acc []model.Command, keep func(*model.Activity) bool) []model.Command {
	out := make([]model.Command, 0, len(acc))
	for _, c := range acc {
		if keep(c.Activity) {
			out = append(out, c)
		}
	}
	return out
}

// project extracts one Activity per surviving command, substituting an empty
// placeholder for commands that carry none.
func project(acc []model.Command) []model.Activity {
	out := make([]model.Activity, 0, len(acc))
	for _, c := range acc {
		if c.Activity != nil {
			out = append(out, *c.Activity)
		} else {
			out = append(out, model.EmptyActivity())
		}
	}
	return out
}
