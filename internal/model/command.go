package model

import "time"

// CommandType enumerates the mutations accepted by the command log.
type CommandType string

const (
	CommandNoop                 CommandType = "noop"
	CommandLoad                 CommandType = "load"
	CommandAdd                  CommandType = "add"
	CommandDelete               CommandType = "delete"
	CommandDeleteByDescription  CommandType = "deleteAllByDescription"
	CommandDeleteAllByDay       CommandType = "deleteAllByDay"
	CommandDeleteAll            CommandType = "deleteAll"
)

// Command is a mutation request against the activity log. Activity, Date and
// Description are set depending on Type: add and delete carry an Activity,
// the deleteAllBy* variants carry a Date (and Description), deleteAll and the
// control markers carry nothing.
type Command struct {
	Type        CommandType `json:"type"`
	Activity    *Activity   `json:"activity,omitempty"`
	Date        time.Time   `json:"date,omitempty"`
	Description string      `json:"description,omitempty"`
}
