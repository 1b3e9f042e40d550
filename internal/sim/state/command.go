package state

// Command is a simulator-level setup command, queued on an agent by
// the Worker after translating the decision engine's abstract output
// (internal/sim/translate) and dispatched one at a time as the agent
// reaches a stable phase.
type Command interface {
	isCommand()
}

// LoginCommand logs the agent in as User.
type LoginCommand struct {
	User string
}

func (LoginCommand) isCommand() {}

// LogoutCommand logs the agent out.
type LogoutCommand struct{}

func (LogoutCommand) isCommand() {}

// StartProcessCommand begins setup to work QueueID.
type StartProcessCommand struct {
	QueueID string
}

func (StartProcessCommand) isCommand() {}

// StopProcessCommand is passive: it only records intent. The agent
// keeps working its current item; the next ItemDone exits through the
// process-disabled branch instead of claiming another item.
type StopProcessCommand struct{}

func (StopProcessCommand) isCommand() {}
