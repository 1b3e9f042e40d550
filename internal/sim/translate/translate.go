// Package translate implements the Command Translator (C15): it maps
// the decision engine's abstract commands onto the simulator's
// dispatchable commands, using the target queue's owning user and id.
package translate

import (
	enginestate "github.com/dennisdiepolder/workforcesim/internal/engine/state"
	simstate "github.com/dennisdiepolder/workforcesim/internal/sim/state"
)

// ToSimCommands translates one assignment's abstract command sequence.
// CmdEmpty is omitted rather than translated to a no-op.
func ToSimCommands(commands []enginestate.Command, target *enginestate.Queue) []simstate.Command {
	out := make([]simstate.Command, 0, len(commands))
	for _, c := range commands {
		switch c {
		case enginestate.CmdLogin:
			out = append(out, simstate.LoginCommand{User: target.OwnerUserID})
		case enginestate.CmdLogout:
			out = append(out, simstate.LogoutCommand{})
		case enginestate.CmdExecuteQueue:
			out = append(out, simstate.StartProcessCommand{QueueID: target.ID})
		case enginestate.CmdEmpty:
			// no transition required
		}
	}
	return out
}
