package translate

import (
	"testing"

	enginestate "github.com/dennisdiepolder/workforcesim/internal/engine/state"
	simstate "github.com/dennisdiepolder/workforcesim/internal/sim/state"
)

func TestToSimCommandsMapsEachCommand(t *testing.T) {
	target := &enginestate.Queue{ID: "queue-1", OwnerUserID: "svc-1"}
	commands := []enginestate.Command{enginestate.CmdLogin, enginestate.CmdExecuteQueue}

	got := ToSimCommands(commands, target)
	if len(got) != 2 {
		t.Fatalf("expected 2 translated commands, got %d", len(got))
	}
	login, ok := got[0].(simstate.LoginCommand)
	if !ok || login.User != "svc-1" {
		t.Errorf("expected LoginCommand{User: svc-1}, got %v", got[0])
	}
	start, ok := got[1].(simstate.StartProcessCommand)
	if !ok || start.QueueID != "queue-1" {
		t.Errorf("expected StartProcessCommand{QueueID: queue-1}, got %v", got[1])
	}
}

func TestToSimCommandsOmitsEmpty(t *testing.T) {
	target := &enginestate.Queue{ID: "queue-1"}
	got := ToSimCommands([]enginestate.Command{enginestate.CmdEmpty}, target)
	if len(got) != 0 {
		t.Errorf("expected CmdEmpty to be omitted, got %v", got)
	}
}

func TestToSimCommandsLogoutAndLogin(t *testing.T) {
	target := &enginestate.Queue{ID: "queue-2", OwnerUserID: "svc-2"}
	got := ToSimCommands([]enginestate.Command{enginestate.CmdLogout, enginestate.CmdLogin, enginestate.CmdExecuteQueue}, target)
	if len(got) != 3 {
		t.Fatalf("expected 3 translated commands, got %d", len(got))
	}
	if _, ok := got[0].(simstate.LogoutCommand); !ok {
		t.Errorf("expected first command to be LogoutCommand, got %T", got[0])
	}
}
