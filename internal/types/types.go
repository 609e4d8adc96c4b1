package types

import (
	"fmt"

	"github.com/DoyleJ11/lol-portal/internal/engine"
	pagetypes "github.com/DoyleJ11/lol-portal/pkg/types"
)

type ClientMessage struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
	Index int    `json:"index,omitempty"`
}

type ServerMessage struct {
	Type     string              `json:"type"` // "StateSnapshot" | "Error"
	Version  int                 `json:"version,omitempty"`
	Snapshot *pagetypes.Snapshot `json:"snapshot,omitempty"`
	Error    string              `json:"error,omitempty"`
}

const (
	MsgStateSnapshot = "StateSnapshot"
	MsgError         = "Error"
)

var commandTypes = map[string]engine.CommandType{
	string(engine.CmdSetCategory):    engine.CmdSetCategory,
	string(engine.CmdSetQuery):       engine.CmdSetQuery,
	string(engine.CmdPickSuggestion): engine.CmdPickSuggestion,
	string(engine.CmdSetRegion):      engine.CmdSetRegion,
	string(engine.CmdClearRegion):    engine.CmdClearRegion,
	string(engine.CmdToggleFavorite): engine.CmdToggleFavorite,
	string(engine.CmdToggleCompare):  engine.CmdToggleCompare,
	string(engine.CmdClearCompare):   engine.CmdClearCompare,
	string(engine.CmdAddItem):        engine.CmdAddItem,
	string(engine.CmdRemoveItem):     engine.CmdRemoveItem,
	string(engine.CmdClearBuild):     engine.CmdClearBuild,
	string(engine.CmdStartQuiz):      engine.CmdStartQuiz,
	string(engine.CmdAnswerQuiz):     engine.CmdAnswerQuiz,
	string(engine.CmdRestartQuiz):    engine.CmdRestartQuiz,
	string(engine.CmdKeyPress):       engine.CmdKeyPress,
}

// ToCommand maps a wire intent onto an engine command.
func (m ClientMessage) ToCommand() (engine.Command, error) {
	t, ok := commandTypes[m.Type]
	if !ok {
		return engine.Command{}, fmt.Errorf("%w: %q", engine.ErrUnsupportedCommand, m.Type)
	}
	return engine.Command{Type: t, Value: m.Value, Index: m.Index}, nil
}

func SnapshotMessage(version int, page pagetypes.Snapshot, errMsg string) ServerMessage {
	page.Version = version
	return ServerMessage{Type: MsgStateSnapshot, Version: version, Snapshot: &page, Error: errMsg}
}

func ErrorMessage(err string) ServerMessage {
	return ServerMessage{Type: MsgError, Error: err}
}
