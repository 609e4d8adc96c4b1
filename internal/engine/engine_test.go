package engine

import (
	"errors"
	"testing"

	"github.com/DoyleJ11/lol-portal/internal/build"
	"github.com/DoyleJ11/lol-portal/internal/catalog"
	"github.com/DoyleJ11/lol-portal/internal/filter"
	"github.com/DoyleJ11/lol-portal/internal/konami"
	"github.com/DoyleJ11/lol-portal/internal/quiz"
)

func testContent() *catalog.Content {
	return &catalog.Content{
		Champions: catalog.Catalog{
			{Name: "Aatrox", Category: "Fighter", Region: "Shurima", Image: "aatrox.png"},
			{Name: "Ahri", Category: "Mage", Region: "Ionia", Image: "ahri.png"},
			{Name: "Jinx", Category: "Marksman", Region: "Zaun", Image: "jinx.png"},
		},
		Regions: []catalog.Region{{Name: "Piltover & Zaun", Members: []string{"Piltover", "Zaun"}}},
		Items: []catalog.Item{
			{Name: "Infinity Edge", Image: "ie.png"},
		},
		Quiz: catalog.Quiz{Questions: []catalog.Question{
			{Text: "q1", Answers: []catalog.Answer{{Role: "Tank"}, {Role: "Mage"}}},
		}},
	}
}

func mustApply(t *testing.T, c *catalog.Content, s State, cmd Command) ([]Event, State) {
	t.Helper()
	events, next, err := Apply(c, s, cmd)
	if err != nil {
		t.Fatalf("%s: unexpected err %v", cmd.Type, err)
	}
	return events, next
}

func TestToggleCompare_EvictsOldest(t *testing.T) {
	c := testContent()
	s := NewState()

	_, s = mustApply(t, c, s, Command{Type: CmdToggleCompare, Value: "Aatrox"})
	_, s = mustApply(t, c, s, Command{Type: CmdToggleCompare, Value: "Ahri"})
	events, s := mustApply(t, c, s, Command{Type: CmdToggleCompare, Value: "Jinx"})

	evt, ok := FindEvent(events, EvtCompareEvicted)
	if !ok || evt.Name != "Aatrox" {
		t.Fatalf("want Aatrox evicted, got %+v", events)
	}
	got := s.Compare.Names()
	if len(got) != 2 || got[0] != "Ahri" || got[1] != "Jinx" {
		t.Fatalf("got %v, want [Ahri Jinx]", got)
	}
	if !s.Compare.Ready() {
		t.Fatalf("expected ready with two selections")
	}
	if s.Compare.Entries()[1].Image != "jinx.png" {
		t.Fatalf("image should come from the catalog")
	}
}

func TestUnknownChampionIsNoop(t *testing.T) {
	c := testContent()
	s := NewState()
	_, s = mustApply(t, c, s, Command{Type: CmdToggleCompare, Value: "Ahri"})

	cases := []CommandType{CmdToggleCompare, CmdToggleFavorite, CmdPickSuggestion}
	for _, ct := range cases {
		t.Run(string(ct), func(t *testing.T) {
			events, next, err := Apply(c, s, Command{Type: ct, Value: "Teemo"})
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("want ErrNotFound, got %v", err)
			}
			if events != nil || next.Compare.Len() != 1 {
				t.Fatalf("state changed on unknown champion")
			}
		})
	}
}

func TestContentLoading(t *testing.T) {
	_, _, err := Apply(nil, NewState(), Command{Type: CmdToggleCompare, Value: "Ahri"})
	if !errors.Is(err, ErrContentLoading) {
		t.Fatalf("want ErrContentLoading, got %v", err)
	}

	// filter changes do not need content
	_, s, err := Apply(nil, NewState(), Command{Type: CmdSetCategory, Value: "Mage"})
	if err != nil || s.Filter.Category != "Mage" {
		t.Fatalf("unexpected result %v %+v", err, s.Filter)
	}
}

func TestFilterCommands(t *testing.T) {
	c := testContent()
	s := NewState()

	cases := []struct {
		name  string
		cmd   Command
		check func(filter.State) bool
	}{
		{"empty category means all", Command{Type: CmdSetCategory}, func(f filter.State) bool { return f.Category == filter.CategoryAll }},
		{"query", Command{Type: CmdSetQuery, Value: "ah"}, func(f filter.State) bool { return f.Query == "ah" }},
		{"pick suggestion", Command{Type: CmdPickSuggestion, Value: "Ahri"}, func(f filter.State) bool { return f.Query == "Ahri" }},
		{"composite region uses schema", Command{Type: CmdSetRegion, Value: "Piltover & Zaun"}, func(f filter.State) bool {
			return f.Region == "Piltover & Zaun" && len(f.RegionMembers) == 2
		}},
		{"plain region", Command{Type: CmdSetRegion, Value: "Ionia"}, func(f filter.State) bool {
			return f.Region == "Ionia" && f.RegionMembers == nil
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			events, next := mustApply(t, c, s, tc.cmd)
			if !ContainsEvent(events, EvtFilterChanged) {
				t.Fatalf("expected EvtFilterChanged")
			}
			if !tc.check(next.Filter) {
				t.Fatalf("unexpected filter %+v", next.Filter)
			}
		})
	}

	_, s = mustApply(t, c, s, Command{Type: CmdSetRegion, Value: "Ionia"})
	_, s = mustApply(t, c, s, Command{Type: CmdClearRegion})
	if s.Filter.Region != "" {
		t.Fatalf("region not cleared")
	}
}

func TestToggleFavorite_EmitsEventOnly(t *testing.T) {
	events, _ := mustApply(t, testContent(), NewState(), Command{Type: CmdToggleFavorite, Value: "Jinx"})
	evt, ok := FindEvent(events, EvtFavoriteToggled)
	if !ok || evt.Name != "Jinx" {
		t.Fatalf("want EvtFavoriteToggled for Jinx, got %+v", events)
	}
}

func TestBuildCommands(t *testing.T) {
	c := testContent()
	s := NewState()

	for i := 0; i < build.SlotCount; i++ {
		events, next := mustApply(t, c, s, Command{Type: CmdAddItem, Value: "Infinity Edge"})
		if evt, _ := FindEvent(events, EvtItemAdded); evt.Index != i {
			t.Fatalf("want slot %d, got %d", i, evt.Index)
		}
		s = next
	}

	_, _, err := Apply(c, s, Command{Type: CmdAddItem, Value: "Infinity Edge"})
	if !errors.Is(err, build.ErrInventoryFull) {
		t.Fatalf("want ErrInventoryFull, got %v", err)
	}
	_, _, err = Apply(c, NewState(), Command{Type: CmdAddItem, Value: "Mejai"})
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("want ErrItemNotFound, got %v", err)
	}

	_, s = mustApply(t, c, s, Command{Type: CmdRemoveItem, Index: 2})
	if !s.Build.Slots[2].Empty() || s.Build.Count() != build.SlotCount-1 {
		t.Fatalf("slot 2 not removed: %+v", s.Build)
	}
	_, s = mustApply(t, c, s, Command{Type: CmdClearBuild})
	if s.Build.Count() != 0 {
		t.Fatalf("build not cleared")
	}
}

func TestQuizCommands(t *testing.T) {
	c := testContent()
	s := NewState()

	_, _, err := Apply(c, s, Command{Type: CmdAnswerQuiz, Index: 0})
	if !errors.Is(err, quiz.ErrNotStarted) {
		t.Fatalf("want ErrNotStarted, got %v", err)
	}

	_, s = mustApply(t, c, s, Command{Type: CmdStartQuiz})
	events, s := mustApply(t, c, s, Command{Type: CmdAnswerQuiz, Index: 1})
	evt, ok := FindEvent(events, EvtQuizCompleted)
	if !ok || evt.Name != "Mage" {
		t.Fatalf("want completion with Mage, got %+v", events)
	}

	_, s = mustApply(t, c, s, Command{Type: CmdRestartQuiz})
	if s.Quiz.Index != 0 || len(s.Quiz.Scores) != 0 {
		t.Fatalf("quiz not restarted: %+v", s.Quiz)
	}
}

func TestKeyPress_ActivatesUrf(t *testing.T) {
	s := NewState()
	var events []Event
	for _, key := range konami.Sequence {
		events, s = mustApply(t, nil, s, Command{Type: CmdKeyPress, Value: key})
	}
	if !ContainsEvent(events, EvtUrfActivated) || !s.Urf {
		t.Fatalf("expected URF mode after the full sequence")
	}
}

func TestUnsupportedCommand(t *testing.T) {
	_, _, err := Apply(testContent(), NewState(), Command{Type: "LockPick"})
	if !errors.Is(err, ErrUnsupportedCommand) {
		t.Fatalf("want ErrUnsupportedCommand, got %v", err)
	}
}
