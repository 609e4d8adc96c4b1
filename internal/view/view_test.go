package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/lol-portal/internal/catalog"
	"github.com/DoyleJ11/lol-portal/internal/engine"
	"github.com/DoyleJ11/lol-portal/pkg/types"
)

type favSet []string

func (f favSet) IsFavorite(name string) bool {
	for _, n := range f {
		if n == name {
			return true
		}
	}
	return false
}

func (f favSet) Names() []string { return f }

func content() *catalog.Content {
	return &catalog.Content{
		Champions: catalog.Catalog{
			{Name: "Aatrox", Category: "Fighter", Region: "Shurima", Image: "a.png"},
			{Name: "Ahri", Category: "Mage", Region: "Ionia", Image: "h.png"},
			{Name: "Zed", Category: "Assassin", Region: "Ionia", Image: "z.png"},
		},
		Quiz: catalog.Quiz{Questions: []catalog.Question{
			{Text: "Pick one", Answers: []catalog.Answer{{Text: "Shield", Role: "Tank"}, {Text: "Staff", Role: "Mage"}}},
		}},
	}
}

func apply(t *testing.T, c *catalog.Content, s engine.State, cmds ...engine.Command) engine.State {
	t.Helper()
	for _, cmd := range cmds {
		var err error
		_, s, err = engine.Apply(c, s, cmd)
		require.NoError(t, err)
	}
	return s
}

func TestBuild_LoadingVersusEmpty(t *testing.T) {
	snap := Build(nil, engine.NewState(), nil)
	assert.Equal(t, types.ListLoading, snap.Status)
	assert.Empty(t, snap.Champions)

	c := content()
	s := apply(t, c, engine.NewState(), engine.Command{Type: engine.CmdSetCategory, Value: "Tank"})
	snap = Build(c, s, nil)
	assert.Equal(t, types.ListEmpty, snap.Status)
	assert.NotNil(t, snap.Champions)
}

func TestBuild_MarksFollowState(t *testing.T) {
	c := content()
	s := apply(t, c, engine.NewState(),
		engine.Command{Type: engine.CmdToggleCompare, Value: "Ahri"},
		engine.Command{Type: engine.CmdToggleCompare, Value: "Zed"},
		engine.Command{Type: engine.CmdToggleCompare, Value: "Aatrox"},
	)

	snap := Build(c, s, favSet{"Zed"})
	require.Equal(t, types.ListReady, snap.Status)

	selected := map[string]bool{}
	for _, card := range snap.Champions {
		selected[card.Name] = card.Selected
		if card.Name == "Zed" {
			assert.True(t, card.Favorite)
		}
	}
	assert.Equal(t, map[string]bool{"Aatrox": true, "Ahri": false, "Zed": true}, selected)

	assert.True(t, snap.Compare.Ready)
	assert.Equal(t, "Zed", snap.Compare.Slots[0].Name)
	assert.Equal(t, "Aatrox", snap.Compare.Slots[1].Name)
	assert.Equal(t, []string{"Zed"}, snap.Favorites)
}

func TestBuild_FavoritesCategory(t *testing.T) {
	c := content()
	s := apply(t, c, engine.NewState(), engine.Command{Type: engine.CmdSetCategory, Value: "favorites"})

	snap := Build(c, s, favSet{"Ahri", "Ghost"})
	require.Len(t, snap.Champions, 1, "unknown favorites are inert")
	assert.Equal(t, "Ahri", snap.Champions[0].Name)
	assert.Equal(t, "M", snap.Champions[0].Initial)
}

func TestBuild_SuggestionsAndQuiz(t *testing.T) {
	c := content()
	s := apply(t, c, engine.NewState(),
		engine.Command{Type: engine.CmdSetQuery, Value: "a"},
		engine.Command{Type: engine.CmdStartQuiz},
	)

	snap := Build(c, s, nil)
	assert.Equal(t, []types.Suggestion{{Name: "Aatrox", Image: "a.png"}, {Name: "Ahri", Image: "h.png"}}, snap.Suggestions)
	assert.Equal(t, "Pick one", snap.Quiz.Question)
	assert.Equal(t, []string{"Shield", "Staff"}, snap.Quiz.Answers)

	s = apply(t, c, s, engine.Command{Type: engine.CmdAnswerQuiz, Index: 1})
	snap = Build(c, s, nil)
	assert.True(t, snap.Quiz.Done)
	assert.Equal(t, "Mage", snap.Quiz.Result)
}

func TestBuild_BuildSlots(t *testing.T) {
	snap := Build(content(), engine.NewState(), nil)
	assert.Len(t, snap.Build.Slots, 6)
	assert.False(t, snap.Build.Full)
	assert.Len(t, snap.Compare.Slots, 2)
	assert.False(t, snap.Compare.Active)
}
