package engine

import (
	"errors"
	"strings"

	"github.com/DoyleJ11/lol-portal/internal/build"
	"github.com/DoyleJ11/lol-portal/internal/catalog"
	"github.com/DoyleJ11/lol-portal/internal/compare"
	"github.com/DoyleJ11/lol-portal/internal/filter"
	"github.com/DoyleJ11/lol-portal/internal/konami"
	"github.com/DoyleJ11/lol-portal/internal/quiz"
)

var ErrNotFound = errors.New("champion not found")
var ErrItemNotFound = errors.New("item not found")
var ErrContentLoading = errors.New("content still loading")
var ErrUnsupportedCommand = errors.New("unsupported command")

// State is everything one visitor can change on the page.
type State struct {
	Filter  filter.State
	Compare compare.Selection
	Build   build.Inventory
	Quiz    quiz.State
	Konami  konami.Detector
	Urf     bool
}

type CommandType string

const (
	CmdSetCategory    CommandType = "SetCategory"
	CmdSetQuery       CommandType = "SetQuery"
	CmdPickSuggestion CommandType = "PickSuggestion"
	CmdSetRegion      CommandType = "SetRegion"
	CmdClearRegion    CommandType = "ClearRegion"
	CmdToggleFavorite CommandType = "ToggleFavorite"
	CmdToggleCompare  CommandType = "ToggleCompare"
	CmdClearCompare   CommandType = "ClearCompare"
	CmdAddItem        CommandType = "AddItem"
	CmdRemoveItem     CommandType = "RemoveItem"
	CmdClearBuild     CommandType = "ClearBuild"
	CmdStartQuiz      CommandType = "StartQuiz"
	CmdAnswerQuiz     CommandType = "AnswerQuiz"
	CmdRestartQuiz    CommandType = "RestartQuiz"
	CmdKeyPress       CommandType = "KeyPress"
)

/*
	SetCategory / SetQuery / PickSuggestion / SetRegion / ClearRegion -> EvtFilterChanged
	ToggleFavorite -> EvtFavoriteToggled (the session persists it)
	ToggleCompare  -> [EvtCompareEvicted] -> EvtCompareChanged
	ClearCompare   -> EvtCompareChanged
	AddItem        -> EvtItemAdded, or ErrInventoryFull
	RemoveItem     -> EvtItemRemoved
	ClearBuild     -> EvtBuildCleared
	StartQuiz / RestartQuiz -> EvtQuizStarted
	AnswerQuiz     -> EvtQuizAnswered [-> EvtQuizCompleted]
	KeyPress       -> EvtUrfActivated only when the sequence completes
*/

// Command is one visitor intent. Value carries the category, query, region,
// champion, item or key; Index carries a build slot or quiz answer.
type Command struct {
	Type  CommandType
	Value string
	Index int
}

type EventType string

const (
	EvtFilterChanged   EventType = "FilterChanged"
	EvtFavoriteToggled EventType = "FavoriteToggled"
	EvtCompareEvicted  EventType = "CompareEvicted"
	EvtCompareChanged  EventType = "CompareChanged"
	EvtItemAdded       EventType = "ItemAdded"
	EvtItemRemoved     EventType = "ItemRemoved"
	EvtBuildCleared    EventType = "BuildCleared"
	EvtQuizStarted     EventType = "QuizStarted"
	EvtQuizAnswered    EventType = "QuizAnswered"
	EvtQuizCompleted   EventType = "QuizCompleted"
	EvtUrfActivated    EventType = "UrfActivated"
)

type Event struct {
	Type  EventType
	Name  string
	Index int
}

// Apply reduces one command. On error the returned state is s unchanged.
// A nil content means the sections are still loading.
func Apply(content *catalog.Content, s State, cmd Command) ([]Event, State, error) {
	newState := s

	switch cmd.Type {
	case CmdSetCategory:
		category := strings.TrimSpace(cmd.Value)
		if category == "" {
			category = filter.CategoryAll
		}
		newState.Filter.Category = category
		return []Event{{Type: EvtFilterChanged}}, newState, nil

	case CmdSetQuery:
		newState.Filter.Query = cmd.Value
		return []Event{{Type: EvtFilterChanged}}, newState, nil

	case CmdPickSuggestion:
		champ, err := findChampion(content, cmd.Value)
		if err != nil {
			return nil, s, err
		}
		newState.Filter.Query = champ.Name
		return []Event{{Type: EvtFilterChanged, Name: champ.Name}}, newState, nil

	case CmdSetRegion:
		region := strings.TrimSpace(cmd.Value)
		newState.Filter.Region = region
		newState.Filter.RegionMembers = content.ResolveRegion(region)
		return []Event{{Type: EvtFilterChanged, Name: region}}, newState, nil

	case CmdClearRegion:
		newState.Filter.Region = ""
		newState.Filter.RegionMembers = nil
		return []Event{{Type: EvtFilterChanged}}, newState, nil

	case CmdToggleFavorite:
		champ, err := findChampion(content, cmd.Value)
		if err != nil {
			return nil, s, err
		}
		return []Event{{Type: EvtFavoriteToggled, Name: champ.Name}}, newState, nil

	case CmdToggleCompare:
		champ, err := findChampion(content, cmd.Value)
		if err != nil {
			return nil, s, err
		}
		var evicted string
		newState.Compare, evicted = s.Compare.Toggle(champ.Name, champ.Image)

		events := []Event{}
		if evicted != "" {
			events = append(events, Event{Type: EvtCompareEvicted, Name: evicted})
		}
		events = append(events, Event{Type: EvtCompareChanged, Name: champ.Name})
		return events, newState, nil

	case CmdClearCompare:
		newState.Compare = s.Compare.Clear()
		return []Event{{Type: EvtCompareChanged}}, newState, nil

	case CmdAddItem:
		if loading(content, catalog.SectionItems) {
			return nil, s, ErrContentLoading
		}
		item, ok := content.FindItem(cmd.Value)
		if !ok {
			return nil, s, ErrItemNotFound
		}
		inv, slot, err := s.Build.Add(item.Name, item.Image)
		if err != nil {
			return nil, s, err
		}
		newState.Build = inv
		return []Event{{Type: EvtItemAdded, Name: item.Name, Index: slot}}, newState, nil

	case CmdRemoveItem:
		inv, err := s.Build.Remove(cmd.Index)
		if err != nil {
			return nil, s, err
		}
		newState.Build = inv
		return []Event{{Type: EvtItemRemoved, Index: cmd.Index}}, newState, nil

	case CmdClearBuild:
		newState.Build = s.Build.Clear()
		return []Event{{Type: EvtBuildCleared}}, newState, nil

	case CmdStartQuiz, CmdRestartQuiz:
		if loading(content, catalog.SectionQuiz) {
			return nil, s, ErrContentLoading
		}
		newState.Quiz = quiz.Restart()
		events := []Event{{Type: EvtQuizStarted}}
		if newState.Quiz.Done(content.Quiz) {
			events = append(events, Event{Type: EvtQuizCompleted, Name: newState.Quiz.Winner()})
		}
		return events, newState, nil

	case CmdAnswerQuiz:
		if loading(content, catalog.SectionQuiz) {
			return nil, s, ErrContentLoading
		}
		q, err := s.Quiz.Answer(content.Quiz, cmd.Index)
		if err != nil {
			return nil, s, err
		}
		newState.Quiz = q
		events := []Event{{Type: EvtQuizAnswered, Index: cmd.Index}}
		if q.Done(content.Quiz) {
			events = append(events, Event{Type: EvtQuizCompleted, Name: q.Winner()})
		}
		return events, newState, nil

	case CmdKeyPress:
		var hit bool
		newState.Konami, hit = s.Konami.Feed(cmd.Value)
		if !hit {
			return nil, newState, nil
		}
		newState.Urf = true
		return []Event{{Type: EvtUrfActivated}}, newState, nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}

// loading is true until the section has settled, which also covers a nil
// content.
func loading(content *catalog.Content, section catalog.Section) bool {
	return content.Status(section) == catalog.StatusLoading
}

func findChampion(content *catalog.Content, name string) (catalog.Champion, error) {
	if loading(content, catalog.SectionChampions) {
		return catalog.Champion{}, ErrContentLoading
	}
	champ, ok := content.Champions.Find(name)
	if !ok {
		return catalog.Champion{}, ErrNotFound
	}
	return champ, nil
}
