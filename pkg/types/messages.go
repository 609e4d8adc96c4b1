package types

// Client -> Server (one JSON object per intent)
// SetCategory:
//   value: "all" | "favorites" | <category>
//
// SetQuery:
//   value: string
//
// PickSuggestion / ToggleFavorite / ToggleCompare:
//   value: champion name
//
// SetRegion:
//   value: region name, composite regions like "Piltover & Zaun" allowed
//
// ClearRegion / ClearCompare / ClearBuild / StartQuiz / RestartQuiz: {}
//
// AddItem:
//   value: item name
//
// RemoveItem:
//   index: build slot 0..5
//
// AnswerQuiz:
//   index: answer position in the current question
//
// KeyPress:
//   value: KeyboardEvent.key

// Server -> Client
// StateSnapshot:
//   version: number (bumped on every accepted intent)
//   snapshot: see Snapshot
//   error: string, set only on the copy sent to the visitor whose intent
//          was rejected; the snapshot is then unchanged
//
// Error (malformed or unknown message):
//   error: string
