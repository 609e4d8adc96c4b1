// Package konami detects the Konami code in a stream of key presses.
package konami

// Sequence is ↑ ↑ ↓ ↓ ← → ← → B A, using DOM KeyboardEvent.key names.
var Sequence = []string{
	"ArrowUp", "ArrowUp", "ArrowDown", "ArrowDown",
	"ArrowLeft", "ArrowRight", "ArrowLeft", "ArrowRight",
	"b", "a",
}

// Detector tracks how much of the sequence has been typed.
type Detector struct {
	Cursor int `json:"cursor"`
}

// Feed consumes one key. It returns true when the key completes the
// sequence; the detector then starts over. A wrong key resets it.
func (d Detector) Feed(key string) (Detector, bool) {
	if d.Cursor < len(Sequence) && key == Sequence[d.Cursor] {
		d.Cursor++
		if d.Cursor == len(Sequence) {
			return Detector{}, true
		}
		return d, false
	}
	return Detector{}, false
}
