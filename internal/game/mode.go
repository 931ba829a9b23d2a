package game

// Mode is a named difficulty preset.
type Mode struct {
	Name  string
	Rows  int
	Cols  int
	Mines int
}

var (
	Beginner     = Mode{Name: "beginner", Rows: 9, Cols: 9, Mines: 10}
	Intermediate = Mode{Name: "intermediate", Rows: 16, Cols: 16, Mines: 40}
	Expert       = Mode{Name: "expert", Rows: 16, Cols: 30, Mines: 99}
)

var presets = []Mode{Beginner, Intermediate, Expert}

// Modes returns the preset table in menu order.
func Modes() []Mode {
	out := make([]Mode, len(presets))
	copy(out, presets)
	return out
}

// ModeByName looks up a preset by its name.
func ModeByName(name string) (Mode, bool) {
	for _, m := range presets {
		if m.Name == name {
			return m, true
		}
	}
	return Mode{}, false
}

// Cells is the total number of squares.
func (m Mode) Cells() int { return m.Rows * m.Cols }

// SafeCells is the number of squares that must be revealed to win.
func (m Mode) SafeCells() int { return m.Cells() - m.Mines }
