package domain

// ─── Learning Types ─────────────────────────────────────────────────────────

// LearningStatus tracks how far a topic has been absorbed.
type LearningStatus string

const (
	StatusNotStarted   LearningStatus = "not_started"
	StatusInProgress   LearningStatus = "in_progress"
	StatusInternalized LearningStatus = "internalized"
)

// LearningItem is a system-design topic being studied.
// Topic acts as a natural key within a user's scope.
type LearningItem struct {
	ID               string         `json:"id"`
	Topic            string         `json:"topic"`
	Status           LearningStatus `json:"status"`
	Explanation      string         `json:"explanation,omitempty"`
	RealWorldMapping string         `json:"realWorldMapping,omitempty"`
}

// ProblemType classifies solved problems.
type ProblemType string

const (
	ProblemDSA       ProblemType = "dsa"
	ProblemDebugging ProblemType = "debugging"
	ProblemRealWorld ProblemType = "real_world"
)

// Difficulty is the self-assessed problem difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ProblemItem is a coding/debugging problem on the grind list.
// Explanation is expected once solved but not enforced here.
type ProblemItem struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        ProblemType `json:"type"`
	Difficulty  Difficulty  `json:"difficulty"`
	Solved      bool        `json:"solved"`
	Explanation string      `json:"explanation,omitempty"`
}

// ─── Communication Types ────────────────────────────────────────────────────

// PracticeType distinguishes written from verbal practice.
type PracticeType string

const (
	PracticeWritten PracticeType = "written"
	PracticeVerbal  PracticeType = "verbal"
)

// PracticeEntry is one communication practice session.
type PracticeEntry struct {
	ID      string       `json:"id"`
	Date    string       `json:"date"` // YYYY-MM-DD
	Type    PracticeType `json:"type"`
	Content string       `json:"content,omitempty"`
}

// NoteCategory groups free-form communication notes.
type NoteCategory string

const (
	NoteOffice       NoteCategory = "office"
	NoteCasual       NoteCategory = "casual"
	NoteRelationship NoteCategory = "relationship"
)

// Note is a free-form communication note.
type Note struct {
	ID       string       `json:"id"`
	Category NoteCategory `json:"category"`
	Content  string       `json:"content"`
}
