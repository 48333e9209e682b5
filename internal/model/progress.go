package model

// Stage identifies a fixed checkpoint within a search operation. Progress
// reporting is purely observational and never affects control flow.
type Stage string

const (
	StageSearching  Stage = "searching"
	StageParsing    Stage = "parsing"
	StageFastPath   Stage = "fast_path"
	StageReviews    Stage = "reviews"
	StageValidating Stage = "validating"
	StageScoring    Stage = "scoring"
	StageComplete   Stage = "complete"
)

// ProgressFunc receives stage checkpoints with a human-readable note.
type ProgressFunc func(stage Stage, note string)
