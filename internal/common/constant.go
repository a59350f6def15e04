// Package common contains shared constants and the error taxonomy used across
// progressboard components.
package common

// PassThreshold is the lowest grade that counts as a pass. Grades below it
// are failures; an absent grade means the activity is still in progress.
const PassThreshold = 1.0

// ProjectType is the object type of an evaluated project.
const ProjectType = "project"

// ExerciseType is the object type excluded from experience totals.
const ExerciseType = "exercise"
