package goal

// Goal is a per-project target the dashboard surfaces alongside an
// active session. A zero target means no target.
type Goal struct {
	ID            string `json:"id"`
	ProjectID     string `json:"project_id"`
	TargetMinutes int    `json:"target_minutes"`
}

// TargetSeconds returns the target in seconds, or absent when the goal
// carries no target.
func (g *Goal) TargetSeconds() *int64 {
	if g.TargetMinutes <= 0 {
		return nil
	}
	secs := int64(g.TargetMinutes) * 60
	return &secs
}
