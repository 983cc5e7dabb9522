package storage

// Repos bundles every repository over one handle, either the *sql.DB or
// the *sql.Tx of a WithTx call.
type Repos struct {
	Objectives   *ObjectiveRepo
	Progress     *ProgressRepo
	Stats        *StatsRepo
	Achievements *AchievementRepo
	DailyPool    *DailyPoolRepo
	Elite        *EliteRepo
	Markers      *MarkerRepo
}

func NewRepos(db DBTX) *Repos {
	return &Repos{
		Objectives:   NewObjectiveRepo(db),
		Progress:     NewProgressRepo(db),
		Stats:        NewStatsRepo(db),
		Achievements: NewAchievementRepo(db),
		DailyPool:    NewDailyPoolRepo(db),
		Elite:        NewEliteRepo(db),
		Markers:      NewMarkerRepo(db),
	}
}
