package dashboard

// Summary is the operational snapshot served to the front desk board. Every
// number is computed fresh from SQL on each request; nothing is cached.
type Summary struct {
	Queue        QueueStats      `json:"queue"`
	BedOccupancy []WardOccupancy `json:"bed_occupancy"`
	Appointments []StatusCount   `json:"appointments_today"`
	RevenueCents int64           `json:"revenue_today_cents"`
	OpenAlerts   int             `json:"open_alerts"`
}

type QueueStats struct {
	Active     int          `json:"active"`
	ByStage    []StageCount `json:"by_stage"`
	ByPriority []LevelCount `json:"by_priority"`
}

type StageCount struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

type LevelCount struct {
	Priority int `json:"priority"`
	Count    int `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type WardOccupancy struct {
	WardName string `json:"ward_name"`
	Total    int    `json:"total"`
	Occupied int    `json:"occupied"`
}
