package dashboard

import "context"

type Repository interface {
	ActiveQueueCount(ctx context.Context) (int, error)
	QueueByStage(ctx context.Context) ([]StageCount, error)
	QueueByPriority(ctx context.Context) ([]LevelCount, error)
	BedOccupancy(ctx context.Context) ([]WardOccupancy, error)
	AppointmentsToday(ctx context.Context) ([]StatusCount, error)
	RevenueToday(ctx context.Context) (int64, error)
	OpenAlertCount(ctx context.Context) (int, error)
}
