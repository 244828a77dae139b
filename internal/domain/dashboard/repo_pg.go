package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) ActiveQueueCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM queue_entry
		WHERE status IN ('waiting', 'called', 'in_progress')`).Scan(&count)
	return count, err
}

func (r *repoPG) QueueByStage(ctx context.Context) ([]StageCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT current_stage, COUNT(*) FROM queue_entry
		WHERE status IN ('waiting', 'called', 'in_progress')
		GROUP BY current_stage ORDER BY current_stage`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []StageCount
	for rows.Next() {
		var sc StageCount
		if err := rows.Scan(&sc.Stage, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}

func (r *repoPG) QueueByPriority(ctx context.Context) ([]LevelCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT priority, COUNT(*) FROM queue_entry
		WHERE status IN ('waiting', 'called', 'in_progress')
		GROUP BY priority ORDER BY priority ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LevelCount
	for rows.Next() {
		var lc LevelCount
		if err := rows.Scan(&lc.Priority, &lc.Count); err != nil {
			return nil, err
		}
		out = append(out, lc)
	}
	return out, nil
}

func (r *repoPG) BedOccupancy(ctx context.Context) ([]WardOccupancy, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT w.name, COUNT(b.id), COUNT(b.id) FILTER (WHERE b.status = 'occupied')
		FROM ward w
		LEFT JOIN bed b ON b.ward_id = w.id
		GROUP BY w.name ORDER BY w.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []WardOccupancy
	for rows.Next() {
		var wo WardOccupancy
		if err := rows.Scan(&wo.WardName, &wo.Total, &wo.Occupied); err != nil {
			return nil, err
		}
		out = append(out, wo)
	}
	return out, nil
}

func (r *repoPG) AppointmentsToday(ctx context.Context) ([]StatusCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*) FROM appointment
		WHERE scheduled_at::date = CURRENT_DATE
		GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}

func (r *repoPG) RevenueToday(ctx context.Context) (int64, error) {
	var cents int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0) FROM payment
		WHERE paid_at::date = CURRENT_DATE`).Scan(&cents)
	return cents, err
}

func (r *repoPG) OpenAlertCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM alert WHERE status <> 'resolved'`).Scan(&count)
	return count, err
}
