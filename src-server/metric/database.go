package metric

import (
	"context"
	"famcal/src-server/model"
	"famcal/src-server/utils"
	"time"
)

func database(as *utils.AppState) (time.Duration, error) {
	start := time.Now()
	if _, err := as.BunDB.NewSelect().
		Model((*model.Event)(nil)).
		Where("created_by_id = ?", "").
		Exists(context.Background()); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

func statusCounts(as *utils.AppState) (map[model.EventStatus]int, error) {
	counts := map[model.EventStatus]int{
		model.StatusPending:  0,
		model.StatusApproved: 0,
		model.StatusRejected: 0,
	}
	var rows []struct {
		Status model.EventStatus `bun:"status"`
		Count  int               `bun:"count"`
	}
	if err := as.BunDB.NewSelect().
		Model((*model.Event)(nil)).
		ColumnExpr("status").
		ColumnExpr("count(*) AS count").
		Group("status").
		Scan(context.Background(), &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
