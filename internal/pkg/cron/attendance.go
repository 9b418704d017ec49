package cron

import (
	"context"
	"log/slog"
	"time"

	attendancesvc "github.com/hrms-core/hrms-backend-go/internal/service/attendance"
)

type AttendanceJobs struct {
	attendanceService *attendancesvc.Service
}

func NewAttendanceJobs(attendanceService *attendancesvc.Service) *AttendanceJobs {
	return &AttendanceJobs{attendanceService: attendanceService}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_mark_attendance", 1*time.Hour, j.AutoMarkYesterday)
}

// AutoMarkYesterday closes dangling check-ins and marks absentees for
// the previous day. Only runs during the midnight hour (00:00-00:59 UTC)
// so each day is swept exactly once.
func (j *AttendanceJobs) AutoMarkYesterday(ctx context.Context) error {
	now := time.Now().UTC()
	if now.Hour() != 0 {
		return nil
	}

	yesterday := now.AddDate(0, 0, -1)
	slog.Info("Cron: Starting attendance auto-mark job", "date", yesterday.Format("2006-01-02"))
	return j.attendanceService.AutoMarkDay(ctx, yesterday)
}
