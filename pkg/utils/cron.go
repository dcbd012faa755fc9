package utils

import (
	"time"

	"github.com/robfig/cron/v3"
)

// ScheduleParser accepts standard five field expressions and descriptors
// such as @hourly.
var ScheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// NextRun returns the first activation of expr strictly after from.
func NextRun(expr string, from time.Time) (time.Time, error) {
	schedule, err := ScheduleParser.Parse(expr)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.Next(from), nil
}
