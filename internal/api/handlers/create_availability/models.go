package create_availability

import "github.com/m04kA/SMC-SalonService/internal/service/availabilities"

// OverlapDetails границы окна, с которым пересекается новое
type OverlapDetails struct {
	ID        string `json:"id"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func overlapDetails(e *availabilities.OverlapError) OverlapDetails {
	return OverlapDetails{
		ID:        e.ConflictID,
		Day:       string(e.Day),
		StartTime: e.StartTime.String(),
		EndTime:   e.EndTime.String(),
	}
}
