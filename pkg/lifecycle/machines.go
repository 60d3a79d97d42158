package lifecycle

import "github.com/minely/moderator/pkg/records"

// Action labels shown on status buttons.
const (
	ActionReview  = "Review"
	ActionResolve = "Resolve"
	ActionClose   = "Close"
	ActionPublish = "Publish"
	ActionArchive = "Archive"
)

// ReportTransitions are the forward moves of a report.
var ReportTransitions = []TransitionRule[records.ReportStatus]{
	{From: records.ReportPending, To: records.ReportUnderReview, Action: ActionReview},
	{From: records.ReportPending, To: records.ReportResolved, Action: ActionResolve},
	{From: records.ReportUnderReview, To: records.ReportResolved, Action: ActionResolve},
	{From: records.ReportResolved, To: records.ReportClosed, Action: ActionClose},
}

// ReportDisallowed are the backward moves of a report.
var ReportDisallowed = map[records.ReportStatus][]records.ReportStatus{
	records.ReportUnderReview: {records.ReportPending},
	records.ReportResolved:    {records.ReportPending, records.ReportUnderReview},
	records.ReportClosed:      {records.ReportPending, records.ReportUnderReview, records.ReportResolved},
}

// VideoTransitions are the forward moves of a video.
var VideoTransitions = []TransitionRule[records.VideoStatus]{
	{From: records.VideoDraft, To: records.VideoActive, Action: ActionPublish},
	{From: records.VideoActive, To: records.VideoArchived, Action: ActionArchive},
}

// VideoDisallowed are the backward moves of a video.
var VideoDisallowed = map[records.VideoStatus][]records.VideoStatus{
	records.VideoActive:   {records.VideoDraft},
	records.VideoArchived: {records.VideoDraft, records.VideoActive},
}

// ReportMachine returns the report status machine.
func ReportMachine() *Machine[records.ReportStatus] {
	return NewMachine(records.ReportStatuses, ReportTransitions, ReportDisallowed)
}

// VideoMachine returns the video status machine.
func VideoMachine() *Machine[records.VideoStatus] {
	return NewMachine(records.VideoStatuses, VideoTransitions, VideoDisallowed)
}
