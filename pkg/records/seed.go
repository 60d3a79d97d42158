package records

import "time"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func stamp(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

// SeedDataset returns the built-in sample data. Activity timestamps are
// placed relative to now.
func SeedDataset(now time.Time) Dataset {
	return Dataset{
		Checklists: SeedChecklists(),
		Reports:    SeedReports(),
		Users:      SeedUsers(),
		Videos:     SeedVideos(),
		Stats:      SeedOverviewStats(),
		Changes:    StatChange{TotalWorkers: 12, ActiveChecklists: 3, PendingReports: -2, CompletedToday: 8},
		Activity:   SeedActivity(now),
	}
}

// SeedChecklists returns the sample checklists.
func SeedChecklists() []Checklist {
	return []Checklist{
		{
			ID:          "1",
			Title:       "Daily Safety Inspection",
			Description: "Comprehensive safety check for all mining equipment and areas",
			Category:    "Safety",
			Items: []ChecklistItem{
				{ID: "1", Text: "Check helmet and protective gear", Required: true},
				{ID: "2", Text: "Inspect mining equipment", Required: true},
				{ID: "3", Text: "Verify emergency exits", Required: true},
				{ID: "4", Text: "Test communication devices", Required: true},
				{ID: "5", Text: "Check ventilation systems", Required: true},
			},
			AssignedTo:     []string{"All Workers"},
			Status:         ChecklistActive,
			CreatedAt:      date(2024, time.January, 15),
			CompletionRate: 89,
		},
		{
			ID:          "2",
			Title:       "Equipment Maintenance Check",
			Description: "Weekly maintenance verification for heavy machinery",
			Category:    "Maintenance",
			Items: []ChecklistItem{
				{ID: "1", Text: "Check hydraulic fluid levels", Required: true},
				{ID: "2", Text: "Inspect drill bits and cutting tools", Required: true},
				{ID: "3", Text: "Verify safety switches", Required: true},
				{ID: "4", Text: "Test emergency stop functions", Required: true},
			},
			AssignedTo:     []string{"Maintenance Team", "Equipment Operators"},
			Status:         ChecklistActive,
			CreatedAt:      date(2024, time.January, 10),
			CompletionRate: 76,
		},
		{
			ID:          "3",
			Title:       "Environmental Compliance",
			Description: "Monthly environmental impact assessment",
			Category:    "Environment",
			Items: []ChecklistItem{
				{ID: "1", Text: "Monitor air quality levels", Required: true},
				{ID: "2", Text: "Check water discharge quality", Required: true},
				{ID: "3", Text: "Inspect waste disposal areas", Required: true},
			},
			AssignedTo:     []string{"Environmental Team"},
			Status:         ChecklistDraft,
			CreatedAt:      date(2024, time.January, 20),
			CompletionRate: 0,
		},
	}
}

// SeedReports returns the sample reports, one per status.
func SeedReports() []Report {
	return []Report{
		{
			ID:          "1",
			Title:       "Loose rocks in Tunnel B-3",
			Type:        ReportHazard,
			Description: "Noticed several loose rocks near the entrance of Tunnel B-3 that could pose a safety risk to workers.",
			ReportedBy:  "John Doe",
			Department:  "Mining Operations",
			Priority:    PriorityHigh,
			Status:      ReportPending,
			CreatedAt:   stamp(2024, time.January, 20, 10, 30),
			Location:    "Tunnel B-3, Level 2",
			Attachments: 3,
		},
		{
			ID:          "2",
			Title:       "Equipment malfunction - Drill #7",
			Type:        ReportMaintenance,
			Description: "Drill #7 is making unusual noises and vibrating excessively during operation.",
			ReportedBy:  "Sarah Wilson",
			Department:  "Equipment Operations",
			Priority:    PriorityMedium,
			Status:      ReportUnderReview,
			CreatedAt:   stamp(2024, time.January, 19, 14, 15),
			Location:    "Main Shaft, Level 1",
			Attachments: 2,
		},
		{
			ID:          "3",
			Title:       "Minor injury - Cut on hand",
			Type:        ReportIncident,
			Description: "Worker sustained a minor cut on left hand while handling equipment. First aid was administered.",
			ReportedBy:  "Mike Johnson",
			Department:  "Safety Team",
			Priority:    PriorityMedium,
			Status:      ReportResolved,
			CreatedAt:   stamp(2024, time.January, 18, 9, 45),
			Location:    "Workshop Area",
			Attachments: 1,
		},
		{
			ID:          "4",
			Title:       "Air quality monitoring results",
			Type:        ReportCompliance,
			Description: "Monthly air quality assessment shows levels within acceptable ranges.",
			ReportedBy:  "Environmental Team",
			Department:  "Environmental",
			Priority:    PriorityLow,
			Status:      ReportClosed,
			CreatedAt:   stamp(2024, time.January, 15, 16, 20),
			Location:    "All Areas",
			Attachments: 5,
		},
	}
}

// SeedUsers returns the sample users. None of them is an admin.
func SeedUsers() []User {
	return []User{
		{
			ID:                  "1",
			Name:                "John Doe",
			Email:               "john.doe@minely.com",
			Role:                RoleWorker,
			Department:          "Mining Operations",
			Shift:               ShiftMorning,
			Status:              UserActive,
			JoinDate:            date(2023, time.June, 15),
			LastActive:          stamp(2024, time.January, 20, 14, 30),
			Certifications:      []string{"Basic Safety", "Equipment Operation"},
			CompletedChecklists: 45,
			PendingReports:      2,
		},
		{
			ID:                  "2",
			Name:                "Sarah Wilson",
			Email:               "sarah.wilson@minely.com",
			Role:                RoleSupervisor,
			Department:          "Equipment Operations",
			Shift:               ShiftAfternoon,
			Status:              UserActive,
			JoinDate:            date(2022, time.March, 10),
			LastActive:          stamp(2024, time.January, 20, 16, 45),
			Certifications:      []string{"Advanced Safety", "Team Leadership", "Equipment Maintenance"},
			CompletedChecklists: 89,
			PendingReports:      0,
		},
		{
			ID:                  "3",
			Name:                "Mike Johnson",
			Email:               "mike.johnson@minely.com",
			Role:                RoleSafetyOfficer,
			Department:          "Safety Team",
			Shift:               ShiftMorning,
			Status:              UserActive,
			JoinDate:            date(2021, time.November, 22),
			LastActive:          stamp(2024, time.January, 20, 12, 15),
			Certifications:      []string{"Safety Inspector", "Emergency Response", "Risk Assessment"},
			CompletedChecklists: 156,
			PendingReports:      1,
		},
		{
			ID:                  "4",
			Name:                "Emma Davis",
			Email:               "emma.davis@minely.com",
			Role:                RoleWorker,
			Department:          "Environmental",
			Shift:               ShiftNight,
			Status:              UserInactive,
			JoinDate:            date(2023, time.September, 5),
			LastActive:          stamp(2024, time.January, 18, 8, 20),
			Certifications:      []string{"Environmental Safety"},
			CompletedChecklists: 23,
			PendingReports:      0,
		},
	}
}

// SeedVideos returns the sample videos.
func SeedVideos() []Video {
	return []Video{
		{
			ID:          "1",
			Title:       "Mining Safety Training - Equipment Handling",
			Description: "Comprehensive guide on proper handling of mining equipment including safety protocols and best practices.",
			Category:    VideoSafety,
			Duration:    "5:30",
			Thumbnail:   "https://via.placeholder.com/300x200/FF6B35/FFFFFF?text=Safety+Training",
			UploadDate:  date(2024, time.January, 15),
			Views:       245,
			Status:      VideoActive,
			Tags:        []string{"safety", "equipment", "training"},
			UploadedBy:  "Safety Team",
		},
		{
			ID:          "2",
			Title:       "Emergency Evacuation Procedures",
			Description: "Step-by-step guide for emergency evacuation procedures in underground mining operations.",
			Category:    VideoEmergency,
			Duration:    "8:15",
			Thumbnail:   "https://via.placeholder.com/300x200/DC2626/FFFFFF?text=Emergency+Procedures",
			UploadDate:  date(2024, time.January, 10),
			Views:       189,
			Status:      VideoActive,
			Tags:        []string{"emergency", "evacuation", "safety"},
			UploadedBy:  "Emergency Response Team",
		},
		{
			ID:          "3",
			Title:       "Proper Use of Protective Equipment",
			Description: "Detailed instructions on wearing and maintaining personal protective equipment.",
			Category:    VideoTraining,
			Duration:    "6:45",
			Thumbnail:   "https://via.placeholder.com/300x200/059669/FFFFFF?text=PPE+Training",
			UploadDate:  date(2024, time.January, 8),
			Views:       312,
			Status:      VideoActive,
			Tags:        []string{"ppe", "safety", "protection"},
			UploadedBy:  "Training Department",
		},
		{
			ID:          "4",
			Title:       "Heavy Machinery Operation Guidelines",
			Description: "Operating procedures for heavy mining machinery and safety considerations.",
			Category:    VideoEquipment,
			Duration:    "12:20",
			Thumbnail:   "https://via.placeholder.com/300x200/7C3AED/FFFFFF?text=Machinery+Guide",
			UploadDate:  date(2024, time.January, 5),
			Views:       156,
			Status:      VideoDraft,
			Tags:        []string{"machinery", "operation", "guidelines"},
			UploadedBy:  "Equipment Team",
		},
	}
}

// SeedOverviewStats returns the headline dashboard counters.
func SeedOverviewStats() OverviewStats {
	return OverviewStats{
		TotalWorkers:     156,
		ActiveChecklists: 23,
		PendingReports:   8,
		CompletedToday:   45,
		SafetyScore:      94,
		IncidentsFree:    127,
	}
}

// SeedActivity returns the recent-activity feed relative to now.
func SeedActivity(now time.Time) []Activity {
	return []Activity{
		{ID: 1, Type: ActivityChecklist, Message: "Safety checklist completed by John Doe", OccurredAt: now.Add(-2 * time.Minute), Status: ActivityCompleted},
		{ID: 2, Type: ActivityReport, Message: "Hazard report submitted by Sarah Wilson", OccurredAt: now.Add(-15 * time.Minute), Status: ActivityPending},
		{ID: 3, Type: ActivityUser, Message: "New worker Mike Johnson registered", OccurredAt: now.Add(-time.Hour), Status: ActivityInfo},
		{ID: 4, Type: ActivityIncident, Message: "Minor incident reported in Sector B", OccurredAt: now.Add(-2 * time.Hour), Status: ActivityWarning},
	}
}
