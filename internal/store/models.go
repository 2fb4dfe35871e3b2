package store

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

type SessionType string

const (
	SessionFocused  SessionType = "focused"
	SessionReview   SessionType = "review"
	SessionBreak    SessionType = "break"
	SessionResearch SessionType = "research"
)

type GoalType string

const (
	GoalDaily   GoalType = "daily"
	GoalWeekly  GoalType = "weekly"
	GoalMonthly GoalType = "monthly"
	GoalCustom  GoalType = "custom"
)

// Assignment is a unit of work. Subject holds the subject's name, not its id.
type Assignment struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Subject       string           `json:"subject"`
	DueDate       time.Time        `json:"dueDate"`
	Priority      Priority         `json:"priority"`
	Status        Status           `json:"status"`
	Description   string           `json:"description"`
	EstimatedTime int              `json:"estimatedTime"` // minutes
	ActualTime    *int             `json:"actualTime,omitempty"`
	Grade         *float64         `json:"grade,omitempty"`
	Attachments   []FileAttachment `json:"attachments,omitempty"`
	Tags          []string         `json:"tags"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	CompletedAt   *time.Time       `json:"completedAt,omitempty"`
	Notes         string           `json:"notes"`
	Dependencies  []string         `json:"dependencies,omitempty"`
	ReminderSet   bool             `json:"reminderSet"`
	ReminderTime  *time.Time       `json:"reminderTime,omitempty"`
}

type FileAttachment struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type Subject struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Color        string          `json:"color"`
	Teacher      string          `json:"teacher"`
	Credits      int             `json:"credits"`
	CurrentGrade *float64        `json:"currentGrade,omitempty"`
	TargetGrade  *float64        `json:"targetGrade,omitempty"`
	Room         string          `json:"room,omitempty"`
	Schedule     []ClassSchedule `json:"schedule,omitempty"`
	Syllabus     string          `json:"syllabus,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type ClassSchedule struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Location  string `json:"location,omitempty"`
}

type StudySession struct {
	ID           string      `json:"id"`
	AssignmentID string      `json:"assignmentId,omitempty"`
	SubjectID    string      `json:"subjectId,omitempty"`
	Duration     int64       `json:"duration"` // seconds
	Date         time.Time   `json:"date"`
	Notes        string      `json:"notes"`
	Type         SessionType `json:"type"`
	Productivity int         `json:"productivity"`
	Distractions int         `json:"distractions"`
}

type StudyGoal struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	TargetValue  float64   `json:"targetValue"`
	CurrentValue float64   `json:"currentValue"`
	Unit         string    `json:"unit"`
	Deadline     time.Time `json:"deadline"`
	Type         GoalType  `json:"type"`
	IsCompleted  bool      `json:"isCompleted"`
	CreatedAt    time.Time `json:"createdAt"`
}

type NotificationSettings struct {
	Assignments    bool `json:"assignments"`
	StudyReminders bool `json:"studyReminders"`
	Goals          bool `json:"goals"`
	Email          bool `json:"email"`
	Push           bool `json:"push"`
}

type StudyPreferences struct {
	PomodoroLength     int  `json:"pomodoroLength"` // minutes
	ShortBreakLength   int  `json:"shortBreakLength"`
	LongBreakLength    int  `json:"longBreakLength"`
	AutoStartBreaks    bool `json:"autoStartBreaks"`
	AutoStartPomodoros bool `json:"autoStartPomodoros"`
}

type UserSettings struct {
	Theme            string               `json:"theme"` // light, dark, system
	Notifications    NotificationSettings `json:"notifications"`
	StudyPreferences StudyPreferences     `json:"studyPreferences"`
	DefaultView      string               `json:"defaultView"`
	TimeFormat       string               `json:"timeFormat"` // 12h, 24h
	WeekStartsOn     int                  `json:"weekStartsOn"`
	Language         string               `json:"language"`
}
