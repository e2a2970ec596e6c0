package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Teacher is the instructor assigned to a class.
type Teacher struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// ClassRoom is a scheduled class of a course.
type ClassRoom struct {
	ID          ID             `json:"id"`
	Name        string         `json:"name"`
	MaxStudents int            `json:"max_students,omitempty"`
	StartDate   string         `json:"start_date,omitempty"`
	EndDate     string         `json:"end_date,omitempty"`
	Teacher     *Teacher       `json:"teacher,omitempty"`
	Schedule    map[string]any `json:"schedule,omitempty"`
}

// Label returns the teacher name when known, the class name otherwise.
func (c ClassRoom) Label() string {
	if c.Teacher != nil && c.Teacher.Name != "" {
		return c.Teacher.Name
	}
	return c.Name
}

// ScheduleText renders the weekly schedule as "day time; day time" in key order.
func (c ClassRoom) ScheduleText() string {
	if len(c.Schedule) == 0 {
		return ""
	}
	days := make([]string, 0, len(c.Schedule))
	for day := range c.Schedule {
		days = append(days, day)
	}
	sort.Strings(days)

	parts := make([]string, 0, len(days))
	for _, day := range days {
		parts = append(parts, fmt.Sprintf("%s %v", day, c.Schedule[day]))
	}
	return strings.Join(parts, "; ")
}

// CourseModule is a unit of a course taught in a class.
type CourseModule struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Duration    Amount `json:"duration,omitempty"` // minutes
	Level       string `json:"level,omitempty"`
	Instructor  string `json:"instructor,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Active reports whether the module status is "active".
func (m CourseModule) Active() bool {
	return m.Status == "active"
}

// Lesson is a single session of a module.
type Lesson struct {
	ID             ID     `json:"id"`
	Name           string `json:"name"`
	SequenceNumber int    `json:"sequence_number,omitempty"`
	Module         ID     `json:"module,omitempty"`
	ClassRoom      ID     `json:"class_room,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// Title returns "Bài <n> - <name>" as shown on lesson headers.
func (l Lesson) Title() string {
	if l.SequenceNumber == 0 {
		return l.Name
	}
	return fmt.Sprintf("Bài %d - %s", l.SequenceNumber, l.Name)
}

// LessonGallery is the set of photos taken during a lesson.
type LessonGallery struct {
	ID        ID       `json:"id"`
	Lesson    ID       `json:"lesson,omitempty"`
	Student   ID       `json:"student,omitempty"`
	ClassRoom ID       `json:"class_room,omitempty"`
	ImageURLs []string `json:"image_urls,omitempty"`
}

// SemanticScore is one qualitative score of an evaluation.
type SemanticScore struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// LessonEvaluation is a teacher's evaluation of a student for a lesson.
type LessonEvaluation struct {
	ID             ID                       `json:"id"`
	Lesson         *Lesson                  `json:"lesson,omitempty"`
	ClassRoomName  string                   `json:"class_room_name,omitempty"`
	ModuleName     string                   `json:"module_name,omitempty"`
	Comment        string                   `json:"comment,omitempty"`
	SemanticScores map[string]SemanticScore `json:"semantic_scores,omitempty"`
}

// Scores returns the semantic scores ordered by key.
func (e LessonEvaluation) Scores() []SemanticScore {
	keys := make([]string, 0, len(e.SemanticScores))
	for k := range e.SemanticScores {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	scores := make([]SemanticScore, 0, len(keys))
	for _, k := range keys {
		scores = append(scores, e.SemanticScores[k])
	}
	return scores
}

// Attendance records a student's presence at a lesson.
type Attendance struct {
	ID            ID      `json:"id"`
	Lesson        *Lesson `json:"lesson,omitempty"`
	ClassRoomName string  `json:"class_room_name,omitempty"`
	ModuleName    string  `json:"module_name,omitempty"`
	Status        string  `json:"status,omitempty"`
}

// Slot is the nested schedule block of a time table entry.
type Slot struct {
	StartDate     string `json:"start_date,omitempty"`
	StartTime     string `json:"start_time,omitempty"`
	EndTime       string `json:"end_time,omitempty"`
	StartDateTime string `json:"start_datetime,omitempty"`
	EndDateTime   string `json:"end_datetime,omitempty"`
}

// TimeTable is one scheduled lesson slot.
type TimeTable struct {
	ID            ID     `json:"id"`
	Name          string `json:"name,omitempty"`
	Subject       string `json:"subject,omitempty"`
	CourseName    string `json:"course_name,omitempty"`
	Description   string `json:"description,omitempty"`
	TeacherName   string `json:"teacher_name,omitempty"`
	Instructor    string `json:"instructor,omitempty"`
	Room          string `json:"room,omitempty"`
	Location      string `json:"location,omitempty"`
	Time          string `json:"time,omitempty"`
	Date          string `json:"date,omitempty"`
	StartDateTime string `json:"start_datetime,omitempty"`
	EndDateTime   string `json:"end_datetime,omitempty"`
	Schedule      *Slot  `json:"schedule,omitempty"`
}

// SlotStatus classifies a time table entry relative to now.
type SlotStatus string

const (
	SlotUpcoming SlotStatus = "upcoming"
	SlotOngoing  SlotStatus = "ongoing"
	SlotPast     SlotStatus = "past"
	SlotUnknown  SlotStatus = "unknown"
)

// Title returns the first non-empty of subject, course name and name.
func (t TimeTable) Title() string {
	return firstNonEmpty(t.Subject, t.CourseName, t.Name)
}

// Teaching returns the first non-empty of description, teacher name and instructor.
func (t TimeTable) Teaching() string {
	return firstNonEmpty(t.Description, t.TeacherName, t.Instructor)
}

// Place returns the room, falling back to location.
func (t TimeTable) Place() string {
	return firstNonEmpty(t.Room, t.Location)
}

// Day returns the slot date, preferring the nested schedule.
func (t TimeTable) Day() string {
	if t.Schedule != nil && t.Schedule.StartDate != "" {
		return t.Schedule.StartDate
	}
	return t.Date
}

// Hours returns "start-end" from the nested schedule, falling back to time.
func (t TimeTable) Hours() string {
	if t.Time != "" {
		return t.Time
	}
	if t.Schedule != nil && t.Schedule.StartTime != "" && t.Schedule.EndTime != "" {
		return t.Schedule.StartTime + "-" + t.Schedule.EndTime
	}
	return ""
}

// Status classifies the slot against now.
func (t TimeTable) Status(now time.Time) SlotStatus {
	startRaw, endRaw := t.StartDateTime, t.EndDateTime
	if t.Schedule != nil {
		startRaw = firstNonEmpty(startRaw, t.Schedule.StartDateTime)
		endRaw = firstNonEmpty(endRaw, t.Schedule.EndDateTime)
	}
	start, okStart := parseTimestamp(startRaw)
	end, okEnd := parseTimestamp(endRaw)
	if !okStart || !okEnd {
		return SlotUnknown
	}
	switch {
	case now.Before(start):
		return SlotUpcoming
	case !now.After(end):
		return SlotOngoing
	default:
		return SlotPast
	}
}

// OnDay reports whether the slot falls on day. Both day and the slot date
// may be "dd/mm/yyyy", "dd/mm" or "dd-mm"; only day and month are compared.
func (t TimeTable) OnDay(day string) bool {
	slot := dayMonth(t.Day())
	return slot != "" && slot == dayMonth(day)
}

func dayMonth(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return ts.Format("02-01")
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) < 2 {
		return ""
	}
	return pad2(parts[0]) + "-" + pad2(parts[1])
}

func pad2(s string) string {
	if len(s) < 2 {
		return strings.Repeat("0", 2-len(s)) + s
	}
	return s
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
