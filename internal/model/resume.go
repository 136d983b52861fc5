package model

// Go models that match the resume document persisted by the store
// (content/resume.json) and edited as raw text in the editor.
//
// Optional values are pointers so that "absent" is distinguishable from
// "present but empty"; the view layer decides how either renders.

type Contact struct {
	Name     string  `json:"name"`
	Title    string  `json:"title,omitempty"`
	Website  *string `json:"website,omitempty"`
	Email    string  `json:"email,omitempty"`
	Phone    string  `json:"phone,omitempty"`
	LinkedIn string  `json:"linkedin,omitempty"`
	GitHub   string  `json:"github,omitempty"`
}

// Entry is shared by educations and projects.
type Entry struct {
	Title        string   `json:"title"`
	Role         *string  `json:"role,omitempty"`
	Date         *string  `json:"date,omitempty"`
	Descriptions []string `json:"descriptions,omitempty"`
}

type Skill struct {
	Expert       *string  `json:"expert,omitempty"`
	Proficient   *string  `json:"proficient,omitempty"`
	Low          *string  `json:"low,omitempty"`
	Name         *string  `json:"name,omitempty"`
	Descriptions []string `json:"descriptions,omitempty"`
}

type Experience struct {
	Company   string   `json:"company"`
	Role      string   `json:"role"`
	Location  string   `json:"location"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Tags      []string `json:"tags"`
	Bullets   []string `json:"bullets"`
}

type Resume struct {
	Contact     Contact      `json:"contact"`
	Summaries   []string     `json:"summaries"`
	Educations  []Entry      `json:"educations"`
	Skills      Skills       `json:"skills"`
	Experiences []Experience `json:"experiences"`
	Projects    []Entry      `json:"projects"`
}

// StringPtr is a helper for building optional fields in code and tests.
func StringPtr(s string) *string { return &s }
