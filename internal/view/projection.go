// Package view derives the printable page structure from a validated resume
// and renders it to HTML.
//
// Project is pure and total: every optional or blank field of a document that
// passed model.Parse is simply left out of the page. Input order is kept for
// every list; nothing is sorted.
package view

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"resume-editor/internal/model"
)

const (
	SkillsHeading    = "Areas of Expertise"
	ProjectsHeading  = "Personal Ventures"
	EducationHeading = "Education"
)

type Link struct {
	Kind  string `json:"kind"`
	Href  string `json:"href"`
	Label string `json:"label"`
	Host  string `json:"host,omitempty"`
}

type Contact struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	Links []Link `json:"links"`
}

type SkillLevel struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type SkillGroup struct {
	Category     string       `json:"category"`
	Levels       []SkillLevel `json:"levels"`
	Descriptions []string     `json:"descriptions"`
}

type Item struct {
	Title        string   `json:"title"`
	Role         string   `json:"role,omitempty"`
	Date         string   `json:"date,omitempty"`
	Descriptions []string `json:"descriptions"`
}

type Section struct {
	Heading string `json:"heading"`
	Items   []Item `json:"items"`
}

type Job struct {
	Company string   `json:"company"`
	Role    string   `json:"role,omitempty"`
	Meta    string   `json:"meta,omitempty"`
	Tags    []string `json:"tags"`
	Bullets []string `json:"bullets"`
}

type SkillsSection struct {
	Heading string       `json:"heading"`
	Groups  []SkillGroup `json:"groups"`
}

// Page is everything the print layout needs, in display order per column.
type Page struct {
	DocumentTitle string        `json:"documentTitle"`
	Contact       Contact       `json:"contact"`
	Skills        SkillsSection `json:"skills"`
	Projects      Section       `json:"projects"`
	Education     Section       `json:"education"`
	Summaries     []string      `json:"summaries"`
	Experiences   []Job         `json:"experiences"`
}

// Project maps a validated resume to its page. A nil resume yields the zero
// Page.
func Project(r *model.Resume) Page {
	if r == nil {
		return Page{}
	}
	return Page{
		DocumentTitle: DocumentTitle(r.Contact.Name),
		Contact:       projectContact(r.Contact),
		Skills:        SkillsSection{Heading: SkillsHeading, Groups: projectSkills(r.Skills)},
		Projects:      Section{Heading: ProjectsHeading, Items: projectEntries(r.Projects)},
		Education:     Section{Heading: EducationHeading, Items: projectEntries(r.Educations)},
		Summaries:     nonBlank(r.Summaries),
		Experiences:   projectExperiences(r.Experiences),
	}
}

// DocumentTitle is the file name suggested when printing: the contact name
// without whitespace, suffixed with _Resume.
func DocumentTitle(name string) string {
	compact := strings.Join(strings.Fields(name), "")
	if compact == "" {
		return "Resume"
	}
	return compact + "_Resume"
}

func projectContact(c model.Contact) Contact {
	out := Contact{Name: c.Name, Title: strings.TrimSpace(c.Title), Links: []Link{}}

	if c.Website != nil && strings.TrimSpace(*c.Website) != "" {
		out.Links = append(out.Links, webLink("website", strings.TrimSpace(*c.Website)))
	}
	if email := strings.TrimSpace(c.Email); email != "" {
		out.Links = append(out.Links, Link{Kind: "email", Href: "mailto:" + email, Label: email})
	}
	if phone := strings.TrimSpace(c.Phone); phone != "" {
		l := Link{Kind: "phone", Label: phone}
		if digits := digitsOnly(phone); digits != "" {
			l.Href = "tel:" + digits
		}
		out.Links = append(out.Links, l)
	}
	if li := strings.TrimSpace(c.LinkedIn); li != "" {
		out.Links = append(out.Links, webLink("linkedin", li))
	}
	if gh := strings.TrimSpace(c.GitHub); gh != "" {
		out.Links = append(out.Links, webLink("github", gh))
	}
	return out
}

// webLink builds an external link. The label drops "www." and "https://" the
// way the printed layout shows addresses; Host is the registrable domain.
func webLink(kind, raw string) Link {
	href := raw
	if !strings.Contains(href, "://") {
		href = "https://" + href
	}
	label := strings.Replace(raw, "www.", "", 1)
	label = strings.Replace(label, "https://", "", 1)
	return Link{Kind: kind, Href: href, Label: label, Host: hostLabel(href)}
}

func hostLabel(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	host := parsed.Hostname()
	if host == "" {
		return ""
	}
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func projectSkills(skills model.Skills) []SkillGroup {
	out := make([]SkillGroup, 0, len(skills))
	for _, c := range skills {
		g := SkillGroup{Category: c.Name, Levels: []SkillLevel{}, Descriptions: nonBlank(c.Skill.Descriptions)}
		for _, lvl := range []struct {
			label string
			text  *string
		}{
			{"Expert", c.Skill.Expert},
			{"Proficient", c.Skill.Proficient},
			{"Low", c.Skill.Low},
		} {
			if lvl.text == nil || strings.TrimSpace(*lvl.text) == "" {
				continue
			}
			g.Levels = append(g.Levels, SkillLevel{Label: lvl.label, Text: *lvl.text})
		}
		out = append(out, g)
	}
	return out
}

func projectEntries(entries []model.Entry) []Item {
	out := make([]Item, 0, len(entries))
	for _, e := range entries {
		out = append(out, Item{
			Title:        e.Title,
			Role:         deref(e.Role),
			Date:         deref(e.Date),
			Descriptions: nonBlank(e.Descriptions),
		})
	}
	return out
}

func projectExperiences(exps []model.Experience) []Job {
	out := make([]Job, 0, len(exps))
	for _, x := range exps {
		out = append(out, Job{
			Company: x.Company,
			Role:    strings.TrimSpace(x.Role),
			Meta:    experienceMeta(x),
			Tags:    nonBlank(x.Tags),
			Bullets: nonBlank(x.Bullets),
		})
	}
	return out
}

// experienceMeta renders "location | start — end", dropping whichever parts
// are blank.
func experienceMeta(x model.Experience) string {
	start, end := strings.TrimSpace(x.StartDate), strings.TrimSpace(x.EndDate)
	var period string
	switch {
	case start != "" && end != "":
		period = start + " — " + end
	case start != "":
		period = start
	default:
		period = end
	}

	parts := make([]string, 0, 2)
	if loc := strings.TrimSpace(x.Location); loc != "" {
		parts = append(parts, loc)
	}
	if period != "" {
		parts = append(parts, period)
	}
	return strings.Join(parts, " | ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// nonBlank trims each string and drops the empty ones.
func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
