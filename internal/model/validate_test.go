package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullResume = `{
  "contact": {"name": "Ada Lovelace", "title": "Engineer", "website": "https://www.ada.dev",
    "email": "ada@example.com", "phone": "+1 (555) 010-2000", "linkedin": "https://linkedin.com/in/ada", "github": "https://github.com/ada"},
  "summaries": ["First summary.", "Second summary."],
  "educations": [{"title": "University", "role": "BSc", "date": "2010", "descriptions": ["Maths"]}],
  "skills": {
    "Languages": {"expert": "Go", "proficient": "Python", "descriptions": ["Systems"]},
    "Cloud": {"low": "GCP"},
    "Data": {"descriptions": ["Postgres"]}
  },
  "experiences": [{"company": "Acme", "role": "Lead", "location": "Remote", "startDate": "2020", "endDate": "Present",
    "tags": ["go", "k8s"], "bullets": ["Built things", "Shipped things"]}],
  "projects": [{"title": "Side project", "descriptions": ["Open source"]}]
}`

func TestParse_FullDocument(t *testing.T) {
	r, err := ParseString(fullResume)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", r.Contact.Name)
	require.NotNil(t, r.Contact.Website)
	assert.Equal(t, "https://www.ada.dev", *r.Contact.Website)
	assert.Len(t, r.Summaries, 2)
	require.Len(t, r.Educations, 1)
	assert.Equal(t, "BSc", *r.Educations[0].Role)
	require.Len(t, r.Projects, 1)
	assert.Nil(t, r.Projects[0].Role)
	assert.Nil(t, r.Projects[0].Date)
	assert.Equal(t, []string{"go", "k8s"}, r.Experiences[0].Tags)
}

func TestParse_SkillsKeepDocumentOrder(t *testing.T) {
	r, err := ParseString(fullResume)
	require.NoError(t, err)

	names := make([]string, 0, len(r.Skills))
	for _, c := range r.Skills {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Languages", "Cloud", "Data"}, names)
	assert.Equal(t, "Go", *r.Skills[0].Skill.Expert)
	assert.Nil(t, r.Skills[1].Skill.Expert)
}

func TestParse_MalformedSyntax(t *testing.T) {
	for _, in := range []string{"", "not json", `{"contact":`, `{"contact":{"name":"A"}} trailing`} {
		_, err := ParseString(in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "input %q", in)
		assert.Equal(t, KindMalformedSyntax, verr.Kind)
		assert.True(t, errors.Is(err, ErrMalformedSyntax))
		assert.Equal(t, "Invalid JSON format", verr.Message())
	}
}

func TestParse_MissingRequiredField(t *testing.T) {
	cases := map[string]string{
		`{}`:                          "contact",
		`{"contact":null}`:            "contact",
		`[1,2]`:                       "contact",
		`{"contact":"x"}`:             "contact",
		`{"contact":{}}`:              "contact.name",
		`{"contact":{"name":""}}`:     "contact.name",
		`{"contact":{"name":null}}`:   "contact.name",
		`{"contact":{"title":"Dev"}}`: "contact.name",
	}
	for in, field := range cases {
		_, err := ParseString(in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "input %q", in)
		assert.Equal(t, KindMissingRequiredField, verr.Kind, "input %q", in)
		assert.Equal(t, field, verr.Field, "input %q", in)
		assert.ErrorIs(t, err, ErrMissingRequiredField)
	}
}

func TestParse_InvalidShape(t *testing.T) {
	for _, in := range []string{
		`{"contact":{"name":"A"},"summaries":"one"}`,
		`{"contact":{"name":"A"},"skills":[]}`,
		`{"contact":{"name":"A"},"experiences":[{"tags":"go"}]}`,
		`{"contact":{"name":42}}`,
	} {
		_, err := ParseString(in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "input %q", in)
		assert.Equal(t, KindInvalidShape, verr.Kind, "input %q", in)
		assert.NotEmpty(t, verr.Details)
	}
}

func TestParse_MinimalDocumentHasEmptySections(t *testing.T) {
	r, err := ParseString(`{"contact":{"name":"A"}}`)
	require.NoError(t, err)
	assert.Empty(t, r.Summaries)
	assert.Empty(t, r.Skills)
	assert.Empty(t, r.Experiences)
}

func TestParse_NullSectionsAccepted(t *testing.T) {
	r, err := ParseString(`{"contact":{"name":"A","website":null},"skills":null,"summaries":null}`)
	require.NoError(t, err)
	assert.Nil(t, r.Contact.Website)
	assert.Nil(t, r.Skills)
}

func TestSkills_RoundTripPreservesOrder(t *testing.T) {
	var s Skills
	require.NoError(t, json.Unmarshal([]byte(`{"b":{"expert":"x"},"a":{},"c":{"descriptions":["d"]}}`), &s))

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":{"expert":"x"},"a":{},"c":{"descriptions":["d"]}}`, string(out))
	assert.Equal(t, `{"b":{"expert":"x"},"a":{},"c":{"descriptions":["d"]}}`, string(out))
}

func TestSkills_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	var s Skills
	require.NoError(t, json.Unmarshal([]byte(`{"a":{"low":"1"},"b":{},"a":{"low":"2"}}`), &s))
	require.Len(t, s, 2)
	assert.Equal(t, "a", s[0].Name)
	assert.Equal(t, "2", *s[0].Skill.Low)
}

func TestEmbeddedSchemaCompiles(t *testing.T) {
	assert.NotPanics(t, func() { mustCompileSchema(schemaJSON) })
}
