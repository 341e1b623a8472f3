package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHasOneBlankElementPerSection(t *testing.T) {
	r := New()
	assert.Equal(t, []string{""}, r.Skills)
	assert.Len(t, r.Education, 1)
	assert.Len(t, r.Projects, 1)
	require.Len(t, r.Experience, 1)
	assert.Equal(t, []string{""}, r.Experience[0].Responsibilities)
}

func TestDraftRoundTrip(t *testing.T) {
	r := completeRecord()
	require.NoError(t, r.AddItem(SectionEducation))
	require.NoError(t, r.SetItemField(SectionEducation, 1, "degree", "MSc"))
	require.NoError(t, r.AddResponsibility(0))
	require.NoError(t, r.SetResponsibility(0, 1, "Mentored interns"))
	require.NoError(t, r.SetPhoto("data:image/png;base64,iVBORw0KGgo="))

	raw, err := r.Encode()
	require.NoError(t, err)
	back, err := Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, r, back)
	assert.Len(t, back.Education, len(r.Education))
	assert.Len(t, back.Experience[0].Responsibilities, 2)
}

func TestDecodeFillsMissingLists(t *testing.T) {
	back, err := Decode(`{"name":"Ada","experience":[{"role":"Engineer"}]}`)
	require.NoError(t, err)
	assert.Equal(t, "Ada", back.Name)
	assert.Equal(t, []string{""}, back.Skills)
	assert.Equal(t, []string{""}, back.Experience[0].Responsibilities)
	assert.Len(t, back.Projects, 1)
}

func TestDecodeSubmittedKeepsEmptyLists(t *testing.T) {
	back, err := DecodeSubmitted(`{"name":"Ada","skills":[],"experience":[]}`)
	require.NoError(t, err)
	assert.Equal(t, "Ada", back.Name)
	assert.Empty(t, back.Skills)
	assert.Empty(t, back.Experience)
	assert.Empty(t, back.Projects)

	_, err = DecodeSubmitted("{not json")
	assert.Error(t, err)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("{not json")
	assert.Error(t, err)
}

func TestCloneIsDeep(t *testing.T) {
	r := completeRecord()
	c := r.Clone()
	c.Skills[0] = "changed"
	c.Experience[0].Responsibilities[0] = "changed"
	assert.Equal(t, "Go", r.Skills[0])
	assert.Equal(t, "Built APIs", r.Experience[0].Responsibilities[0])
}

func TestParseTemplate(t *testing.T) {
	tpl, err := ParseTemplate(" Pro ")
	require.NoError(t, err)
	assert.Equal(t, Professional, tpl)

	tpl, err = ParseTemplate("personal")
	require.NoError(t, err)
	assert.Equal(t, Personal, tpl)

	_, err = ParseTemplate("creative")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func completeRecord() Record {
	r := New()
	r.Name = "Ada Lovelace"
	r.Email = "ada@example.com"
	r.Phone = "5551234567"
	r.DOB = "1815-12-10"
	r.Address = "London"
	r.JobTitle = "Engineer"
	r.LinkedIn = "linkedin.com/in/ada"
	r.Profile = "Analytical engine programmer."
	r.Skills = []string{"Go"}
	r.Education = []Education{{Degree: "BSc", Institute: "Home", Year: "1835"}}
	r.Experience = []Experience{{Role: "Engineer", Company: "Babbage", Duration: "1842-1843", Responsibilities: []string{"Built APIs"}}}
	r.Projects = []Project{{Title: "Notes", Description: "Bernoulli numbers"}}
	r.Links = "ada.dev"
	return r
}
