package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemovingLastItemIsRefused(t *testing.T) {
	for _, section := range []Section{SectionSkills, SectionEducation, SectionExperience, SectionProjects} {
		t.Run(string(section), func(t *testing.T) {
			r := New()
			before := r.Clone()
			err := r.RemoveItem(section, 0)
			assert.ErrorIs(t, err, ErrLastItem)
			assert.Equal(t, before, r)
		})
	}
}

func TestAddAndRemoveItem(t *testing.T) {
	r := New()
	require.NoError(t, r.SetItemField(SectionProjects, 0, "title", "first"))
	require.NoError(t, r.AddItem(SectionProjects))
	require.NoError(t, r.SetItemField(SectionProjects, 1, "title", "second"))

	require.NoError(t, r.RemoveItem(SectionProjects, 0))
	require.Len(t, r.Projects, 1)
	assert.Equal(t, "second", r.Projects[0].Title)
}

func TestAddExperienceStartsWithOneResponsibility(t *testing.T) {
	r := New()
	require.NoError(t, r.AddItem(SectionExperience))
	assert.Equal(t, []string{""}, r.Experience[1].Responsibilities)
}

func TestResponsibilityEdits(t *testing.T) {
	r := New()
	require.NoError(t, r.SetResponsibility(0, 0, "Led team"))
	require.NoError(t, r.AddResponsibility(0))
	require.NoError(t, r.SetResponsibility(0, 1, "Shipped v2"))
	require.NoError(t, r.RemoveResponsibility(0, 0))
	assert.Equal(t, []string{"Shipped v2"}, r.Experience[0].Responsibilities)
	assert.ErrorIs(t, r.RemoveResponsibility(0, 0), ErrLastItem)
	assert.ErrorIs(t, r.SetResponsibility(0, 4, "x"), ErrIndex)
}

func TestSetFieldAndUnknowns(t *testing.T) {
	r := New()
	require.NoError(t, r.SetField("linkedin", "in/ada"))
	assert.Equal(t, "in/ada", r.LinkedIn)

	assert.ErrorIs(t, r.SetField("salary", "1"), ErrUnknownField)
	assert.ErrorIs(t, r.SetItemField(SectionEducation, 0, "gpa", "4"), ErrUnknownField)
	assert.ErrorIs(t, r.SetItemField("hobbies", 0, "x", "y"), ErrUnknownSection)
	assert.ErrorIs(t, r.SetItemField(SectionSkills, 3, "", "Go"), ErrIndex)
	assert.ErrorIs(t, r.AddItem("hobbies"), ErrUnknownSection)
}

func TestSetPhoto(t *testing.T) {
	r := New()
	assert.ErrorIs(t, r.SetPhoto("https://example.com/me.png"), ErrPhoto)
	require.NoError(t, r.SetPhoto("data:image/jpeg;base64,/9j/"))
	assert.Equal(t, "data:image/jpeg;base64,/9j/", r.Photo)
	require.NoError(t, r.SetPhoto(""))
	assert.Empty(t, r.Photo)
}
