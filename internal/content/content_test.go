package content

import (
	"testing"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, "pricing", list[0].Slug)
	assert.Equal(t, "roadmap", list[1].Slug)
	assert.Equal(t, "policies", list[2].Slug)
	assert.Empty(t, list[0].Sections)

	p, ok := c.Get("Pricing")
	require.True(t, ok)
	assert.NotEmpty(t, p.Sections)
	assert.NotNil(t, p.Data)

	_, ok = c.Get("careers")
	assert.False(t, ok)
}

func TestNewCatalog_DuplicateSlug(t *testing.T) {
	_, err := NewCatalog(Page{Title: "FAQ"}, Page{Title: "faq"})
	assert.Error(t, err)
}

func TestNewCatalog_SlugFromTitle(t *testing.T) {
	c, err := NewCatalog(Page{Title: "Holiday Programmes 2026"})
	require.NoError(t, err)
	_, ok := c.Get("holiday-programmes-2026")
	assert.True(t, ok)
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, RateBand{25, 110}, BandFor("Primary 4"))
	assert.Equal(t, RateBand{50, 150}, BandFor("JC2"))
	assert.True(t, BandFor("Sec 3").Contains(60))
	assert.False(t, BandFor("Sec 3").Contains(200))
}

func TestRatesCoverEveryTutorType(t *testing.T) {
	for band, byType := range Rates() {
		for _, tt := range []model.TutorType{model.TutorTypePartTime, model.TutorTypeFullTime, model.TutorTypeExMOE, model.TutorTypeMOE} {
			r, ok := byType[tt]
			assert.True(t, ok, "%s/%s", band, tt)
			assert.Less(t, r.Min, r.Max)
		}
	}
}
