package domain_test

import (
	"errors"
	"testing"

	"github.com/couchcryptid/wildfire-explorer/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIncidents() []domain.Incident {
	return []domain.Incident{
		{Year: 2001, State: "CA", Cause: "Lightning", Size: 10},
		{Year: 2000, State: "OR", Cause: "Arson", Size: 2},
		{Year: 2001, State: "AZ", Cause: "Lightning", Size: 800},
		{Year: 2002, State: "CA", Cause: "Campfire", Size: 0.1},
		{Year: 2001, State: "CA", Cause: "Arson", Size: 60000},
		{Year: 2000, State: "", Cause: "Debris Burning", Size: 1},
	}
}

func TestNewDataset_YearsSortedAndDistinct(t *testing.T) {
	ds := domain.NewDataset(sampleIncidents())

	assert.Equal(t, []int{2000, 2001, 2002}, ds.Years())
	minYear, maxYear, ok := ds.YearDomain()
	require.True(t, ok)
	assert.Equal(t, 2000, minYear)
	assert.Equal(t, 2002, maxYear)
	assert.Equal(t, 6, ds.Len())
}

func TestNewDataset_CopiesInput(t *testing.T) {
	in := sampleIncidents()
	ds := domain.NewDataset(in)
	in[0].Cause = "Mutated"

	assert.False(t, ds.HasCause("Mutated"))
	assert.Equal(t, "Lightning", ds.Incidents()[0].Cause)
}

func TestFilterByYear_PartitionsDataset(t *testing.T) {
	ds := domain.NewDataset(sampleIncidents())

	var union []domain.Incident
	for _, y := range ds.Years() {
		got := ds.FilterByYear(y)
		for _, inc := range got {
			assert.Equal(t, y, inc.Year)
		}
		union = append(union, got...)
	}

	assert.ElementsMatch(t, ds.Incidents(), union)
}

func TestFilterByYear_PreservesOrder(t *testing.T) {
	ds := domain.NewDataset(sampleIncidents())

	got := ds.FilterByYear(2001)
	want := []domain.Incident{
		{Year: 2001, State: "CA", Cause: "Lightning", Size: 10},
		{Year: 2001, State: "AZ", Cause: "Lightning", Size: 800},
		{Year: 2001, State: "CA", Cause: "Arson", Size: 60000},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("FilterByYear mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterByYear_UnknownYearIsEmpty(t *testing.T) {
	ds := domain.NewDataset(sampleIncidents())

	got := ds.FilterByYear(1990)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, ds.CauseCounts(1990))
	assert.Empty(t, ds.StateCounts(1990, "Lightning"))
}

func TestFilterByYear_ReturnsCopy(t *testing.T) {
	ds := domain.NewDataset(sampleIncidents())

	got := ds.FilterByYear(2000)
	got[0].Cause = "Mutated"

	assert.Equal(t, "Arson", ds.FilterByYear(2000)[0].Cause)
}

func TestFilterByYearAndCause_CaseSensitive(t *testing.T) {
	ds := domain.NewDataset(sampleIncidents())

	assert.Len(t, ds.FilterByYearAndCause(2001, "Lightning"), 2)
	assert.Empty(t, ds.FilterByYearAndCause(2001, "lightning"))
}

func TestCheckYear(t *testing.T) {
	ds := domain.NewDataset(sampleIncidents())

	require.NoError(t, ds.CheckYear(2000))
	require.NoError(t, ds.CheckYear(2002))

	err := ds.CheckYear(2005)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	var rangeErr *domain.OutOfRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, 2005, rangeErr.Year)
	assert.Equal(t, 2000, rangeErr.Min)
	assert.Equal(t, 2002, rangeErr.Max)
}

func TestCheckYear_EmptyDataset(t *testing.T) {
	ds := domain.NewDataset(nil)

	_, _, ok := ds.YearDomain()
	assert.False(t, ok)
	assert.ErrorIs(t, ds.CheckYear(2000), domain.ErrEmptyDataset)
}

func TestCauses_SortedVocabulary(t *testing.T) {
	ds := domain.NewDataset(sampleIncidents())

	assert.Equal(t, []string{"Arson", "Campfire", "Debris Burning", "Lightning"}, ds.Causes())
	assert.True(t, ds.HasCause("Campfire"))
	assert.False(t, ds.HasCause(domain.NoCause))
}
