package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestYearAndMonthNormalization(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		wantYear  *int
		wantMonth *int
	}{
		{"nil", nil, nil, nil},
		{"zero sentinel", float64(0), nil, nil},
		{"integral float", float64(2021), intPtr(2021), nil},
		{"valid month", float64(7), intPtr(7), intPtr(7)},
		{"month upper bound", float64(12), intPtr(12), intPtr(12)},
		{"month out of range", float64(13), intPtr(13), nil},
		{"fractional", 2021.5, nil, nil},
		{"negative", float64(-3), nil, nil},
		{"numeric string", " 2019 ", intPtr(2019), nil},
		{"unknown string", "unknown", nil, nil},
		{"present keyword", "Present", nil, nil},
		{"bool", true, nil, nil},
		{"year too large", float64(20190), nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantYear, year(tt.input))
			assert.Equal(t, tt.wantMonth, month(tt.input))
		})
	}
}

func TestNormalize_DecodesExtractorJSON(t *testing.T) {
	raw, err := DecodeRaw([]byte(`{
		"name": " Jane Doe ",
		"title": "Staff Engineer",
		"email": "jane@example.com",
		"phone_number": 60123456789,
		"company": "Acme",
		"current_description": "Platform team",
		"employment_type": "permanent",
		"current_comp_year": "2022",
		"current_comp_month": 3,
		"past_company": ["Old Co", "Older Co", "Oldest Co"],
		"past_title": ["Engineer", null],
		"description": ["Built things"],
		"start_year": [2018, 2015],
		"start_month": [1, 0],
		"end_year": [2020, null, 2014],
		"end_month": [11, 6, 15],
		"skill": ["Go", "SQL"],
		"proficiency": ["Expert"],
		"years_experience": [6.5, "3"],
		"last_used_year": [2024],
		"percentage_match": 87.6,
		"short_description": "Strong backend profile"
	}`))
	require.NoError(t, err)

	rec := Normalize(raw)

	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "60123456789", rec.Phone)
	assert.Equal(t, intPtr(2022), rec.CurrentCompYear)
	assert.Equal(t, intPtr(3), rec.CurrentCompMonth)
	assert.True(t, rec.HasCurrentEmployment())
	assert.Equal(t, 88, rec.PercentageMatch)

	require.Len(t, rec.PastRoles, 3)

	first := rec.PastRoles[0]
	assert.Equal(t, "Old Co", first.Company)
	require.NotNil(t, first.Title)
	assert.Equal(t, "Engineer", *first.Title)
	assert.Equal(t, intPtr(2020), first.EndYear)
	assert.Equal(t, intPtr(11), first.EndMonth)

	second := rec.PastRoles[1]
	assert.Nil(t, second.Title, "null element")
	assert.Nil(t, second.Description, "short array")
	assert.Nil(t, second.StartMonth, "zero month sentinel")
	assert.Nil(t, second.EndYear)
	assert.Equal(t, intPtr(6), second.EndMonth, "validator keeps the month; the merger drops it")

	third := rec.PastRoles[2]
	assert.Nil(t, third.StartYear)
	assert.Equal(t, intPtr(2014), third.EndYear)
	assert.Nil(t, third.EndMonth, "month out of range")

	require.Len(t, rec.Skills, 2)
	assert.Equal(t, "Go", rec.Skills[0].Name)
	require.NotNil(t, rec.Skills[0].YearsExperience)
	assert.InDelta(t, 6.5, *rec.Skills[0].YearsExperience, 0.001)
	assert.Equal(t, intPtr(2024), rec.Skills[0].LastUsedYear)
	assert.Nil(t, rec.Skills[1].Proficiency)
	require.NotNil(t, rec.Skills[1].YearsExperience)
	assert.InDelta(t, 3.0, *rec.Skills[1].YearsExperience, 0.001)
	assert.Nil(t, rec.Skills[1].LastUsedYear)
}

func TestHasCurrentEmployment(t *testing.T) {
	tests := []struct {
		name  string
		year  any
		month any
		want  bool
	}{
		{"both present", float64(2022), float64(3), true},
		{"month missing", float64(2022), nil, false},
		{"year zero", float64(0), float64(3), false},
		{"month out of range", float64(2022), float64(14), false},
		{"garbage year", "since 2020", float64(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Normalize(&RawFactRecord{Company: "Acme", CurrentCompYear: tt.year, CurrentCompMonth: tt.month})
			assert.Equal(t, tt.want, rec.HasCurrentEmployment())
		})
	}
}

func TestHasJobDescription(t *testing.T) {
	assert.False(t, (&FactRecord{}).HasJobDescription())
	assert.False(t, (&FactRecord{JobDescription: NoDescription}).HasJobDescription())
	assert.True(t, (&FactRecord{JobDescription: "Senior Go developer"}).HasJobDescription())
}

func TestNormalize_NilAndEmpty(t *testing.T) {
	rec := Normalize(nil)
	require.NotNil(t, rec)
	assert.False(t, rec.HasCurrentEmployment())

	rec = Normalize(&RawFactRecord{})
	assert.Empty(t, rec.PastRoles)
	assert.Empty(t, rec.Skills)
	assert.Equal(t, 0, rec.PercentageMatch)
}

func TestFlexString(t *testing.T) {
	raw, err := DecodeRaw([]byte(`{"name": null, "title": true, "email": {"x": 1}, "location": ["KL"]}`))
	require.NoError(t, err)

	assert.Equal(t, FlexString(""), raw.Name)
	assert.Equal(t, FlexString("true"), raw.Title)
	assert.Equal(t, FlexString(""), raw.Email)
	assert.Equal(t, FlexString(""), raw.Location)
}

func TestDecodeRaw_Malformed(t *testing.T) {
	_, err := DecodeRaw([]byte(`{"name": "Jane"`))
	assert.Error(t, err)
}
