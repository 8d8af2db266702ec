package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListParamsNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   ListParams
		want ListParams
	}{
		{"defaults", ListParams{}, ListParams{Size: DefaultPageSize}},
		{"negative page", ListParams{Page: -2, Size: 10}, ListParams{Page: 0, Size: 10}},
		{"oversized", ListParams{Size: 5000}, ListParams{Size: MaxPageSize}},
		{"all facet", ListParams{Size: 10, Facet: "all"}, ListParams{Size: 10}},
		{"valid", ListParams{Page: 3, Size: 25, Keyword: "ro", Facet: "2"}, ListParams{Page: 3, Size: 25, Keyword: "ro", Facet: "2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}

func TestListParamsOffset(t *testing.T) {
	assert.Equal(t, 0, ListParams{Page: 0, Size: 10}.Offset())
	assert.Equal(t, 40, ListParams{Page: 4, Size: 10}.Offset())
	assert.Equal(t, 50, ListParams{Page: 2, Size: 25}.Offset())
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Reverse Osmosis 101":            "reverse-osmosis-101",
		"  Água é vida!  ":               "agua-e-vida",
		"UF/RO -- Hybrid   Systems":      "uf-ro-hybrid-systems",
		"2024 Q3 Report (Final)":         "2024-q3-report-final",
		"---":                            "",
		"Déjà vu: Über-Filtration für A": "deja-vu-uber-filtration-fur-a",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestSplitSections(t *testing.T) {
	assert.Equal(t,
		[]string{"Low energy use", "Compact footprint", "CIP ready"},
		SplitSections("Low energy use\nCompact footprint; CIP ready"))

	assert.Equal(t,
		[]string{"a", "b"},
		SplitSections("a；b"))

	assert.Equal(t, []string{"one"}, SplitSections("one\r\n\r\n"))

	got := SplitSections("")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, SplitSections(";;\n\n；"))
}
