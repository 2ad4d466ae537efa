package engine

import (
	"testing"

	"nkrane/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDetectCase(t *testing.T) {
	tests := []struct {
		surface  string
		expected domain.CasePattern
	}{
		{"parliament", domain.CaseLower},
		{"PARLIAMENT", domain.CaseUpper},
		{"Parliament", domain.CaseCapitalized},
		{"PaRliament", domain.CaseMixed},
		{"New York", domain.CaseTitle},
		{"New York City", domain.CaseTitle},
		{"Prime-Minister", domain.CaseTitle},
		{"Minister of Finance", domain.CaseMixed},
		{"McDonald Farm", domain.CaseMixed},
		{"New york", domain.CaseCapitalized},
		{"NASA", domain.CaseUpper},
		{"A", domain.CaseUpper},
		{"e-mail", domain.CaseLower},
		{"E-mail", domain.CaseCapitalized},
		{"COVID-19", domain.CaseUpper},
		{"βουλή", domain.CaseLower},
		{"Βουλή", domain.CaseCapitalized},
		{"1984", domain.CaseMixed},
		{"東京", domain.CaseMixed},
	}

	for _, tt := range tests {
		t.Run(tt.surface, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectCase(tt.surface))
		})
	}
}

func TestApplyCase(t *testing.T) {
	tests := []struct {
		name     string
		pattern  domain.CasePattern
		target   string
		expected string
	}{
		{"upper", domain.CaseUpper, "Parlamento", "PARLAMENTO"},
		{"upper greek", domain.CaseUpper, "βουλα", "ΒΟΥΛΑ"},
		{"capitalized", domain.CaseCapitalized, "parlamento europeo", "Parlamento europeo"},
		{"capitalized lowers the rest", domain.CaseCapitalized, "nueva YORK", "Nueva york"},
		{"lower keeps stored casing", domain.CaseLower, "Nueva York", "Nueva York"},
		{"mixed keeps stored casing", domain.CaseMixed, "iPhone", "iPhone"},
		{"empty target", domain.CaseCapitalized, "", ""},
		{"title only raises the first letter", domain.CaseTitle, "ciudad de Nueva York", "Ciudad de Nueva York"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ApplyCase(tt.pattern, tt.target, "es"))
		})
	}
}

func TestApplyCase_LanguageRules(t *testing.T) {
	tests := []struct {
		name     string
		pattern  domain.CasePattern
		target   string
		lang     string
		expected string
	}{
		{"greek final sigma", domain.CaseCapitalized, "ΚΡΑΤΟΣ", "el", "Κρατος"},
		{"greek upper drops tonos", domain.CaseUpper, "Βουλή", "el", "ΒΟΥΛΗ"},
		{"turkish dotted i", domain.CaseUpper, "istanbul", "tr", "İSTANBUL"},
		{"turkish capitalized", domain.CaseCapitalized, "izmir", "tr", "İzmir"},
		{"unknown language", domain.CaseUpper, "straße", "", "STRASSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ApplyCase(tt.pattern, tt.target, tt.lang))
		})
	}
}

func TestCasePattern_String(t *testing.T) {
	assert.Equal(t, "upper", domain.CaseUpper.String())
	assert.Equal(t, "lower", domain.CaseLower.String())
	assert.Equal(t, "capitalized", domain.CaseCapitalized.String())
	assert.Equal(t, "title", domain.CaseTitle.String())
	assert.Equal(t, "mixed", domain.CaseMixed.String())
}
