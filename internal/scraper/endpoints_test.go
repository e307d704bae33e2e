package scraper

import "testing"

func TestNormalizeBattletag(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"hash becomes dash", "Foo#1234", "Foo-1234"},
		{"no hash unchanged", "Foo-1234", "Foo-1234"},
		{"multiple hashes", "a#b#c", "a-b-c"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeBattletag(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeBattletag(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEndpoints(t *testing.T) {
	e := DefaultEndpoints()

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "career page",
			got:      e.Career("eu", "Foo#1234"),
			expected: "https://playoverwatch.com/en-gb/career/pc/eu/Foo-1234",
		},
		{
			name:     "profile page",
			got:      e.Profile("us", "Foo#1234", ""),
			expected: "https://masteroverwatch.com/profile/pc/us/Foo-1234",
		},
		{
			name:     "profile page with extra suffix",
			got:      e.Profile("kr", "Foo#1234", "/heroes"),
			expected: "https://masteroverwatch.com/profile/pc/kr/Foo-1234/heroes",
		},
		{
			name:     "update endpoint",
			got:      e.Update("eu", "Foo#1234"),
			expected: "https://masteroverwatch.com/profile/pc/eu/Foo-1234/update",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}

func TestEndpointsCustomBases(t *testing.T) {
	e := Endpoints{
		BlizzardBase: "http://127.0.0.1:9999/blizz",
		MasterBase:   "http://127.0.0.1:9999/mo",
	}

	if got := e.Career("eu", "Foo#1234"); got != "http://127.0.0.1:9999/blizz/career/pc/eu/Foo-1234" {
		t.Errorf("Career() = %q", got)
	}
	if got := e.Update("us", "Bar#42"); got != "http://127.0.0.1:9999/mo/profile/pc/us/Bar-42/update" {
		t.Errorf("Update() = %q", got)
	}
}
