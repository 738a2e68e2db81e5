package service

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Casas del Sur", "casas-del-sur"},
		{"  Módulos Ñuñoa  ", "modulos-nunoa"},
		{"Fabricación & Montaje", "fabricacion-montaje"},
		{"Casa 60m2 -- premium", "casa-60m2-premium"},
		{"ÁÉÍÓÚ", "aeiou"},
		{"---", ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
