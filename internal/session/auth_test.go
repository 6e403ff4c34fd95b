package session

import "testing"

func TestNameFromEmail(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{email: "budi.santoso@example.com", want: "Budi Santoso"},
		{email: "siti_rahma-dewi@example.com", want: "Siti Rahma Dewi"},
		{email: "élodie.ñu@example.com", want: "Élodie Ñu"},
		{email: "ärzte@example.com", want: "Ärzte"},
		{email: "", want: "Pengguna"},
		{email: "...@example.com", want: "Pengguna"},
	}
	for _, tc := range cases {
		if got := nameFromEmail(tc.email); got != tc.want {
			t.Fatalf("nameFromEmail(%q) want %q got %q", tc.email, tc.want, got)
		}
	}
}
