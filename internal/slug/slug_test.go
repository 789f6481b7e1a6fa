package slug

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Gérer son stress au quotidien", "gerer-son-stress-au-quotidien"},
		{"  Méditation : par où commencer ?  ", "meditation-par-ou-commencer"},
		{"10 conseils pour mieux dormir", "10-conseils-pour-mieux-dormir"},
		{"L'alimentation & le moral", "l-alimentation-le-moral"},
		{"Déjà---slugué", "deja-slugue"},
		{"Sommeil ٣ étoiles", "sommeil-etoiles"},
		{"Bien-être １０１", "bien-etre"},
		{"", ""},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Make(tc.title), "title %q", tc.title)
	}
}
