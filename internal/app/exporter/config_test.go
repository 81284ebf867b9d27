package exporter

import "testing"

func TestResolveModesDefaultAndReject(t *testing.T) {
	cases := []struct {
		resolve func(string) (string, error)
		in      string
		want    string
		wantErr bool
	}{
		{resolvePrefixMode, "", PrefixModeSubfolder, false},
		{resolvePrefixMode, "prefix", PrefixModePrefix, false},
		{resolvePrefixMode, " subfolder ", PrefixModeSubfolder, false},
		{resolvePrefixMode, "flat", "", true},
		{resolveMediaScope, "", MediaScopeCentralized, false},
		{resolveMediaScope, "perFolder", MediaScopePerFolder, false},
		{resolveMediaScope, "perfolder", "", true},
		{resolveFrontMatterStyle, "", FrontMatterHeading, false},
		{resolveFrontMatterStyle, "yaml", FrontMatterYAML, false},
		{resolveFrontMatterStyle, "toml", "", true},
	}
	for _, c := range cases {
		got, err := c.resolve(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("resolve(%q): expected error, got %q", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("resolve(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("resolve(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
