package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	old := Get()
	defer func() { Version, Commit, Date = old.Version, old.Commit, old.Date }()

	Version, Commit, Date = "v1.2.3", "abc", "2024-05-01"
	if got := Get(); got != (Info{Version: "v1.2.3", Commit: "abc", Date: "2024-05-01"}) {
		t.Errorf("Get() = %+v", got)
	}
	if tpl := Template(); !strings.Contains(tpl, "v1.2.3") || !strings.Contains(tpl, "commit: abc") {
		t.Errorf("Template() = %q", tpl)
	}
}
