package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if Search != "/search" {
		t.Fatalf("Search = %q", Search)
	}
	if Compare != "/compare" {
		t.Fatalf("Compare = %q", Compare)
	}
	if Health != "/healthz" {
		t.Fatalf("Health = %q", Health)
	}
	if ProjectPrefix != "/project/" {
		t.Fatalf("ProjectPrefix = %q", ProjectPrefix)
	}
	if AdminPrefix != "/admin/" {
		t.Fatalf("AdminPrefix = %q", AdminPrefix)
	}
	if AdminSoftwarePattern != "/admin/software/{slug}" {
		t.Fatalf("AdminSoftwarePattern = %q", AdminSoftwarePattern)
	}
}

func TestProjectBuildsEscapedPath(t *testing.T) {
	t.Parallel()

	if got := Project("gitlab"); got != "/project/gitlab" {
		t.Fatalf("Project = %q", got)
	}
	if got := Project(" space slug "); got != "/project/space%20slug" {
		t.Fatalf("Project = %q", got)
	}
}

func TestProjectFieldBuildsNestedPath(t *testing.T) {
	t.Parallel()

	if got := ProjectField("gitlab", "bus-factor"); got != "/project/gitlab/field/bus-factor" {
		t.Fatalf("ProjectField = %q", got)
	}
}

func TestTagBuildsPath(t *testing.T) {
	t.Parallel()

	if got := Tag("forge"); got != "/tag/forge" {
		t.Fatalf("Tag = %q", got)
	}
}

func TestAdminSoftwareDetailBuildsPath(t *testing.T) {
	t.Parallel()

	if got := AdminSoftwareDetail("gitlab"); got != "/admin/software/gitlab" {
		t.Fatalf("AdminSoftwareDetail = %q", got)
	}
}
