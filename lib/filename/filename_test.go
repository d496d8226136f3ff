package filename

import "testing"

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"Super Mario World":  "Super_Mario_World",
		"chrono-trigger_v1":  "chrono-trigger_v1",
		"rom (usa).sfc":      "rom__usa_.sfc",
		"already.safe-name1": "already.safe-name1",
	}
	for in, want := range cases {
		if got := SanitizeName(in); got != want {
			t.Errorf("SanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDosName(t *testing.T) {
	cases := map[string]string{
		"supermarioworld.1": "SUPERMAR.1",
		"rom.078":           "ROM.078",
		"chrono trigger":    "CHRONOTR",
		"a.bcdefgh":         "A.BCD",
	}
	for in, want := range cases {
		got, err := DosName(in)
		if err != nil {
			t.Fatalf("DosName(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("DosName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDosNameEmptyStemFails(t *testing.T) {
	_, err := DosName("!!!.078")
	if err == nil {
		t.Fatal("expected InvalidDosNameError")
	}
	if _, ok := err.(*InvalidDosNameError); !ok {
		t.Fatalf("expected *InvalidDosNameError, got %T", err)
	}
}

type fakeTracker struct {
	retracked map[string]string
}

func (f *fakeTracker) Retrack(oldPath, newPath string) {
	if f.retracked == nil {
		f.retracked = make(map[string]string)
	}
	f.retracked[oldPath] = newPath
}
