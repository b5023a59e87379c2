package tags

import (
	"errors"
	"testing"
)

func TestRankFollowsDeclarationOrder(t *testing.T) {
	want := []string{
		"Type", "Subject", "Shot", "Perspective", "Pose", "Location", "Action",
		"Gaze", "Mouth", "MouthAction", "Hair", "Limbs", "SubjectDescription",
		"Scenery", "SceneDescription", "Lighting", "Miscellaneous",
	}

	all := All()
	if len(all) != len(want) {
		t.Fatalf("Expected %d categories, got %d", len(want), len(all))
	}
	for i, c := range all {
		if c.String() != want[i] {
			t.Errorf("Category %d: expected %s, got %s", i, want[i], c)
		}
		if Rank(c) != i {
			t.Errorf("Rank(%s) = %d, expected %d", c, Rank(c), i)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, c := range All() {
		got, err := Parse(c.String())
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", c.String(), err)
		}
		if got != c {
			t.Errorf("Parse(%q) = %s, expected %s", c.String(), got, c)
		}
	}
}

func TestParseIsCaseSensitive(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"Lighting", false},
		{"lighting", true},
		{"MOUTHACTION", true},
		{"TriggerWord", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownCategory) {
					t.Errorf("Expected ErrUnknownCategory, got %v", err)
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestParseFold(t *testing.T) {
	c, err := ParseFold("  mouthaction ")
	if err != nil {
		t.Fatalf("ParseFold failed: %v", err)
	}
	if c != MouthAction {
		t.Errorf("Expected MouthAction, got %s", c)
	}
}

func TestSingleValuedCategories(t *testing.T) {
	single := map[Category]bool{
		Type: true, Subject: true, Shot: true, Perspective: true, Gaze: true,
		Mouth: true, MouthAction: true, Hair: true, Scenery: true,
	}
	for _, c := range All() {
		if c.IsSingleValued() != single[c] {
			t.Errorf("%s: IsSingleValued = %v, expected %v", c, c.IsSingleValued(), single[c])
		}
	}
	if Category(99).IsSingleValued() || Category(99).Valid() {
		t.Error("Out of range category should be neither valid nor single-valued")
	}
}
