package tags

import (
	"errors"
	"reflect"
	"testing"
)

func TestTryAddKeepsRankOrder(t *testing.T) {
	s := NewSelection()
	adds := []Tag{
		{"soft light", Lighting},
		{"girl", Subject},
		{"smiling", Miscellaneous},
		{"standing", Pose},
		{"photo", Type},
		{"arms crossed", Pose},
		{"rim light", Lighting},
	}
	for _, a := range adds {
		if err := s.TryAdd(a.Text, a.Category); err != nil {
			t.Fatalf("TryAdd(%q, %s) failed: %v", a.Text, a.Category, err)
		}
	}

	want := []Tag{
		{"photo", Type},
		{"girl", Subject},
		{"standing", Pose},
		{"arms crossed", Pose},
		{"soft light", Lighting},
		{"rim light", Lighting},
		{"smiling", Miscellaneous},
	}
	if got := s.Tags(); !reflect.DeepEqual(got, want) {
		t.Errorf("Unexpected order:\n got  %v\n want %v", got, want)
	}

	groups := s.Grouped()
	for i := 1; i < len(groups); i++ {
		if Rank(groups[i-1].Category) >= Rank(groups[i].Category) {
			t.Errorf("Groups not strictly ascending: %s before %s", groups[i-1].Category, groups[i].Category)
		}
	}
}

func TestTryAddRejections(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		category Category
		wantErr  error
	}{
		{"blank", "   ", Pose, ErrEmptyText},
		{"second type", "painting", Type, ErrCategoryFull},
		{"case duplicate", "PHOTO", Type, ErrDuplicateTag},
		{"duplicate in multi category", "Standing", Pose, ErrDuplicateTag},
		{"unknown category", "x", Category(-1), ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection()
			s.TryAdd("photo", Type)
			s.TryAdd("standing", Pose)
			before := s.Tags()

			err := s.TryAdd(tt.text, tt.category)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
			var rejectErr *RejectError
			if !errors.As(err, &rejectErr) {
				t.Errorf("Expected *RejectError, got %T", err)
			}
			if !reflect.DeepEqual(s.Tags(), before) {
				t.Errorf("Selection changed after rejected add: %v", s.Tags())
			}
		})
	}
}

func TestSameTextInDifferentCategories(t *testing.T) {
	s := NewSelection()
	if err := s.TryAdd("red", Hair); err != nil {
		t.Fatalf("TryAdd failed: %v", err)
	}
	if err := s.TryAdd("red", Miscellaneous); err != nil {
		t.Errorf("Same text in another category should be allowed: %v", err)
	}
}

func TestRemove(t *testing.T) {
	s := NewSelection()
	s.TryAdd("photo", Type)
	s.TryAdd("girl", Subject)
	s.TryAdd("standing", Pose)

	if !s.Remove(Tag{"girl", Subject}) {
		t.Fatal("Remove returned false for present tag")
	}
	if s.Remove(Tag{"girl", Subject}) {
		t.Error("Remove returned true for absent tag")
	}
	want := []Tag{{"photo", Type}, {"standing", Pose}}
	if !reflect.DeepEqual(s.Tags(), want) {
		t.Errorf("Got %v, want %v", s.Tags(), want)
	}

	// a freed single-valued slot can be filled again
	if err := s.TryAdd("woman", Subject); err != nil {
		t.Errorf("TryAdd after remove failed: %v", err)
	}

	if _, ok := s.RemoveAt(10); ok {
		t.Error("RemoveAt out of range should fail")
	}
	tag, ok := s.RemoveAt(0)
	if !ok || tag != (Tag{"photo", Type}) {
		t.Errorf("RemoveAt(0) = %v, %v", tag, ok)
	}
}

func TestEdit(t *testing.T) {
	s := NewSelection()
	s.TryAdd("standing", Pose)
	s.TryAdd("sitting", Pose)

	if err := s.Edit(0, "Standing"); err != nil {
		t.Errorf("Changing case of the same tag should be allowed: %v", err)
	}
	if err := s.Edit(0, "SITTING"); !errors.Is(err, ErrDuplicateTag) {
		t.Errorf("Expected ErrDuplicateTag, got %v", err)
	}
	if err := s.Edit(1, " "); !errors.Is(err, ErrEmptyText) {
		t.Errorf("Expected ErrEmptyText, got %v", err)
	}
	if err := s.Edit(5, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
	if err := s.Edit(1, "kneeling"); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}

	want := []Tag{{"Standing", Pose}, {"kneeling", Pose}}
	if !reflect.DeepEqual(s.Tags(), want) {
		t.Errorf("Got %v, want %v", s.Tags(), want)
	}
}

func TestReplaceAllKeepsStoredOrder(t *testing.T) {
	s := NewSelection()
	s.TryAdd("old", Miscellaneous)

	s.ReplaceAll([]Group{
		{Category: Lighting, Tags: []string{"soft light"}},
		{Category: Type, Tags: []string{"photo", "painting"}},
		{Category: Subject, Tags: []string{"", "girl"}},
	})

	want := []Tag{
		{"soft light", Lighting},
		{"photo", Type},
		{"painting", Type},
		{"girl", Subject},
	}
	if !reflect.DeepEqual(s.Tags(), want) {
		t.Errorf("Got %v, want %v", s.Tags(), want)
	}

	grouped := s.Grouped()
	if grouped[0].Category != Type || !reflect.DeepEqual(grouped[0].Tags, []string{"photo", "painting"}) {
		t.Errorf("Grouped should still iterate by rank, got %v", grouped)
	}
}

func TestClear(t *testing.T) {
	s := NewSelection()
	s.TryAdd("photo", Type)
	s.Clear()
	if s.Len() != 0 || len(s.Grouped()) != 0 {
		t.Errorf("Expected empty selection, got %v", s.Tags())
	}
}
