package commands

import (
	"context"
	"testing"

	"ltodo/internal/store"
	"ltodo/internal/testutil"
)

func TestParseTaskRef_Position(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ByID {
		t.Error("expected ByID to be false")
	}
	if ref.Num != 5 {
		t.Errorf("expected Num 5, got %d", ref.Num)
	}
}

func TestParseTaskRef_ID(t *testing.T) {
	ref, err := ParseTaskRef([]string{"#1718000000000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ref.ByID {
		t.Error("expected ByID to be true")
	}
	if ref.ID != 1718000000000 {
		t.Errorf("expected ID 1718000000000, got %d", ref.ID)
	}
}

func TestParseTaskRef_Required(t *testing.T) {
	_, err := ParseTaskRef(nil)
	if err != ErrTaskRefRequired {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_Invalid(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"abc"}, "invalid task reference: abc"},
		{[]string{"#"}, "invalid task reference: #"},
		{[]string{"#12a"}, "invalid task reference: #12a"},
		{[]string{"-1"}, "invalid task reference: -1"},
		{[]string{"１"}, "invalid task reference: １"},
		{[]string{"99999999999999999999"}, "invalid task reference: 99999999999999999999"},
		{[]string{"1", "2"}, "too many arguments: 2"},
	}

	for _, tt := range tests {
		_, err := ParseTaskRef(tt.args)
		if err == nil {
			t.Errorf("%v: expected error", tt.args)
			continue
		}
		if err.Error() != tt.want {
			t.Errorf("%v: expected %q, got %q", tt.args, tt.want, err.Error())
		}
	}
}

func TestResolveTaskRef(t *testing.T) {
	fs := testutil.NewFakeStorage()
	fs.Put("k", `[{"id":10,"text":"a","completed":false},{"id":20,"text":"b","completed":true}]`)
	st := store.New(fs, store.WithKey("k"))
	st.Load(context.Background())

	id, err := ResolveTaskRef(st, TaskRef{Num: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 20 {
		t.Errorf("expected id 20, got %d", id)
	}

	for _, num := range []int{0, 3} {
		_, err := ResolveTaskRef(st, TaskRef{Num: num})
		if err == nil {
			t.Errorf("expected out of range error for %d", num)
		}
	}

	// Unknown ids pass through so the store treats them as a no-op.
	id, err = ResolveTaskRef(st, TaskRef{ID: 99, ByID: true})
	if err != nil || id != 99 {
		t.Errorf("expected id 99 and no error, got %d, %v", id, err)
	}
}
