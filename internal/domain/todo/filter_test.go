package todo

import (
	"reflect"
	"testing"
)

var sample = []Todo{
	{ID: 1, Text: "build good programs", Completed: false},
	{ID: 2, Text: "testing", Completed: true},
	{ID: 3, Text: "write docs", Completed: false},
}

func ids(todos []Todo) []int64 {
	out := make([]int64, 0, len(todos))
	for i := range todos {
		out = append(out, todos[i].ID)
	}
	return out
}

func TestFilter_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filter Filter
		want   []int64
	}{
		{FilterAll, []int64{1, 2, 3}},
		{FilterActive, []int64{1, 3}},
		{FilterCompleted, []int64{2}},
	}

	for _, tt := range tests {
		t.Run(tt.filter.String(), func(t *testing.T) {
			t.Parallel()
			if got := ids(tt.filter.Apply(sample)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		route string
		want  Filter
	}{
		{"", FilterAll},
		{"all", FilterAll},
		{"active", FilterActive},
		{"completed", FilterCompleted},
		{"#/active", FilterActive},
		{"/completed", FilterCompleted},
		{"bogus", FilterAll},
		{"Active", FilterAll},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			t.Parallel()
			if got := FromRoute(tt.route); got != tt.want {
				t.Errorf("FromRoute(%q) = %q, want %q", tt.route, got, tt.want)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	t.Parallel()

	if f, err := ParseFilter(""); err != nil || f != FilterAll {
		t.Errorf("ParseFilter(\"\") = %q, %v; want all, nil", f, err)
	}
	if f, err := ParseFilter("completed"); err != nil || f != FilterCompleted {
		t.Errorf("ParseFilter(\"completed\") = %q, %v; want completed, nil", f, err)
	}
	if _, err := ParseFilter("done"); err == nil {
		t.Error("ParseFilter(\"done\") error = nil, want error")
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	if got := RemainingCount(sample); got != 2 {
		t.Errorf("RemainingCount() = %d, want 2", got)
	}
	if AllChecked(sample) {
		t.Error("AllChecked() = true, want false")
	}
	if AllChecked(nil) {
		t.Error("AllChecked(nil) = true, want false")
	}
	if !AllChecked([]Todo{{Completed: true}}) {
		t.Error("AllChecked(all completed) = false, want true")
	}

	completed, active := Partition(sample)
	if !reflect.DeepEqual(ids(completed), []int64{2}) || !reflect.DeepEqual(ids(active), []int64{1, 3}) {
		t.Errorf("Partition() = %v, %v", ids(completed), ids(active))
	}
}

func TestItemsLeftLabel(t *testing.T) {
	t.Parallel()

	tests := map[int]string{0: "0 items left", 1: "1 item left", 12: "12 items left"}
	for n, want := range tests {
		if got := ItemsLeftLabel(n); got != want {
			t.Errorf("ItemsLeftLabel(%d) = %q, want %q", n, got, want)
		}
	}
}
