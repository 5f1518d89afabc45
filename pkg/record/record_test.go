package record

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	apperr "github.com/matzehuels/autotype/pkg/errors"
)

func sample() *Record {
	return Of(
		"profile", Of("name", "Ada", "email", ""),
		"workExperiences", []any{
			Of("company", "Acme", "descriptions", []any{"built things", "shipped"}),
		},
		"skills", Of("featuredSkills", []any{}),
	)
}

func TestKeyOrder(t *testing.T) {
	r := NewRecord()
	r.Set("b", Text("1"))
	r.Set("a", Text("2"))
	r.Set("b", Text("3"))

	if diff := cmp.Diff([]string{"b", "a"}, r.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if v, _ := r.Get("b"); v != Text("3") {
		t.Errorf("Get(b) = %v, want 3", v)
	}
}

func TestMarshalJSONKeepsOrder(t *testing.T) {
	r := Of("z", "1", "a", []any{"x", Of("k", "v")}, "m", Of())

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"z":"1","a":["x",{"k":"v"}],"m":{}}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestMap(t *testing.T) {
	want := map[string]any{
		"profile": map[string]any{"name": "Ada", "email": ""},
		"workExperiences": []any{
			map[string]any{"company": "Acme", "descriptions": []any{"built things", "shipped"}},
		},
		"skills": map[string]any{"featuredSkills": []any{}},
	}
	if diff := cmp.Diff(want, sample().Map()); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := sample()
	c := CloneRecord(orig)

	if !Equal(orig, c) {
		t.Fatal("clone should equal original")
	}

	SetPath(c, "profile.name", Text("Grace"))
	jobs, _ := c.Get("workExperiences")
	jobs.(*List).Append(Of("company", "Initech"))

	if got, _ := Lookup(orig, "profile.name"); got != Text("Ada") {
		t.Errorf("original profile.name = %v, want Ada", got)
	}
	origJobs, _ := orig.Get("workExperiences")
	if origJobs.(*List).Len() != 1 {
		t.Errorf("original list grew to %d", origJobs.(*List).Len())
	}
}

func TestCloneNil(t *testing.T) {
	c := CloneRecord(nil)
	if c == nil || c.Len() != 0 {
		t.Fatalf("CloneRecord(nil) = %v, want empty record", c)
	}
	c.Set("a", Text("x"))
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same text", Text("a"), Text("a"), true},
		{"different text", Text("a"), Text("b"), false},
		{"text vs list", Text(""), NewList(), false},
		{"lists", ListOf("a", "b"), ListOf("a", "b"), true},
		{"list length", ListOf("a"), ListOf("a", "b"), false},
		{"key order ignored", Of("a", "1", "b", "2"), Of("b", "2", "a", "1"), true},
		{"missing key", Of("a", "1"), Of("a", "1", "b", "2"), false},
		{"nested", sample(), sample(), true},
		{"nil", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountChars(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want int
	}{
		{"empty", Of(), 0},
		{"text", Text("abc"), 3},
		{"runes", Text("Åbo"), 3},
		{"nested", sample(), len("Ada") + len("Acme") + len("built things") + len("shipped")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountChars(tt.v); got != tt.want {
				t.Errorf("CountChars() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"empty text", Text(""), true},
		{"text", Text("x"), false},
		{"empty list", NewList(), true},
		{"list of empties", ListOf(""), false},
		{"record of empties", Of("a", "", "b", []any{}), true},
		{"record with text", Of("a", "", "b", "x"), false},
		{"nil", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEmpty(tt.v); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLookupAndSetPath(t *testing.T) {
	r := sample()

	if v, ok := Lookup(r, "skills.featuredSkills"); !ok || v.Kind() != KindList {
		t.Errorf("Lookup(skills.featuredSkills) = %v, %v", v, ok)
	}
	if _, ok := Lookup(r, "profile.name.first"); ok {
		t.Error("Lookup through text should fail")
	}
	if _, ok := Lookup(r, "missing"); ok {
		t.Error("Lookup(missing) should fail")
	}

	if !SetPath(r, "profile.phone", Text("555")) {
		t.Fatal("SetPath(profile.phone) should succeed")
	}
	profile, _ := r.Get("profile")
	if diff := cmp.Diff([]string{"name", "email", "phone"}, profile.(*Record).Keys()); diff != "" {
		t.Errorf("profile keys mismatch (-want +got):\n%s", diff)
	}

	if SetPath(r, "missing.name", Text("x")) {
		t.Error("SetPath through a missing record should fail")
	}
	if SetPath(r, "profile.name.first", Text("x")) {
		t.Error("SetPath through text should fail")
	}
}

func TestSameShape(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Value
		wantErr bool
	}{
		{"identical", sample(), sample(), false},
		{"text lengths differ", Of("a", ""), Of("a", "abc"), false},
		{"list lengths differ", Of("l", []any{}), Of("l", []any{"x", "y"}), false},
		{"kind mismatch", Of("a", ""), Of("a", Of()), true},
		{"missing right", Of("a", "", "b", ""), Of("a", ""), true},
		{"missing left", Of("a", ""), Of("a", "", "b", ""), true},
		{"element kind", Of("l", []any{""}), Of("l", []any{Of()}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SameShape(tt.a, tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SameShape() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperr.Is(err, apperr.ErrCodeShapeMismatch) {
				t.Errorf("SameShape() code = %s, want %s", apperr.GetCode(err), apperr.ErrCodeShapeMismatch)
			}
		})
	}
}

func TestSameShapeNamesPath(t *testing.T) {
	a := Of("jobs", []any{Of("title", "")})
	b := Of("jobs", []any{Of("title", []any{})})

	err := SameShape(a, b)
	if err == nil {
		t.Fatal("expected mismatch")
	}
	if got := apperr.UserMessage(err); got != "jobs[0].title: text vs list" {
		t.Errorf("message = %q", got)
	}
}

func TestOfPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Of with an int value should panic")
		}
	}()
	Of("rating", 4)
}
