package sortutil

import (
	"reflect"
	"testing"
)

func TestStableSortBy(t *testing.T) {
	type item struct{ name, tag string }
	in := []item{{"size", "a"}, {"add", "b"}, {"add", "c"}, {"get", "d"}}
	got := StableSortBy(in, func(i item) string { return i.name })
	want := []item{{"add", "b"}, {"add", "c"}, {"get", "d"}, {"size", "a"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if in[0].name != "size" {
		t.Fatalf("input modified: %v", in)
	}
}

func TestDedup(t *testing.T) {
	got := Dedup([]string{"b", "a", "b", "c", "a"})
	if !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Fatalf("unexpected: %v", got)
	}
}
